package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestPrintJSON(t *testing.T) {
	t.Run("indents valid json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := printJSON(&buf, []byte(`{"accessToken":"abc"}`)); err != nil {
			t.Fatalf("printJSON() error = %v", err)
		}

		want := "{\n  \"accessToken\": \"abc\"\n}\n"
		if buf.String() != want {
			t.Errorf("printJSON() = %q, want %q", buf.String(), want)
		}
	})

	t.Run("passes through non-json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := printJSON(&buf, []byte("not json")); err != nil {
			t.Fatalf("printJSON() error = %v", err)
		}

		if buf.String() != "not json\n" {
			t.Errorf("printJSON() = %q, want %q", buf.String(), "not json\n")
		}
	})
}

func TestCallAPI(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	defer server.Close()

	serverURL = server.URL
	token = "test-token"
	timeout = 5 * time.Second

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := callAPI(cmd, http.MethodPost, "/account/deposit", map[string]string{
		"iban":   "DE89370400440532013000",
		"amount": "100",
	})
	if err != nil {
		t.Fatalf("callAPI() error = %v", err)
	}

	if gotPath != "/account/deposit" {
		t.Errorf("path = %q, want %q", gotPath, "/account/deposit")
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-token")
	}
	if !strings.Contains(gotBody, "DE89370400440532013000") {
		t.Errorf("request body %q missing iban", gotBody)
	}
	if !strings.Contains(out.String(), "\"success\": true") {
		t.Errorf("output %q missing success field", out.String())
	}
}

func TestCallAPIErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "insufficient balance"})
	}))
	defer server.Close()

	serverURL = server.URL
	token = ""
	timeout = 5 * time.Second

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(io.Discard)

	err := callAPI(cmd, http.MethodPost, "/account/withdraw", map[string]string{
		"iban":   "DE89370400440532013000",
		"amount": "100",
	})
	if err == nil {
		t.Fatal("callAPI() expected error on 400 response")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error = %v, want status in message", err)
	}
}
