package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	token     string
	timeout   time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "minibank-cli",
		Short: "Command-line client for the minibank HTTP API",
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "http://localhost:8080", "Server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated commands")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		createAccountCmd(),
		listAccountsCmd(),
		depositCmd(),
		withdrawCmd(),
		transferCmd(),
		statementCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Register a new user and print an access token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return callAPI(cmd, http.MethodPost, "/auth/register", map[string]string{
				"email":    args[0],
				"password": args[1],
			})
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and print an access token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return callAPI(cmd, http.MethodPost, "/auth/login", map[string]string{
				"email":    args[0],
				"password": args[1],
			})
		},
	}
}

func createAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-account <iban>",
		Short: "Open a new account with the given IBAN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return callAPI(cmd, http.MethodPost, "/account/create", map[string]string{
				"iban": args[0],
			})
		},
	}
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the caller's accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return callAPI(cmd, http.MethodGet, "/account/", nil)
		},
	}
}

func depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <iban> <amount>",
		Short: "Deposit funds into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return callAPI(cmd, http.MethodPost, "/account/deposit", map[string]string{
				"iban":   args[0],
				"amount": args[1],
			})
		},
	}
}

func withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <iban> <amount>",
		Short: "Withdraw funds from an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return callAPI(cmd, http.MethodPost, "/account/withdraw", map[string]string{
				"iban":   args[0],
				"amount": args[1],
			})
		},
	}
}

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <from-iban> <to-iban> <amount>",
		Short: "Transfer funds between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return callAPI(cmd, http.MethodPost, "/account/transfer", map[string]string{
				"fromIban": args[0],
				"toIban":   args[1],
				"amount":   args[2],
			})
		},
	}
}

func statementCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statement <iban>",
		Short: "Print the statement for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return callAPI(cmd, http.MethodGet, "/account/statement?iban="+args[0], nil)
		},
	}
}

// callAPI sends a request to the server and pretty-prints the JSON response.
func callAPI(cmd *cobra.Command, method, path string, body any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(cmd.Context(), method, serverURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := printJSON(cmd.OutOrStdout(), data); err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	return nil
}

// printJSON re-indents raw JSON for readability. Non-JSON bodies are
// printed as-is.
func printJSON(w io.Writer, data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		_, werr := fmt.Fprintln(w, string(data))
		return werr
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
