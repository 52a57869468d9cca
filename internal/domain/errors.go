package domain

import "errors"

var (
	// Account errors
	ErrInvalidIBAN         = errors.New("invalid IBAN")
	ErrIBANTaken           = errors.New("an account with this IBAN already exists")
	ErrAccountNotFound     = errors.New("account not found")
	ErrNotAccountOwner     = errors.New("caller does not own this account")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Transfer errors
	ErrSameAccount   = errors.New("cannot transfer to the same IBAN")
	ErrInvalidAmount = errors.New("amount must be positive")

	// User errors
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
