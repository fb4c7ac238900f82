package services

import "errors"

// Failure taxonomy shared by the service layer. Handlers translate these to
// HTTP statuses; nothing here is fatal to the process.
var (
	// ErrPasswordTooLong rejects passwords over the bcrypt byte cap.
	ErrPasswordTooLong = errors.New("password longer than 72 bytes")

	// ErrEmailTaken means the unique email constraint fired.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers unknown email, wrong password and stale
	// tokens alike. Deliberately one error so login never leaks which.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTOTPRequired means the account has 2FA enabled and no code was
	// supplied with the login.
	ErrTOTPRequired = errors.New("2FA code required")

	// ErrNotFound means the referenced entity does not exist for this
	// caller. Non-owners get the same answer as a missing row.
	ErrNotFound = errors.New("not found")

	// ErrNoData marks an empty expense breakdown, distinct from a valid
	// report: the chart client shows a message instead of an empty image.
	ErrNoData = errors.New("no expense data for this period")

	// ErrInvalidAmount and ErrInvalidType reject malformed transaction input.
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidType   = errors.New("transaction type must be income or expense")
)
