package services

import "errors"

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so the API cannot be used to enumerate registered users.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidTransaction is returned when a transaction payload is missing a
// required field or carries a non-finite amount. Wrapped errors add the
// field-level hint.
var ErrInvalidTransaction = errors.New("invalid transaction")
