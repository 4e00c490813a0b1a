package store

import "errors"

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned by Insert when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrUnavailable wraps I/O failures of the underlying store. The store does
// not retry; callers may retry the whole request.
var ErrUnavailable = errors.New("store unavailable")
