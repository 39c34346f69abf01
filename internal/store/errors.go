package store

import "errors"

// Sentinel errors shared by the store and translated to HTTP statuses by
// the API layer. They are detected before any mutation, so a failed call
// leaves no partial state behind.

// ErrNotFound is returned when a referenced row does not exist.
// Handlers translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock is returned when a sale quantity exceeds the
// product's current stock. The check runs under a row lock, so two
// concurrent sales can never overdraw the same product together.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrAlreadyCheckedIn is returned when check-in is attempted on a ticket
// that already entered. Entry time and wristband are never overwritten.
var ErrAlreadyCheckedIn = errors.New("ticket already checked in")
