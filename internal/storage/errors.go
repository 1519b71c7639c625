package storage

import "errors"

var (
	// ErrNotFound reports a read, update or delete of a missing record.
	ErrNotFound = errors.New("record not found")

	// ErrEmailExists reports a signup or update against a taken email.
	ErrEmailExists = errors.New("email already exists")
)
