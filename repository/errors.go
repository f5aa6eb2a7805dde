// Package repository holds the data-access layer. Every operation is a
// parameterized query (or a single transaction for owner-checked
// mutations) and reports failures through the sentinel errors below;
// controllers translate them into HTTP status codes.
package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound covers missing rows and, for stories, rows whose
	// expiry has passed: an expired story is gone from the caller's
	// point of view even when the sweep has not deleted it yet.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate maps a unique-key violation (username, email, one
	// like per user per post).
	ErrDuplicate = errors.New("duplicate")

	// ErrForbidden rejects mutation of a resource the caller does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation rejects malformed input before it reaches the store.
	ErrValidation = errors.New("invalid input")
)

// isUniqueViolation reports whether err is a sqlite unique or primary
// key constraint failure. The driver error is inspected directly rather
// than matching on message text.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
