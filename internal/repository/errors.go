package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	// ErrNotFound covers both a missing document and an owner mismatch, so
	// handlers cannot leak whether another user's document exists.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the document exists but the caller does
	// not own it and ownership is part of the operation's contract.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicate maps Mongo's unique index violation (code 11000).
	ErrDuplicate = errors.New("duplicate")

	// ErrBadCursor wraps an unparseable pagination cursor.
	ErrBadCursor = errors.New("invalid cursor")
)

// isDup reports whether err is a unique index violation.
func isDup(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}
