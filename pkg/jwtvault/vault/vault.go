// Package vault defines the boundary to the external encrypted record
// store. The vault is the only distribution channel for credentials and
// the only place signing material lives at rest; everything behind this
// interface (encryption, access control, audit) is the vendor's concern.
package vault

import (
	"context"
	"errors"
)

// Record is the field set of a single vault record.
type Record map[string]string

// Standard field names surfaced by adapters.
const (
	FieldTitle    = "title"
	FieldLogin    = "login"
	FieldPassword = "password"
	FieldNotes    = "notes"
)

var (
	// ErrRecordNotFound indicates the record UID does not exist or is
	// not shared with this application.
	ErrRecordNotFound = errors.New("vault record not found")

	// ErrAuthFailed indicates the vault rejected or could not complete
	// the client's authentication.
	ErrAuthFailed = errors.New("vault authentication failed")

	// ErrWriteFailed indicates a record update did not take effect.
	ErrWriteFailed = errors.New("vault record update failed")
)

// Store is the required capability set of any backing vault.
//
// Precondition on implementations: UpdateRecord must replace a record's
// fields atomically, so a concurrent GetRecord observes either the old or
// the new field values in full. This package does not re-implement that
// guarantee; confirm it against the chosen backing store.
type Store interface {
	GetRecord(ctx context.Context, uid string) (Record, error)
	UpdateRecord(ctx context.Context, uid string, fields Record) error
}
