// ABOUTME: Typed errors returned by every storage backend.
// ABOUTME: Distinguishes read failures from write failures and wraps lookup sentinels.
package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record matches an id or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousPrefix is returned when an id prefix matches several records.
	ErrAmbiguousPrefix = errors.New("ambiguous prefix")
	// ErrReadOnly is returned when a backend cannot accept writes.
	ErrReadOnly = errors.New("store is read-only")
	// ErrDuplicateID is returned when a record with the same id already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// Kind classifies a store failure.
type Kind int

const (
	KindRead Kind = iota
	KindWrite
)

func (k Kind) String() string {
	if k == KindWrite {
		return "write"
	}
	return "read"
}

// StoreError reports a failed store operation.
type StoreError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ReadError wraps err as a failed read of op.
func ReadError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Kind: KindRead, Err: err}
}

// WriteError wraps err as a failed write of op.
func WriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Kind: KindWrite, Err: err}
}

// IsWriteError reports whether err contains a StoreError of KindWrite.
func IsWriteError(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == KindWrite
}

// IsReadError reports whether err contains a StoreError of KindRead.
func IsReadError(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == KindRead
}

// NotFound returns an ErrNotFound wrapped with the id that was looked up.
func NotFound(idOrPrefix string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
}

// Ambiguous returns an ErrAmbiguousPrefix wrapped with the prefix.
func Ambiguous(prefix string) error {
	return fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousPrefix, prefix)
}
