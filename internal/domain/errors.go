package domain

import "errors"

var (
	// ErrNotFound indicates a record ID absent from the store.
	ErrNotFound = errors.New("not found")

	// ErrUnknownKind indicates a list-edit request for an unsupported item kind.
	ErrUnknownKind = errors.New("unknown item kind")

	// ErrLimitReached indicates a capped list is already full.
	ErrLimitReached = errors.New("list limit reached")

	// ErrWrongGate indicates a list edit outside the gate that owns the list.
	ErrWrongGate = errors.New("list is not editable at this gate")
)

// ErrIndexOutOfRange indicates a list-edit request for a row that does not exist.
var ErrIndexOutOfRange = errors.New("item index out of range")
