// Package errkind defines the fatal, string-tagged error kinds shared by
// lowering, decoding and access collection (see spec §7). Every error the
// public API surfaces is one of these kinds, carrying whatever type id or
// signed-extension identifier triggered it so the failure is actionable.
package errkind

import (
	"errors"
	"fmt"

	"github.com/bkchr/merkelized-metadata/binary"
)

// Kind tags the category of a fatal pipeline error.
type Kind string

const (
	// BadInput covers truncated bytes, oversized compacts, and invalid utf8
	// in a str payload.
	BadInput Kind = "BadInput"
	// UnsupportedExtrinsicVersion means the version byte's low 7 bits were
	// not 4.
	UnsupportedExtrinsicVersion Kind = "UnsupportedExtrinsicVersion"
	// UnknownVariant means an enumeration index read off the wire has no
	// matching variant record in the IR for that type id.
	UnknownVariant Kind = "UnknownVariant"
	// UnresolvedReference means lowering finished with a reachable entry
	// still unresolved, or a reference named a type id absent from the
	// source registry entirely.
	UnresolvedReference Kind = "UnresolvedReference"
	// BadBitStoreWidth means a bit-sequence's storage type did not reduce
	// to 1, 2, 4 or 8 bytes (or its bit-order type's path was not
	// recognised).
	BadBitStoreWidth Kind = "BadBitStoreWidth"
	// BadCompactInner means a Compact<T> named a T that is not an unsigned
	// integer primitive of at most 128 bits.
	BadCompactInner Kind = "BadCompactInner"
	// Internal covers invariant violations: an empty enumeration variant
	// set, or a duplicate variant index within one.
	Internal Kind = "Internal"
)

// Error is the concrete error type every exported function returns on
// failure. It is never retried by this package.
type Error struct {
	Kind      Kind
	Message   string
	TypeID    *uint32
	Extension string
}

// New creates an Error of the given kind with a plain message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithTypeID returns a copy of e annotated with the type id that triggered
// it.
func (e *Error) WithTypeID(id uint32) *Error {
	cp := *e
	cp.TypeID = &id
	return &cp
}

// WithExtension returns a copy of e annotated with the signed-extension
// identifier that triggered it.
func (e *Error) WithExtension(identifier string) *Error {
	cp := *e
	cp.Extension = identifier
	return &cp
}

// WrapBinary tags a raw error from package binary (truncated input, an
// oversized compact integer) as BadInput. Every read the decoder or the
// extrinsic driver performs goes through this, so a truncated cursor never
// escapes the public API as a bare binary.ErrTruncated — it always
// surfaces as one of the kinds §7 names. Errors that are already an
// *Error, or that aren't from package binary at all, pass through
// unchanged.
func WrapBinary(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, binary.ErrTruncated) || errors.Is(err, binary.ErrCompactOverflow) {
		return New(BadInput, err.Error())
	}
	return err
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.TypeID != nil {
		msg += fmt.Sprintf(" (type_id=%d)", *e.TypeID)
	}
	if e.Extension != "" {
		msg += fmt.Sprintf(" (extension=%s)", e.Extension)
	}
	return msg
}
