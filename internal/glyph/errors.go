package glyph

import "fmt"

// DecodeError reports stored bytes that are not a valid glyph record.
// This is corruption, not absence: callers must treat it differently
// from a missing record.
type DecodeError struct {
	// ID is the id the record was read under, when known.
	ID string

	// Reason describes what failed to parse.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := "decode glyph"
	if e.ID != "" {
		msg = fmt.Sprintf("decode glyph %s", e.ID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", msg, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
