package dynamics

import "fmt"

// RuleError represents an invalid input to a dynamics rule.
//
// The engine has no runtime state to corrupt, so every error here is an
// argument error detected before any computation happens.
type RuleError struct {
	// Code identifies the error category.
	Code RuleErrorCode

	// Message is a human-readable description.
	Message string

	// GlyphID identifies the affected glyph, when known.
	GlyphID string
}

// RuleErrorCode categorizes rule errors.
type RuleErrorCode string

const (
	// ErrCodeNegativeTimeDelta indicates a decay or step with Δt < 0.
	// Negative deltas would silently invert decay into growth, so they
	// are rejected outright.
	ErrCodeNegativeTimeDelta RuleErrorCode = "NEGATIVE_TIME_DELTA"
)

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.GlyphID != "" {
		return fmt.Sprintf("dynamics [%s] glyph %s: %s", e.Code, e.GlyphID, e.Message)
	}
	return fmt.Sprintf("dynamics [%s]: %s", e.Code, e.Message)
}
