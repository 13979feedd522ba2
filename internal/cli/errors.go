package cli

import (
	"errors"

	"github.com/roach88/glyphos/internal/dynamics"
	"github.com/roach88/glyphos/internal/glyph"
	"github.com/roach88/glyphos/internal/index"
	"github.com/roach88/glyphos/internal/repo"
	"github.com/roach88/glyphos/internal/store"
)

// ErrReported marks errors that were already written through the
// OutputFormatter, so Execute does not print them a second time.
var ErrReported = errors.New("error already reported")

// Error codes surfaced in CLI responses.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeDecodeFailure   = "DECODE_FAILURE"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeIOFailure       = "IO_FAILURE"
)

// classify maps a core error onto a response code and process exit code.
func classify(err error) (code string, exit int) {
	var decodeErr *glyph.DecodeError
	var ruleErr *dynamics.RuleError
	var keyErr *store.KeyError

	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, index.ErrNotIndexed):
		return CodeNotFound, ExitFailure
	case errors.As(err, &decodeErr):
		return CodeDecodeFailure, ExitFailure
	case errors.As(err, &ruleErr), errors.As(err, &keyErr), errors.Is(err, repo.ErrIDMismatch):
		return CodeInvalidArgument, ExitCommandError
	default:
		return CodeIOFailure, ExitFailure
	}
}

// fail emits err through the formatter and returns a matching ExitError
// marked as already reported.
func fail(out *OutputFormatter, err error) error {
	code, exit := classify(err)
	_ = out.Error(code, err.Error(), nil)
	return &ExitError{Code: exit, Message: err.Error(), Err: ErrReported}
}
