package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/glyphos/internal/repo"
	"github.com/roach88/glyphos/internal/store"
)

// newTestRepo creates a repository over a throwaway store root and
// returns both so tests can seed and inspect records directly.
func newTestRepo(t *testing.T) (string, *repo.Repository) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.New(dir)
	require.NoError(t, err)
	return dir, repo.New(s)
}

// jsonResponse is CLIResponse with the payload kept raw so tests can
// unmarshal it into command-specific shapes.
type jsonResponse struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   *CLIError       `json:"error"`
	TraceID string          `json:"trace_id"`
}

func decodeResponse(t *testing.T, raw []byte) jsonResponse {
	t.Helper()
	var resp jsonResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp
}
