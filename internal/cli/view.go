package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/glyphos/internal/glyph"
)

// glyphView is the CLI-facing shape of a glyph, mirroring the persisted
// record: reserved fields folded into the metadata object next to any
// passthrough fields.
type glyphView struct {
	ID       string                     `json:"id"`
	Content  string                     `json:"content"`
	Metadata map[string]json.RawMessage `json:"metadata"`
}

// viewOf converts a glyph for output.
func viewOf(g glyph.Glyph) glyphView {
	meta := make(map[string]json.RawMessage, len(g.Extra)+3)
	for k, v := range g.Extra {
		meta[k] = v
	}
	meta[glyph.FieldEnergy], _ = json.Marshal(g.Energy)
	meta[glyph.FieldActivationCount], _ = json.Marshal(g.ActivationCount)
	meta[glyph.FieldLastUpdateTime], _ = json.Marshal(g.LastUpdateTime)

	return glyphView{ID: g.ID, Content: g.Content, Metadata: meta}
}

// String renders the human-readable form, with metadata keys sorted for
// stable output.
func (v glyphView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "id:      %s\n", v.ID)
	fmt.Fprintf(&b, "content: %s\n", v.Content)

	keys := make([]string, 0, len(v.Metadata))
	for k := range v.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("metadata:")
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s: %s", k, string(v.Metadata[k]))
	}
	return b.String()
}
