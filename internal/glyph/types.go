package glyph

import "encoding/json"

// Reserved metadata field names. These are lifted out of the metadata
// object into typed fields on Glyph; everything else passes through Extra.
const (
	FieldEnergy          = "energy"
	FieldActivationCount = "activation_count"
	FieldLastUpdateTime  = "last_update_time"
	FieldMergedFrom      = "merged_from"
)

// Glyph is a content-identified record with mutable dynamics metadata.
//
// ID and Content are bound at creation time (ID == DeriveID(Content)) and
// are semantically immutable afterwards. Energy, ActivationCount and
// LastUpdateTime evolve under the dynamics engine. Extra carries
// caller-supplied metadata fields verbatim.
type Glyph struct {
	// ID is the content-addressed identity, 64 lowercase hex characters.
	ID string

	// Content is the opaque payload the id was derived from.
	Content string

	// Energy is non-negative; it decays over time and sums on merge.
	Energy float64

	// ActivationCount tallies threshold-satisfying observations.
	// Monotonically non-decreasing.
	ActivationCount int64

	// LastUpdateTime counts time units elapsed. Monotonically non-decreasing.
	LastUpdateTime int64

	// Extra holds unrecognized metadata fields as raw JSON so they
	// round-trip through storage unchanged.
	Extra map[string]json.RawMessage
}

// New constructs a glyph from content, deriving its id. Reserved metadata
// starts at zero; Extra is left nil until the caller supplies fields.
func New(content string) Glyph {
	return Glyph{
		ID:      DeriveID(content),
		Content: content,
	}
}

// Clone returns a deep copy. The dynamics engine operates on copies so
// callers never see an input glyph mutated in place.
func (g Glyph) Clone() Glyph {
	out := g
	if g.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(g.Extra))
		for k, v := range g.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// MergedFrom returns the provenance ids recorded by a merge, or nil if
// this glyph was not produced by one.
func (g Glyph) MergedFrom() []string {
	raw, ok := g.Extra[FieldMergedFrom]
	if !ok {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}
