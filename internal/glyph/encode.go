package glyph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// record is the on-disk shape: one JSON object per glyph.
// Metadata holds reserved fields alongside arbitrary caller fields;
// raw messages keep the passthrough fields byte-faithful.
type record struct {
	ID       string                     `json:"id"`
	Content  *string                    `json:"content"`
	Metadata map[string]json.RawMessage `json:"metadata"`
}

// Encode serializes a glyph to its persisted record form.
// The reserved fields are written into the metadata object next to any
// Extra fields. Encoding a glyph whose Extra shadows a reserved field name
// is rejected: the typed fields are authoritative.
func Encode(g Glyph) ([]byte, error) {
	meta := make(map[string]json.RawMessage, len(g.Extra)+3)
	for k, v := range g.Extra {
		if isReserved(k) {
			return nil, fmt.Errorf("encode glyph %s: reserved field %q in extra metadata", g.ID, k)
		}
		meta[k] = v
	}

	var err error
	if meta[FieldEnergy], err = json.Marshal(g.Energy); err != nil {
		return nil, fmt.Errorf("encode glyph %s: marshal energy: %w", g.ID, err)
	}
	if meta[FieldActivationCount], err = json.Marshal(g.ActivationCount); err != nil {
		return nil, fmt.Errorf("encode glyph %s: marshal activation_count: %w", g.ID, err)
	}
	if meta[FieldLastUpdateTime], err = json.Marshal(g.LastUpdateTime); err != nil {
		return nil, fmt.Errorf("encode glyph %s: marshal last_update_time: %w", g.ID, err)
	}

	rec := record{ID: g.ID, Content: &g.Content, Metadata: meta}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("encode glyph %s: %w", g.ID, err)
	}
	return buf.Bytes(), nil
}

// Decode parses persisted record bytes back into a glyph.
// Any failure is a *DecodeError: invalid JSON, missing id or content,
// or a reserved metadata field of the wrong type. Reserved fields that
// are absent default to zero, matching Create's defaults.
func Decode(data []byte) (Glyph, error) {
	var rec record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return Glyph{}, &DecodeError{Reason: "invalid JSON", Err: err}
	}

	if rec.ID == "" {
		return Glyph{}, &DecodeError{Reason: "missing id"}
	}
	if err := ValidateID(rec.ID); err != nil {
		return Glyph{}, &DecodeError{ID: rec.ID, Reason: "malformed id", Err: err}
	}
	if rec.Content == nil {
		return Glyph{}, &DecodeError{ID: rec.ID, Reason: "missing content"}
	}

	g := Glyph{ID: rec.ID, Content: *rec.Content}

	extra := make(map[string]json.RawMessage, len(rec.Metadata))
	for k, v := range rec.Metadata {
		switch k {
		case FieldEnergy:
			if err := json.Unmarshal(v, &g.Energy); err != nil {
				return Glyph{}, &DecodeError{ID: rec.ID, Reason: "energy is not a number", Err: err}
			}
		case FieldActivationCount:
			if err := json.Unmarshal(v, &g.ActivationCount); err != nil {
				return Glyph{}, &DecodeError{ID: rec.ID, Reason: "activation_count is not an integer", Err: err}
			}
		case FieldLastUpdateTime:
			if err := json.Unmarshal(v, &g.LastUpdateTime); err != nil {
				return Glyph{}, &DecodeError{ID: rec.ID, Reason: "last_update_time is not an integer", Err: err}
			}
		default:
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		g.Extra = extra
	}
	return g, nil
}

// isReserved reports whether a metadata field name is lifted into a
// typed field on Glyph.
func isReserved(name string) bool {
	switch name {
	case FieldEnergy, FieldActivationCount, FieldLastUpdateTime:
		return true
	}
	return false
}
