package dynamics

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/roach88/glyphos/internal/glyph"
)

// Default engine parameters, matching the reference configuration.
const (
	DefaultActivationThreshold = 1.0
	DefaultDecayRate           = 0.1
)

// Engine applies the three dynamics rules to glyph values. It is
// immutable after construction and safe for concurrent use.
type Engine struct {
	activationThreshold float64
	decayRate           float64
}

// Config holds engine parameters.
type Config struct {
	// ActivationThreshold is the energy level at or above which a glyph
	// counts as activated for an observation. Unconstrained.
	ActivationThreshold float64

	// DecayRate is the per-time-unit multiplicative attenuation factor.
	// Clamped into [0,1] at construction.
	DecayRate float64
}

// New creates an engine. The decay rate is clamped into [0,1]; the
// threshold is taken as-is.
func New(cfg Config) *Engine {
	return &Engine{
		activationThreshold: cfg.ActivationThreshold,
		decayRate:           math.Min(1.0, math.Max(0.0, cfg.DecayRate)),
	}
}

// ActivationThreshold returns the configured threshold.
func (e *Engine) ActivationThreshold() float64 {
	return e.activationThreshold
}

// DecayRate returns the clamped decay rate.
func (e *Engine) DecayRate() float64 {
	return e.decayRate
}

// Decay applies exponential energy attenuation over timeDelta time units:
//
//	energy' = energy × (1 − decayRate)^timeDelta
//
// and advances LastUpdateTime by timeDelta. A zero delta is the identity
// transformation. Decay composes: Decay(a) then Decay(b) equals
// Decay(a+b) within floating-point tolerance.
//
// A negative delta is rejected with a RuleError rather than silently
// turning decay into growth.
func (e *Engine) Decay(g glyph.Glyph, timeDelta int64) (glyph.Glyph, error) {
	if timeDelta < 0 {
		return glyph.Glyph{}, &RuleError{
			Code:    ErrCodeNegativeTimeDelta,
			Message: fmt.Sprintf("time delta %d", timeDelta),
			GlyphID: g.ID,
		}
	}

	out := g.Clone()
	out.Energy = g.Energy * math.Pow(1.0-e.decayRate, float64(timeDelta))
	out.LastUpdateTime = g.LastUpdateTime + timeDelta
	return out, nil
}

// Activate checks the activation threshold. A glyph with energy at or
// above the threshold has its counter incremented by exactly one and
// reports activated=true; otherwise the glyph comes back unchanged.
//
// This counts every observation at or above threshold, not just the
// first upward crossing: a glyph holding above threshold across N
// consecutive observations increments its counter N times.
func (e *Engine) Activate(g glyph.Glyph) (glyph.Glyph, bool) {
	if g.Energy < e.activationThreshold {
		return g.Clone(), false
	}
	out := g.Clone()
	out.ActivationCount = g.ActivationCount + 1
	return out, true
}

// Merge consumes two glyphs and produces a new, distinctly-identified one.
//
// The operand with the larger energy is primary; an exact tie goes to g1.
// The merged content is "primary.content + " + " + secondary.content",
// and the id is re-derived from it, so the result is a new entity, not an
// update of either input. Energy sums; activation count and last update
// time take the max of the operands; merged_from records provenance as
// [primary.id, secondary.id].
//
// Because precedence depends only on comparing energies, Merge(g1, g2)
// and Merge(g2, g1) produce identical results, including on ties from the
// caller's perspective as long as the caller is consistent about which
// operand it passes first.
func (e *Engine) Merge(g1, g2 glyph.Glyph) (glyph.Glyph, error) {
	primary, secondary := g1, g2
	if g2.Energy > g1.Energy {
		primary, secondary = g2, g1
	}

	merged := glyph.New(primary.Content + " + " + secondary.Content)
	merged.Energy = g1.Energy + g2.Energy
	merged.ActivationCount = max(g1.ActivationCount, g2.ActivationCount)
	merged.LastUpdateTime = max(g1.LastUpdateTime, g2.LastUpdateTime)

	provenance, err := json.Marshal([]string{primary.ID, secondary.ID})
	if err != nil {
		return glyph.Glyph{}, fmt.Errorf("merge %s + %s: marshal provenance: %w", g1.ID, g2.ID, err)
	}
	merged.Extra = map[string]json.RawMessage{
		glyph.FieldMergedFrom: provenance,
	}
	return merged, nil
}

// StepInfo records what a single dynamics step did.
type StepInfo struct {
	InitialEnergy    float64 `json:"initial_energy"`
	TimeDelta        int64   `json:"time_delta"`
	EnergyAfterDecay float64 `json:"energy_after_decay"`
	Activated        bool    `json:"activated"`
	FinalEnergy      float64 `json:"final_energy"`
	ActivationCount  int64   `json:"activation_count"`
}

// Step executes one dynamics step: decay over timeDelta, then the
// activation check on the decayed glyph. Deterministic given the glyph,
// the delta, and the engine configuration.
func (e *Engine) Step(g glyph.Glyph, timeDelta int64) (glyph.Glyph, StepInfo, error) {
	info := StepInfo{
		InitialEnergy: g.Energy,
		TimeDelta:     timeDelta,
	}

	decayed, err := e.Decay(g, timeDelta)
	if err != nil {
		return glyph.Glyph{}, StepInfo{}, err
	}
	info.EnergyAfterDecay = decayed.Energy

	out, activated := e.Activate(decayed)
	info.Activated = activated
	info.FinalEnergy = out.Energy
	info.ActivationCount = out.ActivationCount

	return out, info, nil
}
