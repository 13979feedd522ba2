// Package dynamics implements the deterministic rule engine that evolves
// glyph state: decay, activation, merge, and their composition into a step.
//
// Every operation is a pure function of its explicit inputs plus the
// engine configuration. The engine holds no mutable state, touches no
// storage, and is safe for any number of concurrent callers. Input glyphs
// are never mutated; operations return updated copies.
//
// A glyph carries no persisted dormant/activated mode. Activation is
// computed on demand by comparing current energy to the threshold, and
// ActivationCount tallies every threshold-satisfying observation, not
// just upward crossings.
package dynamics
