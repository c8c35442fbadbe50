// Package pipeline orchestrates bond completion and batch collection.
//
// Complete is the per-bond state machine: a parsed bond moves through
// schedule derivation and the price/yield solver to StateComplete, or
// stops with a kind-tagged error. Every transformation is a pure function
// over a bond value; re-running Complete on an already-complete bond is a
// no-op.
//
// Collector is the only component in the pipeline with mutable aggregate
// state. It applies Complete to every row of a batch, contains per-row
// failures in the batch's failure set, and surfaces exactly one
// batch-level error to callers: DataUnavailable when no row produced a
// completed bond.
//
// Rows are independent and side-effect free, so Collector optionally
// fans rows out across a bounded worker group. The single-worker default
// preserves input order in both result sets, which deterministic
// consumers rely on; parallel mode guarantees the same membership but
// not the same order.
package pipeline
