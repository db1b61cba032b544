// Package composition owns the full editing state of a session: canvas
// assets, audio and content tracks, selection, playback clock and mode.
//
// The store is the single mutable resource in the system. Render surfaces
// read snapshots; the interaction engine and the playback runner are the
// only writers. Every mutation is applied atomically under the store lock
// and clamped to the domain invariants, so the worst outcome of any input
// is a no-op. Operations never return errors: a failed precondition
// (wrong mode, locked track, unknown id, type mismatch) is a silent
// refusal, observable only as unchanged state.
//
// The one cross-entity invariant is the timing mirror: a canvas asset
// bound to a content clip always agrees with it on start, duration and
// track. Both records are updated inside the same mutation; neither can
// change timing on its own.
package composition
