// Package interaction translates raw pointer, drop and keyboard events
// from render surfaces into composition store mutations.
//
// Drags are explicit finite state machines keyed by pointer id:
// Idle -> Dragging -> Idle. A session is entered on a press over a
// draggable target, advanced by moves carrying the same pointer id, and
// left on a matching release or when the store leaves edit mode. Events
// with a non-matching pointer id are ignored, so independent input
// devices can drag concurrently without cross-talk.
//
// The engine never mutates state directly; every resolved intent goes
// through a store operation, which applies its own clamping. A cancelled
// drag keeps the entity at its last applied state - there is no rollback.
package interaction
