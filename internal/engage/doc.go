// Package engage implements the optimistic toggle mechanics for
// favorites, likes, and comments. Each toggled item is an explicit
// state machine: Settled(value) or Pending(previous, proposed). A
// toggle flips the local value immediately, fires the request, then
// settles at the server's authoritative value or reverts on failure.
// Overlapping toggles on the same item are rejected while pending, so
// a stale response can never overwrite a newer optimistic state.
package engage
