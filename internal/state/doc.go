// Package state holds the view-controller state machine shared by the
// terminal and HTML front ends.
//
// # States
//
// The loading/error/data triad is a single tagged variant, View, so an
// invalid combination such as "loading with an error set" cannot be stored:
//
//	              Begin            Settle(ok)
//	  ┌─────────┐ ──────> ┌─────────┐ ──────> ┌───────┐
//	  │ Failed  │         │ Loading │         │ Ready │
//	  └─────────┘ <────── └─────────┘ <────── └───────┘
//	              Settle(err)          Begin
//
// The zero Store starts in Loading because the first request is about to be
// dispatched.
//
// # Overlapping requests
//
// Begin hands out a monotonically increasing Ticket and never cancels a
// request already in flight. How stale responses are treated depends on the
// Policy:
//
//   - LastWriteWins: every Settle applies, so whichever response arrives
//     last decides the visible state.
//   - DiscardStale: a Settle whose ticket is older than the newest Begin is
//     dropped.
//
// # Concurrency
//
// Store is guarded by a sync.RWMutex. The HTML server calls Begin from
// request goroutines and Settle from load goroutines; the TUI calls both
// from the Bubble Tea update loop. Snapshot returns a value copy.
//
// # Errors
//
// Settle with a non-nil error records epic.Message(err) and hides the
// record. The last good record stays available through Last, but renderers
// never fall back to it.
package state
