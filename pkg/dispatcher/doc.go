// Package dispatcher implements the single-threaded cooperative event queue
// of spec §4.4/C4: external producers post typed events, one goroutine
// drains them serially, and a handler runs each to completion before the
// next dispatches. Deferred events replay as the first event seen by
// whatever state is current after the in-progress transition completes.
//
// The consumer-loop shape (a channel-fed goroutine with a context-cancel
// shutdown path, drained via Close via WaitGroup) is adapted from the
// teacher's connection.Manager.reconnectLoop, generalized from a single
// reconnect signal to an ordered, typed event queue with Defer/RemoveKind
// support that spec §4.4 requires and the teacher's single-purpose
// reconnect channel does not.
package dispatcher
