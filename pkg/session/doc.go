// Package session implements the satellite session state machine (C5): the
// nine-state hierarchical automaton that governs a device's satellite modem
// lifecycle, reconciling datagram transfer state, modem state, and
// user/carrier enablement events under the single-threaded discipline of
// pkg/dispatcher.
//
// States are represented as modem.State — the same ordered sum spec.md's
// data model uses for both "the modem's reported state" and "the session's
// own current/previous state" — rather than a second parallel enum. Entry
// and exit actions are dispatched from a map[modem.State]stateHandlers
// table built once at construction: the closest idiomatic-Go analogue to a
// tagged union with per-variant methods, since Go has no sum types and this
// module does not resort to an interface-per-state class hierarchy.
package session
