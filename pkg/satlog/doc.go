// Package satlog is the structured debug-event log for the satellite
// session core (spec §6: "a debug log may be forwarded to a sink; no format
// guarantee"). It is adapted from the teacher's pkg/log: the same
// CBOR-with-integer-keys encoding and Logger/NoopLogger/MultiLogger/
// SlogAdapter shape, repurposed from wire-frame/protocol-message categories
// to state-transition/timer/modem-call categories.
package satlog
