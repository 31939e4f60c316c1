// Package gateway implements the gateway binder of spec §4.3/C3: binding to
// a named gateway service, tracking {unbound, binding, bound}, and
// reconnecting with exponential backoff on loss.
//
// Backoff and the reconnect-loop shape are adapted from the teacher's
// connection.Backoff and connection.Manager, generalized from a generic
// reconnecting client connection to the bind/unbind vocabulary of spec §4.3.
// Unlike the teacher's client reconnect (which jitters to avoid a thundering
// herd across many independently-reconnecting devices), this binder's
// backoff has no jitter: a single device's own gateway bind has no herd to
// avoid, and spec §4.3 specifies the deterministic sequence 2s, 4s, 8s,
// 16s, 32s, 64s.
package gateway
