// Package listener implements the observer registry of spec §4.2: a set of
// listener handles keyed by stable identity, broadcasting satellite modem
// state and emergency-mode notifications with best-effort removal on
// delivery failure.
//
// The shape is generalized from the teacher's subscription.Manager (map plus
// priming-notification-before-insert) and zone.Manager (On*-callback-setter
// registration), turned into a multi-observer fanout instead of a single
// callback per event kind.
package listener
