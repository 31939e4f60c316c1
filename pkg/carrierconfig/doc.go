// Package carrierconfig holds the configuration surface consumed by the
// satellite session core: the carrier/subscription timeout bundle of
// spec §6, demo-mode overrides, and the NTN subscription flags the core
// queries on relevant transitions.
//
// Values here are supplied by an external carrier configuration / subscription
// registry; this package only declares the shape and the defaults, following
// the teacher's subscription.Config / DefaultConfig() constructor idiom.
package carrierconfig
