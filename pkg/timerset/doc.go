// Package timerset implements the five named deadlines the satellite session
// core arms and cancels: listening, NB-IoT inactivity, screen-off inactivity,
// carrier-roaming inactivity, and gateway rebind.
//
// Each timer guarantees at-most-one-pending-expiry per kind (spec §4.5): Arm
// is a no-op if a timer of that Kind is already pending, and Disarm
// guarantees the expiry will not fire even if it is already racing on
// another goroutine, by invalidating a generation counter the fired
// time.AfterFunc checks before posting its event.
package timerset
