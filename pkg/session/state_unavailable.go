package session

import "github.com/satband/satsession/pkg/dispatcher"

// unavailableHandle recognizes nothing: Unavailable is terminal for the
// lifetime of the session (spec §4.1 "States and initial state").
func unavailableHandle(_ *Machine, _ dispatcher.Event) handleResult {
	return unhandled()
}
