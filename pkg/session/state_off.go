package session

import (
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
)

// offEnter publishes REQUEST_ABORTED to the satellite controller, clears the
// per-session flags and every operational timer, and unbinds the gateway
// (spec §4.1 Off.enter, §3 I7).
func (m *Machine) offEnter() {
	if m.controller != nil {
		m.controller.MoveSatelliteToOffStateAndCleanUpResources(modem.ReasonRequestAborted)
	}
	m.ctx.sendingTriggeredDuringTransferring = false
	m.ctx.disableCellularInProgress = false
	m.timers.DisarmAll()
	m.gateway.Reset()
}

// offExit attempts to bind the gateway, with backoff on failure (spec §4.1
// Off.exit).
func (m *Machine) offExit() {
	_ = m.gateway.Bind()
}

// offHandle recognizes only the user/carrier enablement request to turn
// satellite on (spec §4.1 state chart).
func offHandle(m *Machine, e dispatcher.Event) handleResult {
	if e.Kind != KindEnablementStarted {
		return unhandled()
	}
	if !e.Payload.(EnablementStartedPayload).Enable {
		return unhandled()
	}
	return toState(modem.StateEnabling)
}
