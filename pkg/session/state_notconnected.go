package session

import (
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"
)

// notConnectedEnter arms the NB-IoT and carrier-roaming inactivity timers per
// their respective conditions (spec §4.1 NotConnected.enter).
func (m *Machine) notConnectedEnter() {
	m.evaluateNbIotTimer()
	m.evaluateCarrierRoamingTimer()
}

// notConnectedExit stops the carrier-roaming timer; it is NotConnected-only
// (spec §4.1 NotConnected.exit, §3 I4).
func (m *Machine) notConnectedExit() {
	m.timers.Disarm(timerset.KindCarrierRoamingInactivity)
}

// notConnectedHandle implements spec §4.1's NotConnected row. The Transfer
// sub-lines of the state chart ("stop NbIot & carrier", "start NbIot &
// evaluate carrier", "restart NbIot; stop+evaluate carrier") never name a
// destination state, so they are modeled as timer re-evaluation without a
// transition — see DESIGN.md.
func notConnectedHandle(m *Machine, e dispatcher.Event) handleResult {
	switch e.Kind {
	case KindModemStateChanged:
		switch e.Payload.(ModemStateChangedPayload).State {
		case modem.StateConnected:
			return toState(modem.StateConnected)
		case modem.StateOff:
			return toState(modem.StateOff)
		}
		return unhandled()

	case KindTimerFired:
		switch e.Payload.(TimerFiredPayload).Kind {
		case timerset.KindNBIoTInactivity, timerset.KindCarrierRoamingInactivity:
			return toState(modem.StateIdle)
		}
		return unhandled()

	case KindDatagramTransferChanged:
		m.evaluateNbIotTimer()
		m.evaluateCarrierRoamingTimer()
		return noTransition()

	case KindEnabledChanged:
		if !e.Payload.(EnabledChangedPayload).Enabled {
			return toState(modem.StateOff)
		}
		return unhandled()

	case KindEnablementStarted:
		if !e.Payload.(EnablementStartedPayload).Enable {
			return toState(modem.StateDisabling)
		}
		return unhandled()

	default:
		return unhandled()
	}
}
