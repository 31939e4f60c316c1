package session

import (
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"
)

// connectedEnter starts the NB-IoT inactivity timer (spec §4.1
// Connected.enter).
func (m *Machine) connectedEnter() {
	m.evaluateNbIotTimer()
}

// connectedHandle implements spec §4.1's Connected row.
func connectedHandle(m *Machine, e dispatcher.Event) handleResult {
	switch e.Kind {
	case KindModemStateChanged:
		switch e.Payload.(ModemStateChangedPayload).State {
		case modem.StateNotConnected:
			return toState(modem.StateNotConnected)
		case modem.StateOff:
			return toState(modem.StateOff)
		}
		return unhandled()

	case KindTimerFired:
		if e.Payload.(TimerFiredPayload).Kind == timerset.KindNBIoTInactivity {
			return toState(modem.StateIdle)
		}
		return unhandled()

	case KindDatagramTransferChanged:
		if e.Payload.(DatagramTransferChangedPayload).State.IsActive() {
			return toState(modem.StateTransferring)
		}
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
