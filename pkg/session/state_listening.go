package session

import (
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"
)

// listeningEnter computes the timeout from the latched transfer direction,
// tells the modem, arms the listening timer with the same value, and resets
// the latch (spec §4.1 Listening.enter, §9 demo-mode recompute-on-entry note).
func (m *Machine) listeningEnter() {
	timeout := m.computeListeningTimeout()
	m.ctx.listeningTimeoutMillis = timeout
	if m.modem != nil {
		m.modem.RequestSatelliteListeningEnabled(true, timeout)
	}
	m.armTimer(timerset.KindListening, timeout)
	m.ctx.sendingTriggeredDuringTransferring = false
}

// listeningExit cancels the listening timer before telling the modem
// listening is disabled, so a Transfer event that leaves Listening early
// guarantees the timer can never fire afterward (spec §4.1 Listening.exit,
// §5 cancellation note).
func (m *Machine) listeningExit() {
	m.timers.Disarm(timerset.KindListening)
	if m.modem != nil {
		m.modem.RequestSatelliteListeningEnabled(false, 0)
	}
}

// listeningHandle implements spec §4.1's Listening row.
func listeningHandle(m *Machine, e dispatcher.Event) handleResult {
	switch e.Kind {
	case KindTimerFired:
		if e.Payload.(TimerFiredPayload).Kind == timerset.KindListening {
			return toState(modem.StateIdle)
		}
		return unhandled()

	case KindDatagramTransferChanged:
		if e.Payload.(DatagramTransferChangedPayload).State.IsActive() {
			return toState(modem.StateTransferring)
		}
		return noTransition()

	case KindModemStateChanged:
		if e.Payload.(ModemStateChangedPayload).State == modem.StateOff {
			return toState(modem.StateOff)
		}
		return unhandled()

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
