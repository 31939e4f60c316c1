package session

import (
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
)

// disablingHandle implements spec §4.1's Disabling row, including the
// restore-by-previous table for a failed disable.
func disablingHandle(m *Machine, e dispatcher.Event) handleResult {
	switch e.Kind {
	case KindEnabledChanged:
		p := e.Payload.(EnabledChangedPayload)
		if p.Enabled {
			// A stray "enabled" notification while disabling: remember
			// NotConnected as where a failed disable should restore to.
			m.ctx.previous = modem.StateNotConnected
			return noTransition()
		}
		return toState(modem.StateOff)

	case KindEnablementFailed:
		p := e.Payload.(EnablementFailedPayload)
		if p.WasEnable {
			m.ctx.previous = modem.StateOff
			return noTransition()
		}
		return toState(disablingRestoreTarget(m.ctx.previous))

	case KindModemStateChanged:
		p := e.Payload.(ModemStateChangedPayload)
		switch p.State {
		case modem.StateNotConnected:
			m.ctx.previous = modem.StateNotConnected
			return noTransition()
		case modem.StateOff:
			// Deferred until the authoritative EnabledChanged arrives
			// (spec §4.1 Deferred-event policy).
			m.queue.Defer(e)
			return noTransition()
		}
		return unhandled()

	default:
		return unhandled()
	}
}

// disablingRestoreTarget implements spec §4.1's restore-by-previous table for
// EnablementFailed(wasEnable=false).
func disablingRestoreTarget(previous modem.State) modem.State {
	switch previous {
	case modem.StateConnected, modem.StateTransferring, modem.StateListening:
		return modem.StateConnected
	case modem.StateEnabling:
		return modem.StateEnabling
	case modem.StateOff:
		return modem.StateOff
	default:
		return modem.StateNotConnected
	}
}
