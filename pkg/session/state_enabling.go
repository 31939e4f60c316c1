package session

import (
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
)

// enablingHandle implements spec §4.1's Enabling row: successful enablement
// routes on attach-required, a failed enablement, EnabledChanged(false) or a
// modem Off report falls back to Off, a disable request (Started(false))
// moves to Disabling, and a modem-state change other than Off is deferred to
// the state transitioned into next (spec §4.1 Deferred-event policy).
func enablingHandle(m *Machine, e dispatcher.Event) handleResult {
	switch e.Kind {
	case KindEnabledChanged:
		p := e.Payload.(EnabledChangedPayload)
		if p.Enabled {
			attachRequired := m.carrier != nil && m.carrier.IsAttachRequiredForNBIoT()
			m.ctx.isAttachRequiredForNbIot = attachRequired
			if attachRequired {
				return toState(modem.StateNotConnected)
			}
			return toState(modem.StateIdle)
		}
		// Discard any ModemStateChanged deferred while Enabling so it can't
		// poison the next session (spec §4.1 Deferred-event policy).
		m.queue.RemoveKind(KindModemStateChanged)
		return toState(modem.StateOff)

	case KindEnablementFailed:
		if e.Payload.(EnablementFailedPayload).WasEnable {
			return toState(modem.StateOff)
		}
		return unhandled()

	case KindModemStateChanged:
		p := e.Payload.(ModemStateChangedPayload)
		if p.State == modem.StateOff {
			return toState(modem.StateOff)
		}
		m.queue.Defer(e)
		return noTransition()

	case KindEnablementStarted:
		if !e.Payload.(EnablementStartedPayload).Enable {
			return toState(modem.StateDisabling)
		}
		return unhandled()

	default:
		return unhandled()
	}
}
