package session

import (
	"github.com/satband/satsession/pkg/datagram"
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"
)

// transferringEnter stops the NB-IoT timer; entry/exit publishing is common
// to every transition via Machine.transitionTo (spec §4.1 Transferring.enter).
func (m *Machine) transferringEnter() {
	m.timers.Disarm(timerset.KindNBIoTInactivity)
}

// transferringHandle implements spec §4.1's Transferring row.
func transferringHandle(m *Machine, e dispatcher.Event) handleResult {
	switch e.Kind {
	case KindDatagramTransferChanged:
		return transferringHandleTransfer(m, e.Payload.(DatagramTransferChangedPayload))

	case KindModemStateChanged:
		switch e.Payload.(ModemStateChangedPayload).State {
		case modem.StateOff:
			return toState(modem.StateOff)
		case modem.StateNotConnected:
			return toState(modem.StateNotConnected)
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

// transferringHandleTransfer latches the sending flag (data model §3) and
// routes the quiescent-exit decision (spec §4.1 state chart).
func transferringHandleTransfer(m *Machine, p DatagramTransferChangedPayload) handleResult {
	s := p.State
	if s.Send == datagram.SendSending {
		m.ctx.sendingTriggeredDuringTransferring = true
	}

	if !s.IsQuiescent() {
		return noTransition()
	}

	attachRequired := m.carrier != nil && m.carrier.IsAttachRequiredForNBIoT()
	switch {
	case attachRequired:
		return toState(modem.StateConnected)
	case s.HasFailure():
		return toState(modem.StateIdle)
	default:
		return toState(modem.StateListening)
	}
}
