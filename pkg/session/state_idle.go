package session

import (
	"github.com/satband/satsession/pkg/datagram"
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"
)

// idleEnter resets the sending latch, stops the NB-IoT timer (Idle has no
// use for it), and fires the modem's cellular-scanning re-enable
// fire-and-forget (spec §4.1 Idle.enter).
func (m *Machine) idleEnter() {
	m.ctx.sendingTriggeredDuringTransferring = false
	m.timers.Disarm(timerset.KindNBIoTInactivity)
	if m.modem != nil {
		m.modem.EnableCellularModemWhileSatelliteModeIsOn(true, nil)
	}
}

// idleExit requests cellular scanning be disabled again, fire-and-forget,
// unless the subscription requires an NB-IoT attach (spec §4.1 Idle.exit).
func (m *Machine) idleExit() {
	if m.modem != nil && !m.ctx.isAttachRequiredForNbIot {
		m.modem.EnableCellularModemWhileSatelliteModeIsOn(false, nil)
	}
}

// idleHandle implements spec §4.1's Idle row, including the disable-cellular-
// while-satellite-on protocol (spec §4.1 "Disable-cellular-while-satellite-on
// protocol (Idle only)").
func idleHandle(m *Machine, e dispatcher.Event) handleResult {
	switch e.Kind {
	case KindEnablementStarted:
		if !e.Payload.(EnablementStartedPayload).Enable {
			return toState(modem.StateDisabling)
		}
		return unhandled()

	case KindEnabledChanged:
		if !e.Payload.(EnabledChangedPayload).Enabled {
			return toState(modem.StateOff)
		}
		return unhandled()

	case KindModemStateChanged:
		if e.Payload.(ModemStateChangedPayload).State == modem.StateOff {
			return toState(modem.StateOff)
		}
		return unhandled()

	case KindDatagramTransferChanged:
		return idleHandleTransfer(m, e.Payload.(DatagramTransferChangedPayload))

	case KindCellularScanComplete:
		p := e.Payload.(CellularScanCompletePayload)
		m.ctx.disableCellularInProgress = false
		if p.Result == modem.CellularScanDisabled {
			return toState(modem.StateNotConnected)
		}
		// "If the modem returns an error... the machine remains in Idle"
		// (spec §4.1 Failure semantics).
		return noTransition()

	default:
		return unhandled()
	}
}

func idleHandleTransfer(m *Machine, p DatagramTransferChangedPayload) handleResult {
	s := p.State
	if s.Send == datagram.SendSending {
		m.ctx.sendingTriggeredDuringTransferring = true
	}
	attachRequired := m.carrier != nil && m.carrier.IsAttachRequiredForNBIoT()
	m.ctx.isAttachRequiredForNbIot = attachRequired

	switch {
	case s.IsWaitingToConnect() && attachRequired:
		if !m.ctx.disableCellularInProgress {
			m.startDisableCellularProtocol()
		}
		return noTransition()
	case s.IsActive() && !attachRequired:
		return toState(modem.StateTransferring)
	default:
		return noTransition()
	}
}
