package session

import (
	"time"

	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"
)

func durationFromMillis(millis int) time.Duration {
	return time.Duration(millis) * time.Millisecond
}

// isOperationalState reports whether s is one of the states in which the
// screen-off inactivity timer may be armed (spec §3 I5: "after satellite has
// transitioned into an operational state").
func isOperationalState(s modem.State) bool {
	switch s {
	case modem.StateIdle, modem.StateTransferring, modem.StateListening,
		modem.StateNotConnected, modem.StateConnected:
		return true
	default:
		return false
	}
}

// computeListeningTimeout selects the listening duration per the last
// transfer direction observed during Transferring (spec §4.1 Listening.enter,
// §8 scenario 2).
func (m *Machine) computeListeningTimeout() int {
	if m.ctx.sendingTriggeredDuringTransferring {
		return m.config.ListenFromSendingMillis
	}
	return m.config.ListenFromReceivingMillis
}

// evaluateNbIotTimer arms or disarms the NB-IoT inactivity timer per spec
// §4.5: armed only when the subscription is NTN-only and the datagram
// subsystem is fully idle.
func (m *Machine) evaluateNbIotTimer() {
	if m.carrier != nil && m.carrier.IsNTNOnlySubscription() && m.datagramIsIdle() {
		m.armTimer(timerset.KindNBIoTInactivity, m.config.NBIoTInactivityMillis)
		return
	}
	m.timers.Disarm(timerset.KindNBIoTInactivity)
}

// evaluateCarrierRoamingTimer arms or disarms the carrier-roaming NB-IoT
// inactivity timer (NotConnected only, spec §4.5). Call only while
// current == NotConnected.
func (m *Machine) evaluateCarrierRoamingTimer() {
	if m.carrier == nil || !m.carrier.NBIotCarrierRoamingEnabled() {
		m.timers.Disarm(timerset.KindCarrierRoamingInactivity)
		return
	}
	if m.ctx.isDeviceAligned {
		m.timers.Disarm(timerset.KindCarrierRoamingInactivity)
		return
	}
	if !m.datagramIsIdle() {
		m.timers.Disarm(timerset.KindCarrierRoamingInactivity)
		return
	}

	var duration int
	switch {
	case m.ctx.isEmergency && m.carrier.SupportsESOS():
		duration = int(m.config.ESOSInactivity.Milliseconds())
	case m.carrier.SupportsP2PSMS():
		duration = int(m.config.P2PSMSInactivity.Milliseconds())
	default:
		// "else refuse to start" (spec §4.5).
		m.timers.Disarm(timerset.KindCarrierRoamingInactivity)
		return
	}
	m.armTimer(timerset.KindCarrierRoamingInactivity, duration)
}

// evaluateScreenOffTimer arms or disarms the screen-off inactivity timer per
// spec §3 I5: exists only in an operational state, with the screen off and
// emergency-mode false.
func (m *Machine) evaluateScreenOffTimer() {
	if isOperationalState(m.ctx.current) && !m.ctx.isScreenOn && !m.ctx.isEmergency {
		m.armTimer(timerset.KindScreenOffInactivity, int(m.config.ScreenOffInactivity.Milliseconds()))
		return
	}
	m.timers.Disarm(timerset.KindScreenOffInactivity)
}

func (m *Machine) datagramIsIdle() bool {
	return m.datagram != nil && m.datagram.IsIdle()
}

func (m *Machine) armTimer(kind timerset.Kind, millis int) {
	if millis <= 0 {
		return
	}
	m.timers.Arm(kind, durationFromMillis(millis))
}

// startDisableCellularProtocol guards, issues the disable-cellular-scanning
// request, and arranges the completion to arrive as a dispatcher event
// (spec §4.1 disable-cellular-while-satellite-on protocol, Idle only).
func (m *Machine) startDisableCellularProtocol() {
	if m.ctx.disableCellularInProgress {
		return
	}
	m.ctx.disableCellularInProgress = true
	if m.modem == nil {
		return
	}
	m.modem.EnableCellularModemWhileSatelliteModeIsOn(false, m.notifyCellularScanComplete)
}
