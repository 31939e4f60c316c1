package session

import (
	"github.com/satband/satsession/pkg/datagram"
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
)

// OnDatagramTransferStateChanged posts event #1 of spec §2. Safe to call
// from any goroutine.
func (m *Machine) OnDatagramTransferStateChanged(state datagram.TransferState) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindDatagramTransferChanged,
		Payload: DatagramTransferChangedPayload{State: state},
	})
}

// OnSatelliteEnablementStarted posts event #2 of spec §2.
func (m *Machine) OnSatelliteEnablementStarted(enable bool) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindEnablementStarted,
		Payload: EnablementStartedPayload{Enable: enable},
	})
}

// OnSatelliteEnabledStateChanged posts event #3 of spec §2.
func (m *Machine) OnSatelliteEnabledStateChanged(enabled bool) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindEnabledChanged,
		Payload: EnabledChangedPayload{Enabled: enabled},
	})
}

// OnSatelliteEnablementFailed posts event #4 of spec §2.
func (m *Machine) OnSatelliteEnablementFailed(wasEnable bool) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindEnablementFailed,
		Payload: EnablementFailedPayload{WasEnable: wasEnable},
	})
}

// OnSatelliteModemStateChanged posts event #5 of spec §2.
func (m *Machine) OnSatelliteModemStateChanged(state modem.State) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindModemStateChanged,
		Payload: ModemStateChangedPayload{State: state},
	})
}

// OnScreenChanged posts event #7 of spec §2.
func (m *Machine) OnScreenChanged(on bool) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindScreenChanged,
		Payload: ScreenChangedPayload{On: on},
	})
}

// OnEmergencyModeChanged posts event #8 of spec §2 — fanned out to
// listeners only, never consumed by a state transition.
func (m *Machine) OnEmergencyModeChanged(emergency bool) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindEmergencyModeChanged,
		Payload: EmergencyModeChangedPayload{Emergency: emergency},
	})
}

// SetDeviceAlignedWithSatellite posts event #9 of spec §2: when aligned,
// stop the carrier-roaming timer; when not aligned and current ==
// NotConnected, evaluate (re)starting it.
func (m *Machine) SetDeviceAlignedWithSatellite(aligned bool) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindDeviceAlignedChanged,
		Payload: DeviceAlignedChangedPayload{Aligned: aligned},
	})
}

// SetDemoMode switches the listening timeouts to the 3000ms demo values (or
// back) the next time they are computed (spec §6, §9 "Demo mode").
func (m *Machine) SetDemoMode(enabled bool) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindSetDemoMode,
		Payload: SetDemoModePayload{Enabled: enabled},
	})
}

// SetListeningTimeoutOverride is the test-only surface of spec §6: zero
// restores defaults, any other value overrides all three durations. Returns
// ErrMockSurfaceDisabled unless the Machine was constructed with
// MockModemAllowed.
func (m *Machine) SetListeningTimeoutOverride(millis int) error {
	if !m.mockModemAllowed {
		return ErrMockSurfaceDisabled
	}
	m.queue.Post(dispatcher.Event{
		Kind:    KindSetListeningTimeoutOverride,
		Payload: SetListeningTimeoutOverridePayload{Millis: millis},
	})
	return nil
}

// SetGatewayPackageName is the test-only surface of spec §6. Returns
// ErrMockSurfaceDisabled unless the Machine was constructed with
// MockModemAllowed.
func (m *Machine) SetGatewayPackageName(name string) error {
	if !m.mockModemAllowed {
		return ErrMockSurfaceDisabled
	}
	m.queue.Post(dispatcher.Event{
		Kind:    KindSetGatewayPackageName,
		Payload: SetGatewayPackageNamePayload{Name: name},
	})
	return nil
}

// notifyCellularScanComplete posts event #6 of spec §2. Called by the
// closure Idle's disable-cellular protocol hands to
// modem.Interface.EnableCellularModemWhileSatelliteModeIsOn as onComplete.
func (m *Machine) notifyCellularScanComplete(result modem.CellularScanResult) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindCellularScanComplete,
		Payload: CellularScanCompletePayload{Result: result},
	})
}
