package session

import (
	"github.com/satband/satsession/pkg/datagram"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"

	"github.com/satband/satsession/pkg/dispatcher"
)

// Event kinds posted onto the dispatcher (spec §2 "Input events", §6
// Inbound, plus the test-only surface of §6).
const (
	KindDatagramTransferChanged dispatcher.Kind = iota
	KindEnablementStarted
	KindEnabledChanged
	KindEnablementFailed
	KindModemStateChanged
	KindCellularScanComplete
	KindScreenChanged
	KindEmergencyModeChanged
	KindDeviceAlignedChanged
	KindSetDemoMode
	KindSetListeningTimeoutOverride
	KindSetGatewayPackageName
	KindTimerFired

	// KindQuery is not part of spec §2's event vocabulary: it runs an
	// arbitrary read-only closure on the dispatcher's consumer goroutine so
	// Snapshot/RegisterListener can read SessionContext without a second
	// lock domain, preserving "only touched on the consumer goroutine."
	KindQuery
)

// queryPayload carries a closure to run on the dispatcher goroutine and a
// channel to close once it has run.
type queryPayload struct {
	fn   func(*Machine)
	done chan struct{}
}

// DatagramTransferChangedPayload is event #1 of spec §2.
type DatagramTransferChangedPayload struct {
	State datagram.TransferState
}

// EnablementStartedPayload is event #2 of spec §2.
type EnablementStartedPayload struct {
	Enable bool
}

// EnabledChangedPayload is event #3 of spec §2.
type EnabledChangedPayload struct {
	Enabled bool
}

// EnablementFailedPayload is event #4 of spec §2.
type EnablementFailedPayload struct {
	WasEnable bool
}

// ModemStateChangedPayload is event #5 of spec §2.
type ModemStateChangedPayload struct {
	State modem.State
}

// CellularScanCompletePayload is event #6 of spec §2 — the asynchronous
// completion of a "disable cellular scanning while satellite is on" request
// issued by Idle's disable-cellular protocol (spec §4.1).
type CellularScanCompletePayload struct {
	Result modem.CellularScanResult
}

// ScreenChangedPayload is event #7 of spec §2.
type ScreenChangedPayload struct {
	On bool
}

// EmergencyModeChangedPayload is event #8 of spec §2 — fanned out to
// listeners only, never consumed by a state transition.
type EmergencyModeChangedPayload struct {
	Emergency bool
}

// DeviceAlignedChangedPayload is event #9 of spec §2.
type DeviceAlignedChangedPayload struct {
	Aligned bool
}

// SetDemoModePayload carries the test/ops-surface demo-mode toggle of
// spec §6.
type SetDemoModePayload struct {
	Enabled bool
}

// SetListeningTimeoutOverridePayload is the test-only surface of spec §6;
// zero restores defaults.
type SetListeningTimeoutOverridePayload struct {
	Millis int
}

// SetGatewayPackageNamePayload is the test-only surface of spec §6.
type SetGatewayPackageNamePayload struct {
	Name string
}

// TimerFiredPayload carries the kind of timer that expired (spec §4.5);
// posted by pkg/timerset's expiry callback.
type TimerFiredPayload struct {
	Kind timerset.Kind
}
