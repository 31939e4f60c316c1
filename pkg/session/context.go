package session

import "github.com/satband/satsession/pkg/modem"

// SessionContext is the mutable state exclusively owned by the state
// machine (spec §3). It is only ever read or written on the dispatcher's
// consumer goroutine.
type SessionContext struct {
	current  modem.State
	previous modem.State

	// isSatelliteSupported is immutable after construction; it decides the
	// initial state (Off if true, Unavailable if false — spec §4.1).
	isSatelliteSupported bool

	// isAttachRequiredForNbIot mirrors the carrier provider's answer as of
	// the most recent relevant transition (spec §3: "queried from external
	// collaborator each relevant transition").
	isAttachRequiredForNbIot bool

	isDemoMode      bool
	isEmergency     bool
	isScreenOn      bool
	isDeviceAligned bool

	// sendingTriggeredDuringTransferring latches true whenever Sending is
	// observed while in Transferring; reset to false on entry to
	// {Off, Idle, Listening} (spec §3).
	sendingTriggeredDuringTransferring bool

	// disableCellularInProgress guards against re-entrant "disable cellular
	// scanning" requests during Idle's disable-cellular protocol (spec
	// §4.1).
	disableCellularInProgress bool

	// listeningTimeoutMillis is the duration computed on entry to Listening
	// (spec §9 "Demo mode": "recompute timeout values when entering
	// Listening so a toggle between modes takes effect at the next
	// listening entry"), exposed for observability via Snapshot.
	listeningTimeoutMillis int
}

// newSessionContext creates the initial context. The initial state is Off
// when satellite is supported, Unavailable otherwise (spec §4.1); Unavailable
// is terminal for the session's lifetime.
func newSessionContext(satelliteSupported bool) *SessionContext {
	initial := modem.StateOff
	if !satelliteSupported {
		initial = modem.StateUnavailable
	}
	return &SessionContext{
		current:              initial,
		previous:             initial,
		isSatelliteSupported: satelliteSupported,
		isScreenOn:           true,
	}
}

// Snapshot is a read-only copy of the context's flags and timeouts, for
// observability and test assertions (SPEC_FULL §3 expansion).
type Snapshot struct {
	Current                modem.State
	Previous                modem.State
	IsDemoMode              bool
	IsEmergency             bool
	IsScreenOn              bool
	IsDeviceAligned         bool
	SendingTriggeredDuring  bool
	DisableCellularInFlight bool
	ListeningTimeoutMillis  int
}

// Snapshot returns a copy of the context's observable fields.
func (c *SessionContext) Snapshot() Snapshot {
	return Snapshot{
		Current:                 c.current,
		Previous:                c.previous,
		IsDemoMode:              c.isDemoMode,
		IsEmergency:             c.isEmergency,
		IsScreenOn:              c.isScreenOn,
		IsDeviceAligned:         c.isDeviceAligned,
		SendingTriggeredDuring:  c.sendingTriggeredDuringTransferring,
		DisableCellularInFlight: c.disableCellularInProgress,
		ListeningTimeoutMillis:  c.listeningTimeoutMillis,
	}
}
