package modem

// State is the ordered set of modem states reported by the radio. Exactly
// one is current at any time (spec §3 I1, applied to the modem side).
type State uint8

const (
	StateUnknown State = iota
	StateOff
	StateEnabling
	StateDisabling
	StateIdle
	StateTransferring
	StateListening
	StateNotConnected
	StateConnected
	StateUnavailable
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUnknown:
		return "UNKNOWN"
	case StateOff:
		return "OFF"
	case StateEnabling:
		return "ENABLING"
	case StateDisabling:
		return "DISABLING"
	case StateIdle:
		return "IDLE"
	case StateTransferring:
		return "TRANSFERRING"
	case StateListening:
		return "LISTENING"
	case StateNotConnected:
		return "NOT_CONNECTED"
	case StateConnected:
		return "CONNECTED"
	case StateUnavailable:
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// CellularScanResult is the completion result of a request to disable
// cellular scanning while satellite mode is on (spec §4.1's disable-cellular
// protocol).
type CellularScanResult uint8

const (
	// CellularScanDisabled indicates the request succeeded.
	CellularScanDisabled CellularScanResult = iota
	// CellularScanError indicates any non-success completion.
	CellularScanError
)

// EnableAttributes carries the parameters of a requestSatelliteEnabled call;
// only the screen-off inactivity handler issues this, always with
// Enable=false and Emergency=false (spec §4.1 Screen-off timer).
type EnableAttributes struct {
	Enable    bool
	Emergency bool
}

// EnableResult is the asynchronous result of a requestSatelliteEnabled call.
type EnableResult uint8

const (
	EnableResultSuccess EnableResult = iota
	EnableResultError
)

// AbortReason identifies why the satellite controller was asked to abort and
// clean up — only REQUEST_ABORTED is used, on every entry to Off (spec
// §4.1 Off.enter).
type AbortReason uint8

const (
	ReasonRequestAborted AbortReason = iota
)

// Interface is the session core's view of the modem/radio capability.
// Implementations live outside this module; the core only issues requests
// and later observes completions or state changes as dispatcher events.
type Interface interface {
	// RequestSatelliteListeningEnabled arms or disarms listening mode with
	// the given timeout. Fire-and-forget from the core's point of view —
	// expiry is tracked independently by the Listening timer.
	RequestSatelliteListeningEnabled(enabled bool, timeoutMillis int)

	// EnableCellularModemWhileSatelliteModeIsOn requests cellular scanning
	// be turned on or off while satellite mode remains active. onComplete,
	// if non-nil, is invoked exactly once with the result; the core uses
	// this only for the disable-while-Idle protocol of spec §4.1.
	EnableCellularModemWhileSatelliteModeIsOn(enabled bool, onComplete func(CellularScanResult))

	// RequestSatelliteEnabled asks the radio to enable or disable satellite
	// mode. Used only by the screen-off inactivity handler, which always
	// passes Enable=false, Emergency=false.
	RequestSatelliteEnabled(attrs EnableAttributes, callback func(EnableResult))
}

// Controller is the satellite controller collaborator notified on entry to
// Off (spec §6 Outbound, satellite controller).
type Controller interface {
	MoveSatelliteToOffStateAndCleanUpResources(reason AbortReason)
}
