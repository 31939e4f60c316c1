package datagram

import "github.com/satband/satsession/pkg/modem"

// SendPhase is the send-side phase of a datagram transfer.
type SendPhase uint8

const (
	SendIdle SendPhase = iota
	SendWaitingToConnect
	SendSending
	SendSuccess
	SendFailed
)

// String returns a human-readable phase name.
func (p SendPhase) String() string {
	switch p {
	case SendIdle:
		return "IDLE"
	case SendWaitingToConnect:
		return "WAITING_TO_CONNECT"
	case SendSending:
		return "SENDING"
	case SendSuccess:
		return "SEND_SUCCESS"
	case SendFailed:
		return "SEND_FAILED"
	default:
		return "UNKNOWN"
	}
}

// RecvPhase is the receive-side phase of a datagram transfer.
type RecvPhase uint8

const (
	RecvNone RecvPhase = iota
	RecvIdle
	RecvWaitingToConnect
	RecvReceiving
	RecvSuccess
	RecvFailed
)

// String returns a human-readable phase name.
func (p RecvPhase) String() string {
	switch p {
	case RecvNone:
		return "NONE"
	case RecvIdle:
		return "IDLE"
	case RecvWaitingToConnect:
		return "WAITING_TO_CONNECT"
	case RecvReceiving:
		return "RECEIVING"
	case RecvSuccess:
		return "RECEIVE_SUCCESS"
	case RecvFailed:
		return "RECEIVE_FAILED"
	default:
		return "UNKNOWN"
	}
}

// TransferState is the product of the send and receive phases, as reported
// by the datagram subsystem on every change.
type TransferState struct {
	Send SendPhase
	Recv RecvPhase
}

// IsSending reports whether send is actively transferring or has just
// finished successfully.
func IsSending(s SendPhase) bool {
	return s == SendSending || s == SendSuccess
}

// IsWaitingToConnect reports whether either phase is waiting to connect.
func (s TransferState) IsWaitingToConnect() bool {
	return s.Send == SendWaitingToConnect || s.Recv == RecvWaitingToConnect
}

// IsActive reports whether either side of the transfer is actively sending
// or receiving (the event that moves Idle/Listening into Transferring).
func (s TransferState) IsActive() bool {
	return IsSending(s.Send) || (s.Recv == RecvReceiving || s.Recv == RecvSuccess)
}

// IsQuiescent reports whether both send and receive have settled into a
// terminal or idle phase (neither actively transferring nor waiting).
func (s TransferState) IsQuiescent() bool {
	sendDone := s.Send == SendIdle || s.Send == SendSuccess || s.Send == SendFailed
	recvDone := s.Recv == RecvNone || s.Recv == RecvIdle || s.Recv == RecvSuccess || s.Recv == RecvFailed
	return sendDone && recvDone
}

// HasFailure reports whether the last transfer attempt ended in a failure,
// used by Transferring's quiescent-exit rule (spec §4.1).
func (s TransferState) HasFailure() bool {
	return s.Send == SendFailed || s.Recv == RecvFailed
}

// Subsystem is the external datagram subsystem's contract with the session
// core: it is queried for idle quiescence and notified of modem state
// transitions before listeners are (spec §6 Outbound), never mutated
// otherwise by the core.
type Subsystem interface {
	// IsIdle reports whether the subsystem currently has no outstanding
	// send or poll activity.
	IsIdle() bool

	// OnSatelliteModemStateChanged is called once per committed transition,
	// before the listener registry is broadcast to.
	OnSatelliteModemStateChanged(state modem.State)
}

