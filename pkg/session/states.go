package session

import "github.com/satband/satsession/pkg/modem"

// buildHandlerTable assembles the table-of-funcs that is this package's
// idiomatic-Go analogue of a tagged union with per-variant methods (spec §9
// design note; see doc.go). Enabling/Disabling omit enter/exit beyond the
// unconditional publish Machine.transitionTo already performs for every
// transition (spec §4.1: "Enabling.enter / Disabling.enter: publish state").
func (m *Machine) buildHandlerTable() map[modem.State]stateHandlers {
	return map[modem.State]stateHandlers{
		modem.StateOff: {
			enter:  (*Machine).offEnter,
			exit:   (*Machine).offExit,
			handle: offHandle,
		},
		modem.StateEnabling: {
			handle: enablingHandle,
		},
		modem.StateIdle: {
			enter:  (*Machine).idleEnter,
			exit:   (*Machine).idleExit,
			handle: idleHandle,
		},
		modem.StateTransferring: {
			enter:  (*Machine).transferringEnter,
			handle: transferringHandle,
		},
		modem.StateListening: {
			enter:  (*Machine).listeningEnter,
			exit:   (*Machine).listeningExit,
			handle: listeningHandle,
		},
		modem.StateNotConnected: {
			enter:  (*Machine).notConnectedEnter,
			exit:   (*Machine).notConnectedExit,
			handle: notConnectedHandle,
		},
		modem.StateConnected: {
			enter:  (*Machine).connectedEnter,
			handle: connectedHandle,
		},
		modem.StateDisabling: {
			handle: disablingHandle,
		},
		modem.StateUnavailable: {
			handle: unavailableHandle,
		},
	}
}
