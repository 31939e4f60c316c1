package session

import (
	"sync"
	"testing"
	"time"

	"github.com/satband/satsession/pkg/modem"
)

// drain waits until the machine's dispatcher queue is empty, following
// pkg/dispatcher's own drain-by-polling test helper.
func drain(t *testing.T, m *Machine) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if m.queue.Pending() == 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("dispatcher queue did not drain, Pending() = %d", m.queue.Pending())
}

// fakeModem is a no-op modem.Interface recording every call for assertions.
type fakeModem struct {
	mu sync.Mutex

	listeningCalls []listeningCall
	cellularCalls  []cellularCall
	enableCalls    []modem.EnableAttributes

	// cellularResult is delivered synchronously to onComplete when non-nil,
	// simulating a modem that resolves the disable-cellular protocol inline.
	cellularResult *modem.CellularScanResult
}

type listeningCall struct {
	Enabled bool
	Timeout int
}

type cellularCall struct {
	Enabled bool
}

func (f *fakeModem) RequestSatelliteListeningEnabled(enabled bool, timeoutMillis int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeningCalls = append(f.listeningCalls, listeningCall{enabled, timeoutMillis})
}

func (f *fakeModem) EnableCellularModemWhileSatelliteModeIsOn(enabled bool, onComplete func(modem.CellularScanResult)) {
	f.mu.Lock()
	f.cellularCalls = append(f.cellularCalls, cellularCall{enabled})
	result := f.cellularResult
	f.mu.Unlock()

	if onComplete != nil && result != nil {
		onComplete(*result)
	}
}

func (f *fakeModem) RequestSatelliteEnabled(attrs modem.EnableAttributes, callback func(modem.EnableResult)) {
	f.mu.Lock()
	f.enableCalls = append(f.enableCalls, attrs)
	f.mu.Unlock()
	if callback != nil {
		callback(modem.EnableResultSuccess)
	}
}

func (f *fakeModem) snapshot() ([]listeningCall, []cellularCall, []modem.EnableAttributes) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]listeningCall(nil), f.listeningCalls...),
		append([]cellularCall(nil), f.cellularCalls...),
		append([]modem.EnableAttributes(nil), f.enableCalls...)
}

// fakeController is a no-op modem.Controller recording abort notifications.
type fakeController struct {
	mu          sync.Mutex
	abortReason []modem.AbortReason
}

func (f *fakeController) MoveSatelliteToOffStateAndCleanUpResources(reason modem.AbortReason) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.abortReason = append(f.abortReason, reason)
}

func (f *fakeController) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.abortReason)
}

// fakeDatagram is a datagram.Subsystem test double whose idle flag and
// observed-state log are directly inspectable.
type fakeDatagram struct {
	mu     sync.Mutex
	idle   bool
	states []modem.State
}

func (f *fakeDatagram) IsIdle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.idle
}

func (f *fakeDatagram) setIdle(idle bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.idle = idle
}

func (f *fakeDatagram) OnSatelliteModemStateChanged(state modem.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, state)
}

// fakeCarrier is a carrierconfig.Provider test double with settable flags.
type fakeCarrier struct {
	mu             sync.Mutex
	attachRequired bool
	ntnOnly        bool
	carrierRoaming bool
	supportsESOS   bool
	supportsP2PSMS bool
}

func (f *fakeCarrier) IsAttachRequiredForNBIoT() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attachRequired
}

func (f *fakeCarrier) IsNTNOnlySubscription() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ntnOnly
}

func (f *fakeCarrier) NBIotCarrierRoamingEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.carrierRoaming
}

func (f *fakeCarrier) SupportsESOS() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.supportsESOS
}

func (f *fakeCarrier) SupportsP2PSMS() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.supportsP2PSMS
}

// fakeListener is a listener.Listener test double capturing the ordered
// sequence of state and emergency notifications it received.
type fakeListener struct {
	mu        sync.Mutex
	states    []modem.State
	emergency []bool
}

func (f *fakeListener) OnSatelliteModemStateChanged(state modem.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, state)
}

func (f *fakeListener) OnEmergencyModeChanged(emergency bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emergency = append(f.emergency, emergency)
}

func (f *fakeListener) snapshot() ([]modem.State, []bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]modem.State(nil), f.states...), append([]bool(nil), f.emergency...)
}

func newTestMachine(carrier *fakeCarrier, dg *fakeDatagram, md *fakeModem, ctrl *fakeController) *Machine {
	bound := make(chan string, 8)
	return NewMachine(Options{
		SatelliteSupported: true,
		Modem:              md,
		Controller:         ctrl,
		Datagram:           dg,
		Carrier:            carrier,
		GatewayBind: func(name string) error {
			bound <- name
			return nil
		},
		GatewayUnbind:    func() {},
		MockModemAllowed: true,
	})
}
