package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satband/satsession/pkg/carrierconfig"
	"github.com/satband/satsession/pkg/datagram"
	"github.com/satband/satsession/pkg/gateway"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"
)

func TestInitialStateIsOffWhenSupported(t *testing.T) {
	m := newTestMachine(&fakeCarrier{}, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	assert.Equal(t, modem.StateOff, m.Snapshot().Current)
}

func TestInitialStateIsUnavailableWhenUnsupported(t *testing.T) {
	m := NewMachine(Options{SatelliteSupported: false})
	defer m.Close()

	assert.Equal(t, modem.StateUnavailable, m.Snapshot().Current)
}

func TestUnavailableIsTerminal(t *testing.T) {
	m := NewMachine(Options{SatelliteSupported: false})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	drain(t, m)

	assert.Equal(t, modem.StateUnavailable, m.Snapshot().Current)
}

func TestOffToEnablingToIdleWhenAttachNotRequired(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: false}
	m := newTestMachine(carrier, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	drain(t, m)
	require.Equal(t, modem.StateEnabling, m.Snapshot().Current)

	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)
	assert.Equal(t, modem.StateIdle, m.Snapshot().Current)
}

func TestOffToEnablingToNotConnectedWhenAttachRequired(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: true}
	m := newTestMachine(carrier, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)

	assert.Equal(t, modem.StateNotConnected, m.Snapshot().Current)
}

func TestEnablingDefersModemStateChangedUntilAfterTransition(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: false}
	dg := &fakeDatagram{}
	m := newTestMachine(carrier, dg, &fakeModem{}, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	drain(t, m)

	// A modem state change other than Off is deferred while Enabling.
	m.OnSatelliteModemStateChanged(modem.StateIdle)
	drain(t, m)
	require.Equal(t, modem.StateEnabling, m.Snapshot().Current, "deferred event must not be handled yet")

	// Completing enablement flushes the deferred event as the first event
	// of the new state.
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)

	assert.Equal(t, modem.StateIdle, m.Snapshot().Current)
}

func TestEnablingToOffDiscardsDeferredModemStateChanged(t *testing.T) {
	carrier := &fakeCarrier{}
	m := newTestMachine(carrier, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	drain(t, m)

	m.OnSatelliteModemStateChanged(modem.StateIdle) // deferred
	drain(t, m)

	m.OnSatelliteEnabledStateChanged(false) // Enabling -> Off, discard deferred
	drain(t, m)

	require.Equal(t, modem.StateOff, m.Snapshot().Current)

	// If the deferred ModemStateChanged(Idle) had survived, it would have
	// fired again once Off transitions out. Drive Off -> Enabling -> Idle
	// and confirm the stale event never resurfaces as an extra transition.
	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)
	assert.Equal(t, modem.StateIdle, m.Snapshot().Current)
}

func TestIdleToTransferringToListeningToIdle(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: false}
	md := &fakeModem{}
	m := newTestMachine(carrier, &fakeDatagram{}, md, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)
	require.Equal(t, modem.StateIdle, m.Snapshot().Current)

	m.OnDatagramTransferStateChanged(datagram.TransferState{Send: datagram.SendSending, Recv: datagram.RecvNone})
	drain(t, m)
	require.Equal(t, modem.StateTransferring, m.Snapshot().Current)

	m.OnDatagramTransferStateChanged(datagram.TransferState{Send: datagram.SendSuccess, Recv: datagram.RecvNone})
	drain(t, m)
	require.Equal(t, modem.StateListening, m.Snapshot().Current)

	listening, _, _ := md.snapshot()
	require.Len(t, listening, 1)
	assert.Equal(t, 180000, listening[0].Timeout, "sending latch selects ListenFromSendingMillis")

	m.postTimerFired(timerset.KindListening)
	drain(t, m)
	assert.Equal(t, modem.StateIdle, m.Snapshot().Current)
}

func TestTransferringQuiescentWithFailureGoesToIdle(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: false}
	m := newTestMachine(carrier, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	m.OnDatagramTransferStateChanged(datagram.TransferState{Send: datagram.SendSending, Recv: datagram.RecvNone})
	drain(t, m)
	require.Equal(t, modem.StateTransferring, m.Snapshot().Current)

	m.OnDatagramTransferStateChanged(datagram.TransferState{Send: datagram.SendFailed, Recv: datagram.RecvNone})
	drain(t, m)

	assert.Equal(t, modem.StateIdle, m.Snapshot().Current)
}

func TestTransferringQuiescentWithAttachRequiredGoesToConnected(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: true}
	m := newTestMachine(carrier, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)
	require.Equal(t, modem.StateNotConnected, m.Snapshot().Current)

	// A modem Connected report moves NotConnected -> Connected.
	m.OnSatelliteModemStateChanged(modem.StateConnected)
	drain(t, m)
	require.Equal(t, modem.StateConnected, m.Snapshot().Current)

	m.OnDatagramTransferStateChanged(datagram.TransferState{Send: datagram.SendSending, Recv: datagram.RecvNone})
	drain(t, m)
	require.Equal(t, modem.StateTransferring, m.Snapshot().Current)

	m.OnDatagramTransferStateChanged(datagram.TransferState{Send: datagram.SendSuccess, Recv: datagram.RecvSuccess})
	drain(t, m)

	assert.Equal(t, modem.StateConnected, m.Snapshot().Current)
}

func TestDisablingRestoresByPreviousOnFailedDisable(t *testing.T) {
	tests := []struct {
		name     string
		previous modem.State
		want     modem.State
	}{
		{"from Connected", modem.StateConnected, modem.StateConnected},
		{"from Transferring", modem.StateTransferring, modem.StateConnected},
		{"from Listening", modem.StateListening, modem.StateConnected},
		{"from Enabling", modem.StateEnabling, modem.StateEnabling},
		{"from Off", modem.StateOff, modem.StateOff},
		{"from NotConnected", modem.StateNotConnected, modem.StateNotConnected},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := disablingRestoreTarget(tc.previous)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDisablingEnablementFailedWasEnableTrueStaysAndRecordsOffAsPrevious(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: false}
	m := newTestMachine(carrier, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)
	require.Equal(t, modem.StateIdle, m.Snapshot().Current)

	m.OnSatelliteEnablementStarted(false)
	drain(t, m)
	require.Equal(t, modem.StateDisabling, m.Snapshot().Current)

	m.OnSatelliteEnablementFailed(true)
	drain(t, m)

	assert.Equal(t, modem.StateDisabling, m.Snapshot().Current)
	assert.Equal(t, modem.StateOff, m.Snapshot().Previous)
}

func TestModemResetToOffAlwaysWinsFromAnyOperationalState(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: false}
	m := newTestMachine(carrier, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)
	require.Equal(t, modem.StateIdle, m.Snapshot().Current)

	m.OnSatelliteModemStateChanged(modem.StateOff)
	drain(t, m)

	assert.Equal(t, modem.StateOff, m.Snapshot().Current)
}

func TestRegisterListenerDeliversCurrentStateSynchronously(t *testing.T) {
	m := newTestMachine(&fakeCarrier{}, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	l := &fakeListener{}
	id := m.RegisterListener("", l)
	require.NotEmpty(t, id)

	states, _ := l.snapshot()
	require.Len(t, states, 1)
	assert.Equal(t, modem.StateOff, states[0])
}

func TestRegisterUnregisterRegisterRoundTrip(t *testing.T) {
	m := newTestMachine(&fakeCarrier{}, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	l := &fakeListener{}
	id := m.RegisterListener("watcher", l)
	m.UnregisterListener(id)
	id2 := m.RegisterListener("watcher", l)

	assert.Equal(t, id, id2)
	states, _ := l.snapshot()
	assert.Len(t, states, 2, "each Register call delivers one priming notification")
}

func TestListenerSequenceIsOrderedSubsequenceOfCommittedStates(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: false}
	m := newTestMachine(carrier, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	l := &fakeListener{}
	m.RegisterListener("watcher", l)

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)

	states, _ := l.snapshot()
	require.GreaterOrEqual(t, len(states), 1)
	assert.Equal(t, m.Snapshot().Current, states[len(states)-1])

	seen := map[modem.State]bool{}
	for _, s := range states {
		seen[s] = true
	}
	assert.True(t, seen[modem.StateEnabling])
	assert.True(t, seen[modem.StateIdle])
}

func TestDemoModeToggleRestoresOriginalTimeouts(t *testing.T) {
	m := newTestMachine(&fakeCarrier{}, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	before := m.config.ListenFromSendingMillis

	m.SetDemoMode(true)
	drain(t, m)
	require.Equal(t, 3000, m.config.ListenFromSendingMillis)

	m.SetDemoMode(false)
	drain(t, m)
	assert.Equal(t, before, m.config.ListenFromSendingMillis)
}

func TestSetListeningTimeoutOverrideZeroRestoresDefaults(t *testing.T) {
	m := newTestMachine(&fakeCarrier{}, &fakeDatagram{}, &fakeModem{}, &fakeController{})
	defer m.Close()

	defaults := m.defaultConfig

	err := m.SetListeningTimeoutOverride(9000)
	require.NoError(t, err)
	drain(t, m)
	require.Equal(t, 9000, m.config.ListenFromSendingMillis)

	err = m.SetListeningTimeoutOverride(0)
	require.NoError(t, err)
	drain(t, m)
	assert.Equal(t, defaults.ListenFromSendingMillis, m.config.ListenFromSendingMillis)
}

func TestMockSurfaceGatedByMockModemAllowed(t *testing.T) {
	m := NewMachine(Options{SatelliteSupported: true})
	defer m.Close()

	assert.ErrorIs(t, m.SetListeningTimeoutOverride(5000), ErrMockSurfaceDisabled)
	assert.ErrorIs(t, m.SetGatewayPackageName("com.example"), ErrMockSurfaceDisabled)
}

func TestNbIotTimerArmsOnlyWhenNtnOnlyAndIdle(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: true, ntnOnly: true}
	dg := &fakeDatagram{idle: true}
	m := NewMachine(Options{
		SatelliteSupported: true,
		Modem:              &fakeModem{},
		Controller:         &fakeController{},
		Datagram:           dg,
		Carrier:            carrier,
		Config:             carrierconfig.Config{NBIoTInactivityMillis: 5000},
	})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)
	require.Equal(t, modem.StateNotConnected, m.Snapshot().Current)

	assert.True(t, m.timers.IsArmed(timerset.KindNBIoTInactivity))
}

func TestNbIotTimerDoesNotArmWhenNotNtnOnly(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: true, ntnOnly: false}
	dg := &fakeDatagram{idle: true}
	m := NewMachine(Options{
		SatelliteSupported: true,
		Modem:              &fakeModem{},
		Controller:         &fakeController{},
		Datagram:           dg,
		Carrier:            carrier,
		Config:             carrierconfig.Config{NBIoTInactivityMillis: 5000},
	})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)

	assert.False(t, m.timers.IsArmed(timerset.KindNBIoTInactivity))
}

func TestOffEntryDisarmsEveryTimerAndUnbindsGateway(t *testing.T) {
	carrier := &fakeCarrier{attachRequired: true, ntnOnly: true}
	dg := &fakeDatagram{idle: true}
	bound := make(chan string, 8)
	m := NewMachine(Options{
		SatelliteSupported: true,
		Modem:              &fakeModem{},
		Controller:         &fakeController{},
		Datagram:           dg,
		Carrier:            carrier,
		Config:             carrierconfig.Config{NBIoTInactivityMillis: 5000},
		GatewayBind:        func(name string) error { bound <- name; return nil },
		GatewayUnbind:      func() {},
	})
	defer m.Close()

	m.OnSatelliteEnablementStarted(true)
	m.OnSatelliteEnabledStateChanged(true)
	drain(t, m)
	require.True(t, m.timers.IsArmed(timerset.KindNBIoTInactivity))

	m.OnSatelliteModemStateChanged(modem.StateOff)
	drain(t, m)

	assert.False(t, m.timers.IsArmed(timerset.KindNBIoTInactivity))
	assert.False(t, m.timers.IsArmed(timerset.KindCarrierRoamingInactivity))
	assert.False(t, m.timers.IsArmed(timerset.KindListening))
	assert.Equal(t, gateway.StateUnbound, m.gateway.State())
}

// TestSnapshotIsSafeForConcurrentCallers is a regression test: Snapshot and
// RegisterListener are documented safe to call from any goroutine, even
// while the dispatcher goroutine is concurrently committing transitions.
// Run with -race to catch a reintroduced direct SessionContext read.
func TestSnapshotIsSafeForConcurrentCallers(t *testing.T) {
	m := newTestMachine(&fakeCarrier{}, &fakeDatagram{idle: true}, &fakeModem{}, &fakeController{})
	defer m.Close()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				m.Snapshot()
				m.RegisterListener("", &fakeListener{})
			}
		}
	}()
	go func() {
		defer wg.Done()
		defer close(stop)
		for i := 0; i < 50; i++ {
			m.OnSatelliteEnablementStarted(true)
			m.OnSatelliteEnabledStateChanged(true)
			m.OnSatelliteEnablementFailed(true)
		}
	}()

	wg.Wait()
}
