package carrierconfig

import "time"

// Demo-mode constant: when demo mode is on, all listening and NB-IoT
// inactivity timeouts collapse to this value (spec §6).
const DemoModeTimeoutMillis = 3000

// Default timeout values (spec §3, §6).
const (
	DefaultListenFromSendingMillis   = 180000
	DefaultListenFromReceivingMillis = 30000
	DefaultScreenOffInactivitySec    = 30
	DefaultP2PSMSInactivitySec       = 180
	DefaultESOSInactivitySec         = 600
)

// Config is the timeout bundle spec §3/§6 names. NBIoTInactivityMillis and
// DemoNBIoTInactivityMillis are supplied by the carrier registry with no
// universal default (they are subscription-specific), so they default to
// zero until the registry populates them.
type Config struct {
	ListenFromSendingMillis   int
	ListenFromReceivingMillis int

	NBIoTInactivityMillis     int
	DemoNBIoTInactivityMillis int

	ScreenOffInactivity    time.Duration
	P2PSMSInactivity       time.Duration
	ESOSInactivity         time.Duration

	// demoMode is tracked internally so ApplyDemoMode(false) can restore
	// the values that were configured before ApplyDemoMode(true) was called.
	demoMode bool
	savedListenFromSendingMillis   int
	savedListenFromReceivingMillis int
	savedNBIoTInactivityMillis     int
}

// DefaultConfig returns the documented default timeout bundle.
func DefaultConfig() Config {
	return Config{
		ListenFromSendingMillis:   DefaultListenFromSendingMillis,
		ListenFromReceivingMillis: DefaultListenFromReceivingMillis,
		ScreenOffInactivity:       DefaultScreenOffInactivitySec * time.Second,
		P2PSMSInactivity:          DefaultP2PSMSInactivitySec * time.Second,
		ESOSInactivity:            DefaultESOSInactivitySec * time.Second,
	}
}

// ApplyDemoMode switches the listening and NB-IoT inactivity timeouts to (or
// back from) the demo constant. It is idempotent: calling it twice with the
// same value is a no-op on the second call, and toggling true then false
// restores exactly the previously configured values (spec §8 round-trip
// property).
func (c *Config) ApplyDemoMode(enabled bool) {
	if enabled == c.demoMode {
		return
	}
	if enabled {
		c.savedListenFromSendingMillis = c.ListenFromSendingMillis
		c.savedListenFromReceivingMillis = c.ListenFromReceivingMillis
		c.savedNBIoTInactivityMillis = c.NBIoTInactivityMillis

		c.ListenFromSendingMillis = DemoModeTimeoutMillis
		c.ListenFromReceivingMillis = DemoModeTimeoutMillis
		c.NBIoTInactivityMillis = DemoModeTimeoutMillis
	} else {
		c.ListenFromSendingMillis = c.savedListenFromSendingMillis
		c.ListenFromReceivingMillis = c.savedListenFromReceivingMillis
		c.NBIoTInactivityMillis = c.savedNBIoTInactivityMillis
	}
	c.demoMode = enabled
}

// IsDemoMode reports whether demo-mode overrides are currently applied.
func (c *Config) IsDemoMode() bool {
	return c.demoMode
}

// SetListeningTimeoutOverride is the test-only surface of spec §6: a zero
// value restores the configured defaults, any other value sets all three
// durations (ListenFromSending, ListenFromReceiving, NB-IoT inactivity) to
// that value.
func (c *Config) SetListeningTimeoutOverride(millis int, defaults Config) {
	if millis == 0 {
		c.ListenFromSendingMillis = defaults.ListenFromSendingMillis
		c.ListenFromReceivingMillis = defaults.ListenFromReceivingMillis
		c.NBIoTInactivityMillis = defaults.NBIoTInactivityMillis
		return
	}
	c.ListenFromSendingMillis = millis
	c.ListenFromReceivingMillis = millis
	c.NBIoTInactivityMillis = millis
}

// Provider is the external carrier configuration / subscription registry
// collaborator. The session core queries it for attach-required semantics
// and NTN-only subscription status on relevant transitions; the only answer
// it keeps is the most recent attach-required result, which Idle's exit
// action reads.
type Provider interface {
	// IsAttachRequiredForNBIoT reports whether the active subscription
	// requires an explicit NB-IoT attach before idle-to-transfer switching.
	IsAttachRequiredForNBIoT() bool

	// IsNTNOnlySubscription reports whether the subscription is NTN-only,
	// a precondition for arming the NB-IoT inactivity timer (spec §4.5).
	IsNTNOnlySubscription() bool

	// NBIotCarrierRoamingEnabled reports whether the carrier-roaming NB-IoT
	// inactivity feature is enabled for the active subscription.
	NBIotCarrierRoamingEnabled() bool

	// SupportsESOS / SupportsP2PSMS report which carrier-roaming-eligible
	// modes the subscription supports (spec §4.5 carrier-roaming timer).
	SupportsESOS() bool
	SupportsP2PSMS() bool
}
