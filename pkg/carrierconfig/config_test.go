package carrierconfig_test

import (
	"testing"

	"github.com/satband/satsession/pkg/carrierconfig"
)

func TestApplyDemoModeRoundTrip(t *testing.T) {
	cfg := carrierconfig.DefaultConfig()
	cfg.NBIoTInactivityMillis = 45000
	original := cfg

	cfg.ApplyDemoMode(true)
	if !cfg.IsDemoMode() {
		t.Fatal("IsDemoMode: expected true after ApplyDemoMode(true)")
	}
	if cfg.ListenFromSendingMillis != carrierconfig.DemoModeTimeoutMillis ||
		cfg.ListenFromReceivingMillis != carrierconfig.DemoModeTimeoutMillis ||
		cfg.NBIoTInactivityMillis != carrierconfig.DemoModeTimeoutMillis {
		t.Errorf("ApplyDemoMode(true): expected all three timeouts at %d, got send=%d recv=%d nbiot=%d",
			carrierconfig.DemoModeTimeoutMillis, cfg.ListenFromSendingMillis, cfg.ListenFromReceivingMillis, cfg.NBIoTInactivityMillis)
	}

	cfg.ApplyDemoMode(false)
	if cfg.IsDemoMode() {
		t.Fatal("IsDemoMode: expected false after ApplyDemoMode(false)")
	}
	if cfg.ListenFromSendingMillis != original.ListenFromSendingMillis ||
		cfg.ListenFromReceivingMillis != original.ListenFromReceivingMillis ||
		cfg.NBIoTInactivityMillis != original.NBIoTInactivityMillis {
		t.Errorf("ApplyDemoMode(false): expected restore to %+v, got send=%d recv=%d nbiot=%d",
			original, cfg.ListenFromSendingMillis, cfg.ListenFromReceivingMillis, cfg.NBIoTInactivityMillis)
	}
}

func TestApplyDemoModeIsIdempotent(t *testing.T) {
	cfg := carrierconfig.DefaultConfig()
	cfg.ApplyDemoMode(true)
	afterFirst := cfg
	cfg.ApplyDemoMode(true)
	if cfg != afterFirst {
		t.Errorf("ApplyDemoMode(true) called twice: expected no-op on the second call, state changed from %+v to %+v", afterFirst, cfg)
	}
}

func TestSetListeningTimeoutOverride(t *testing.T) {
	defaults := carrierconfig.DefaultConfig()
	defaults.NBIoTInactivityMillis = 60000

	cfg := defaults
	cfg.SetListeningTimeoutOverride(5000, defaults)
	if cfg.ListenFromSendingMillis != 5000 || cfg.ListenFromReceivingMillis != 5000 || cfg.NBIoTInactivityMillis != 5000 {
		t.Errorf("SetListeningTimeoutOverride(5000): expected all three timeouts at 5000, got send=%d recv=%d nbiot=%d",
			cfg.ListenFromSendingMillis, cfg.ListenFromReceivingMillis, cfg.NBIoTInactivityMillis)
	}

	cfg.SetListeningTimeoutOverride(0, defaults)
	if cfg.ListenFromSendingMillis != defaults.ListenFromSendingMillis ||
		cfg.ListenFromReceivingMillis != defaults.ListenFromReceivingMillis ||
		cfg.NBIoTInactivityMillis != defaults.NBIoTInactivityMillis {
		t.Errorf("SetListeningTimeoutOverride(0): expected restore to defaults %+v, got send=%d recv=%d nbiot=%d",
			defaults, cfg.ListenFromSendingMillis, cfg.ListenFromReceivingMillis, cfg.NBIoTInactivityMillis)
	}
}
