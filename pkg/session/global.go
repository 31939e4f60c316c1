package session

import (
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/timerset"
)

// handleGlobalEvent handles events whose effect does not depend on a
// per-state transition table entry: context flag updates, listener
// emergency fan-out, demo-mode/override toggles, and the gateway
// package-name test surface. Returns true if it consumed the event (the
// per-state handler table is not consulted in that case).
func (m *Machine) handleGlobalEvent(e dispatcher.Event) bool {
	switch e.Kind {
	case KindEmergencyModeChanged:
		p := e.Payload.(EmergencyModeChangedPayload)
		m.ctx.isEmergency = p.Emergency
		m.listeners.BroadcastEmergency(p.Emergency)
		m.evaluateScreenOffTimer()
		if m.ctx.current == modem.StateNotConnected {
			m.evaluateCarrierRoamingTimer()
		}
		return true

	case KindDeviceAlignedChanged:
		p := e.Payload.(DeviceAlignedChangedPayload)
		m.ctx.isDeviceAligned = p.Aligned
		if p.Aligned {
			m.timers.Disarm(timerset.KindCarrierRoamingInactivity)
		} else if m.ctx.current == modem.StateNotConnected {
			m.evaluateCarrierRoamingTimer()
		}
		return true

	case KindSetDemoMode:
		p := e.Payload.(SetDemoModePayload)
		m.config.ApplyDemoMode(p.Enabled)
		m.ctx.isDemoMode = p.Enabled
		return true

	case KindSetListeningTimeoutOverride:
		p := e.Payload.(SetListeningTimeoutOverridePayload)
		m.config.SetListeningTimeoutOverride(p.Millis, m.defaultConfig)
		return true

	case KindSetGatewayPackageName:
		p := e.Payload.(SetGatewayPackageNamePayload)
		name := p.Name
		if name == "null" {
			name = ""
		}
		m.gateway.SetPackageName(name)
		return true

	case KindScreenChanged:
		p := e.Payload.(ScreenChangedPayload)
		m.ctx.isScreenOn = p.On
		m.evaluateScreenOffTimer()
		return true

	case KindTimerFired:
		p := e.Payload.(TimerFiredPayload)
		if p.Kind == timerset.KindScreenOffInactivity {
			m.requestScreenOffDisable()
			return true
		}
		return false

	default:
		return false
	}
}

// requestScreenOffDisable is the screen-off inactivity timer's fire action
// (spec §4.5, §8 scenario 6): request non-emergency satellite disable. The
// actual Off/Disabling transition only happens once the controller
// acknowledges with Started(enable=false).
func (m *Machine) requestScreenOffDisable() {
	if m.modem == nil {
		return
	}
	m.modem.RequestSatelliteEnabled(modem.EnableAttributes{Enable: false, Emergency: false}, nil)
}
