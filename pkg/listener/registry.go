package listener

import (
	"sync"

	"github.com/google/uuid"

	"github.com/satband/satsession/pkg/modem"
)

// Listener is the observer contract: implementations receive state and
// emergency-mode notifications (spec §6 Outbound, Listeners).
type Listener interface {
	OnSatelliteModemStateChanged(state modem.State)
	OnEmergencyModeChanged(emergency bool)
}

// Registry is the listener registry of spec §4.2/C2.
type Registry struct {
	mu        sync.RWMutex
	listeners map[string]Listener
}

// NewRegistry creates an empty listener registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[string]Listener)}
}

// Register adds l under identity (generating a UUID if identity is empty),
// first synchronously delivering the initial snapshot per spec §4.2:
// OnSatelliteModemStateChanged(current) always, and — when
// carrierRoamingMode is true — OnEmergencyModeChanged(currentEmergency) as
// well. Registering under an identity that is already present overwrites
// the prior listener for that identity. Returns the identity used.
func (r *Registry) Register(identity string, l Listener, current modem.State, carrierRoamingMode bool, currentEmergency bool) string {
	if identity == "" {
		identity = uuid.New().String()
	}

	l.OnSatelliteModemStateChanged(current)
	if carrierRoamingMode {
		l.OnEmergencyModeChanged(currentEmergency)
	}

	r.mu.Lock()
	r.listeners[identity] = l
	r.mu.Unlock()

	return identity
}

// Unregister removes the listener at identity. Silent no-op if absent.
func (r *Registry) Unregister(identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.listeners, identity)
}

// snapshot copies the current listener set under a short critical section so
// broadcasts remain safe under concurrent registration/unregistration (spec
// §4.2, §9 "Listener safety").
func (r *Registry) snapshot() map[string]Listener {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Listener, len(r.listeners))
	for id, l := range r.listeners {
		out[id] = l
	}
	return out
}

// Broadcast delivers state to every registered listener. A listener whose
// delivery fails (panics) is evicted and iteration continues for the rest
// (spec §4.2 Broadcast, §7 ListenerDeliveryFailure).
func (r *Registry) Broadcast(state modem.State) {
	for id, l := range r.snapshot() {
		r.deliver(id, func() { l.OnSatelliteModemStateChanged(state) })
	}
}

// BroadcastEmergency delivers an emergency-mode change to every registered
// listener, under the same delivery and eviction rules as Broadcast.
func (r *Registry) BroadcastEmergency(emergency bool) {
	for id, l := range r.snapshot() {
		r.deliver(id, func() { l.OnEmergencyModeChanged(emergency) })
	}
}

// deliver invokes fn, evicting the listener at identity if fn panics. A
// panicking listener is the only failure mode a local Go interface call can
// produce (there is no remote-call error to check, unlike the teacher's
// cross-process listeners); it is caught here so one bad observer never
// breaks the broadcast loop.
func (r *Registry) deliver(identity string, fn func()) {
	defer func() {
		if recover() != nil {
			r.Unregister(identity)
		}
	}()
	fn()
}

// Count returns the number of registered listeners.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}
