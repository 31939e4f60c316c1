package gateway

import (
	"errors"
	"sync"
	"time"
)

// State is the gateway binding state of spec §4.3/I6.
type State uint8

const (
	StateUnbound State = iota
	StateBinding
	StateBound
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUnbound:
		return "UNBOUND"
	case StateBinding:
		return "BINDING"
	case StateBound:
		return "BOUND"
	default:
		return "UNKNOWN"
	}
}

// Gateway bind errors.
var (
	ErrAlreadyBinding = errors.New("gateway: bind already in progress or bound")
	ErrNoPackageName  = errors.New("gateway: no package name configured")
)

// BindFunc attempts to start binding to the named gateway service. It should
// return nil if the bind request itself was accepted (the asynchronous
// result arrives later via NotifyConnected), or an error if the request
// could not even be issued.
type BindFunc func(packageName string) error

// UnbindFunc tears down an existing binding.
type UnbindFunc func()

// Binder implements the gateway binder FSM of spec §4.3/C3.
type Binder struct {
	mu sync.Mutex

	state       State
	packageName string

	bindFn   BindFunc
	unbindFn UnbindFunc

	backoff     *Backoff
	rebindTimer *time.Timer

	onStateChange func(oldState, newState State)
}

// NewBinder creates a gateway binder. unbindFn may be nil if there is
// nothing to release beyond forgetting local state.
func NewBinder(bindFn BindFunc, unbindFn UnbindFunc) *Binder {
	return &Binder{
		bindFn:   bindFn,
		unbindFn: unbindFn,
		backoff:  NewBackoff(),
	}
}

// OnStateChange sets a callback invoked on every state transition.
func (b *Binder) OnStateChange(fn func(oldState, newState State)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onStateChange = fn
}

// State returns the current binding state.
func (b *Binder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// PackageName returns the currently configured gateway service package name.
func (b *Binder) PackageName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.packageName
}

// SetPackageName changes the target gateway service package name. Per spec
// §4.3/§9, a change unbinds and rebinds unconditionally — including when the
// binder is currently Bound or mid-backoff — without waiting on any other
// condition (the emergency-mode guard the spec flags as a recommended
// addition is intentionally not applied; see DESIGN.md Open Question 3).
func (b *Binder) SetPackageName(name string) {
	b.mu.Lock()
	if name == b.packageName {
		b.mu.Unlock()
		return
	}
	b.packageName = name
	b.cancelRebindLocked()
	notify := b.unbindLocked()
	b.mu.Unlock()
	notify()

	if name != "" {
		_ = b.Bind()
	}
}

// Bind attempts to bind to the configured package name. Per spec §4.3,
// "never call bind when Binding or Bound" — calling it in those states
// returns ErrAlreadyBinding and does nothing.
//
// The state is moved to Binding, and the lock released, before bindFn is
// called — matching connection.Manager.Connect's optimistic-transition
// pattern — so a bindFn that calls back into the binder synchronously (e.g.
// NotifyConnected from within the bind request itself) cannot deadlock on
// b.mu.
func (b *Binder) Bind() error {
	b.mu.Lock()
	if b.state == StateBinding || b.state == StateBound {
		b.mu.Unlock()
		return ErrAlreadyBinding
	}
	if b.packageName == "" {
		b.mu.Unlock()
		return ErrNoPackageName
	}
	packageName := b.packageName
	notify := b.setStateLocked(StateBinding)
	b.mu.Unlock()
	notify()

	err := b.bindFn(packageName)

	b.mu.Lock()
	if err != nil {
		notify = b.setStateLocked(StateUnbound)
		b.mu.Unlock()
		notify()
		b.scheduleRebind()
		return err
	}
	b.mu.Unlock()
	return nil
}

// NotifyConnected reports that a pending bind completed successfully
// (Binding -> Bound). Resets the backoff per spec §4.3/§9.
func (b *Binder) NotifyConnected() {
	b.mu.Lock()
	if b.state != StateBinding {
		b.mu.Unlock()
		return
	}
	b.backoff.Stop()
	notify := b.setStateLocked(StateBound)
	b.mu.Unlock()
	notify()
}

// NotifyDisconnected reports that a bound connection dropped while the
// binding itself remains registered (Bound -> Unbound). Per spec §4.3's FSM
// this "waits for reconnect": the platform's own binding machinery is
// expected to redeliver a connected callback, so no backoff-driven rebind is
// scheduled here.
func (b *Binder) NotifyDisconnected() {
	b.mu.Lock()
	if b.state != StateBound {
		b.mu.Unlock()
		return
	}
	notify := b.setStateLocked(StateUnbound)
	b.mu.Unlock()
	notify()
}

// NotifyBindingDied reports that the binding itself died (Bound ->
// Unbound), unlike NotifyDisconnected: the binding must be explicitly torn
// down and a fresh bind scheduled with backoff.
func (b *Binder) NotifyBindingDied() {
	b.mu.Lock()
	if b.state != StateBound {
		b.mu.Unlock()
		return
	}
	notify := b.unbindLocked()
	b.mu.Unlock()
	notify()
	b.scheduleRebind()
}

// Reset unbinds and cancels any scheduled rebind — called on transition into
// Off (spec §3 I7, §4.3).
func (b *Binder) Reset() {
	b.mu.Lock()
	b.cancelRebindLocked()
	notify := b.unbindLocked()
	b.backoff.Stop()
	b.mu.Unlock()
	notify()
}

// unbindLocked must be called with b.mu held. Like setStateLocked, it
// returns a closure the caller must invoke after releasing the lock: it
// captures unbindFn alongside the state-change notification so the external
// callback never runs while b.mu is held.
func (b *Binder) unbindLocked() func() {
	if b.state == StateUnbound {
		return func() {}
	}
	unbindFn := b.unbindFn
	notify := b.setStateLocked(StateUnbound)
	return func() {
		if unbindFn != nil {
			unbindFn()
		}
		notify()
	}
}

func (b *Binder) cancelRebindLocked() {
	if b.rebindTimer != nil {
		b.rebindTimer.Stop()
		b.rebindTimer = nil
	}
}

func (b *Binder) scheduleRebind() {
	b.mu.Lock()
	b.cancelRebindLocked()
	delay := b.backoff.Next()
	b.rebindTimer = time.AfterFunc(delay, func() {
		_ = b.Bind()
	})
	b.mu.Unlock()
}

// setStateLocked must be called with b.mu held. It returns a function the
// caller must invoke after releasing the lock to deliver the state-change
// callback, matching the teacher's capture-then-unlock-then-invoke pattern
// (connection.Manager, failsafe.Timer) so callbacks never run while the
// binder's lock is held. Bind and unbindLocked apply the same discipline to
// bindFn/unbindFn themselves, not just to onStateChange.
func (b *Binder) setStateLocked(newState State) func() {
	old := b.state
	b.state = newState
	if b.onStateChange == nil || old == newState {
		return func() {}
	}
	fn := b.onStateChange
	return func() { fn(old, newState) }
}
