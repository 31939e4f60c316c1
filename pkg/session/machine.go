package session

import (
	"errors"
	"log/slog"

	"github.com/satband/satsession/pkg/carrierconfig"
	"github.com/satband/satsession/pkg/datagram"
	"github.com/satband/satsession/pkg/dispatcher"
	"github.com/satband/satsession/pkg/gateway"
	"github.com/satband/satsession/pkg/listener"
	"github.com/satband/satsession/pkg/modem"
	"github.com/satband/satsession/pkg/satlog"
	"github.com/satband/satsession/pkg/timerset"
)

// ErrInvariantViolation marks an implementation-bug-class failure — spec
// §7.5's only panic-worthy kind (two timers of the same kind armed
// simultaneously, a reentrant transition, etc). Everything else is handled
// locally and never bubbles up.
var ErrInvariantViolation = errors.New("session: invariant violation")

// ErrMockSurfaceDisabled is returned by the test-only setters when the
// machine was not constructed with MockModemAllowed (spec §6 "Test-only
// surface... must be gated behind a mock-modem-allowed flag").
var ErrMockSurfaceDisabled = errors.New("session: test-only surface requires MockModemAllowed")

// handleResult is returned by a state's handle function. handled is false
// only for a genuinely unrecognized event (spec §7.1
// UnexpectedEventInState); transition is true when next differs from the
// current state and a commit should run.
type handleResult struct {
	next       modem.State
	transition bool
	handled    bool
}

// noTransition marks e as recognized with no state change (e.g. a timer
// re-evaluation or a flag update that doesn't move the machine).
func noTransition() handleResult { return handleResult{handled: true} }

// toState marks e as recognized and requests a commit to next.
func toState(next modem.State) handleResult {
	return handleResult{next: next, transition: true, handled: true}
}

// unhandled marks e as not recognized by the current state.
func unhandled() handleResult { return handleResult{} }

// stateHandlers groups the entry/exit actions and event handler for one
// state. This table-of-funcs, keyed by modem.State, is this module's
// idiomatic-Go analogue of a tagged union with per-variant methods (spec §9
// design note; see doc.go).
type stateHandlers struct {
	enter  func(m *Machine)
	exit   func(m *Machine)
	handle func(m *Machine, e dispatcher.Event) handleResult
}

// Options configures a Machine. Following the teacher's
// NewManagerWithConfig optional-struct idiom (pkg/connection.Manager).
type Options struct {
	// SatelliteSupported decides the initial state: Off if true,
	// Unavailable (terminal) if false.
	SatelliteSupported bool

	Modem      modem.Interface
	Controller modem.Controller
	Datagram   datagram.Subsystem
	Carrier    carrierconfig.Provider

	// Config is the initial timeout bundle; DefaultConfig() if zero value
	// fields are left unset by the caller.
	Config carrierconfig.Config

	// GatewayBind/GatewayUnbind wire the gateway binder (pkg/gateway).
	GatewayBind   gateway.BindFunc
	GatewayUnbind gateway.UnbindFunc

	// Logger is the operational slog.Logger; defaults to slog.Default().
	Logger *slog.Logger

	// DebugLog receives structured debug events; defaults to satlog.NoopLogger.
	DebugLog satlog.Logger

	// MockModemAllowed gates the test-only setters (spec §6).
	MockModemAllowed bool
}

// Machine is the satellite session state machine (C5). All of its state
// must only be read or written from within calls originating on the
// dispatcher's consumer goroutine — see pkg/dispatcher.
type Machine struct {
	ctx *SessionContext

	config        carrierconfig.Config
	defaultConfig carrierconfig.Config

	modem      modem.Interface
	controller modem.Controller
	datagram   datagram.Subsystem
	carrier    carrierconfig.Provider

	listeners *listener.Registry
	gateway   *gateway.Binder
	timers    *timerset.Set
	queue     *dispatcher.Dispatcher

	logger   *slog.Logger
	debugLog satlog.Logger

	mockModemAllowed bool

	handlers map[modem.State]stateHandlers
}

// NewMachine constructs a Machine and starts its dispatcher goroutine. The
// caller is responsible for calling Close when done.
func NewMachine(opts Options) *Machine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debugLog := opts.DebugLog
	if debugLog == nil {
		debugLog = satlog.NoopLogger{}
	}

	cfg := opts.Config
	defaults := carrierconfig.DefaultConfig()
	if cfg.ListenFromSendingMillis <= 0 {
		cfg.ListenFromSendingMillis = defaults.ListenFromSendingMillis
	}
	if cfg.ListenFromReceivingMillis <= 0 {
		cfg.ListenFromReceivingMillis = defaults.ListenFromReceivingMillis
	}
	if cfg.ScreenOffInactivity <= 0 {
		cfg.ScreenOffInactivity = defaults.ScreenOffInactivity
	}
	if cfg.P2PSMSInactivity <= 0 {
		cfg.P2PSMSInactivity = defaults.P2PSMSInactivity
	}
	if cfg.ESOSInactivity <= 0 {
		cfg.ESOSInactivity = defaults.ESOSInactivity
	}

	m := &Machine{
		ctx:              newSessionContext(opts.SatelliteSupported),
		config:           cfg,
		defaultConfig:    cfg,
		modem:            opts.Modem,
		controller:       opts.Controller,
		datagram:         opts.Datagram,
		carrier:          opts.Carrier,
		listeners:        listener.NewRegistry(),
		timers:           nil,
		logger:           logger,
		debugLog:         debugLog,
		mockModemAllowed: opts.MockModemAllowed,
	}
	m.timers = timerset.New(m.postTimerFired)
	m.gateway = gateway.NewBinder(opts.GatewayBind, opts.GatewayUnbind)
	m.queue = dispatcher.New(m.dispatch)
	m.handlers = m.buildHandlerTable()
	m.queue.Start()
	return m
}

// Close stops the dispatcher goroutine and disarms every timer.
func (m *Machine) Close() {
	m.queue.Close()
	m.timers.DisarmAll()
}

func (m *Machine) postTimerFired(kind timerset.Kind) {
	m.queue.Post(dispatcher.Event{
		Kind:    KindTimerFired,
		Payload: TimerFiredPayload{Kind: kind},
	})
}

// dispatch is the dispatcher.Handler registered with the queue: it runs
// exclusively on the consumer goroutine.
func (m *Machine) dispatch(e dispatcher.Event) {
	if e.Kind == KindQuery {
		q := e.Payload.(queryPayload)
		q.fn(m)
		close(q.done)
		return
	}

	if m.handleGlobalEvent(e) {
		return
	}

	h, ok := m.handlers[m.ctx.current]
	if !ok || h.handle == nil {
		m.logUnexpected(e)
		return
	}

	result := h.handle(m, e)
	if !result.handled {
		m.logUnexpected(e)
		return
	}
	if !result.transition {
		return
	}
	m.transitionTo(result.next)
}

// transitionTo commits a state transition: runs the old state's exit
// action, updates the context, runs the new state's entry action, notifies
// the datagram subsystem and listeners, then replays any events deferred
// during the outgoing state (spec §4.1, §4.4, §6 Outbound).
func (m *Machine) transitionTo(next modem.State) {
	prev := m.ctx.current
	if prev == next {
		return
	}

	if h, ok := m.handlers[prev]; ok && h.exit != nil {
		h.exit(m)
	}

	m.ctx.previous = prev
	m.ctx.current = next
	m.logTransition(prev, next)

	if h, ok := m.handlers[next]; ok && h.enter != nil {
		h.enter(m)
	}

	if m.datagram != nil {
		m.datagram.OnSatelliteModemStateChanged(next)
	}
	m.listeners.Broadcast(next)

	m.queue.FlushDeferred()
}

func (m *Machine) logUnexpected(e dispatcher.Event) {
	m.logger.Debug("satsession: unexpected event in state",
		slog.String("state", m.ctx.current.String()),
		slog.Any("kind", e.Kind),
	)
	m.debugLog.Log(satlog.Event{
		Category: satlog.CategoryError,
		TraceID:  e.TraceID,
		Error: &satlog.ErrorEvent{
			Kind:    "UnexpectedEventInState",
			Message: m.ctx.current.String(),
		},
	})
}

func (m *Machine) logTransition(prev, next modem.State) {
	m.logger.Debug("satsession: state transition",
		slog.String("from", prev.String()),
		slog.String("to", next.String()),
	)
	m.debugLog.Log(satlog.Event{
		Category: satlog.CategoryTransition,
		Transition: &satlog.TransitionEvent{
			OldState: prev.String(),
			NewState: next.String(),
		},
	})
}

// Snapshot returns a read-only copy of the context's observable fields.
// Safe to call from any goroutine: the read runs on the dispatcher's own
// consumer goroutine, the same one SessionContext is otherwise exclusively
// touched from.
func (m *Machine) Snapshot() Snapshot {
	var snap Snapshot
	m.runQuery(func(m *Machine) { snap = m.ctx.Snapshot() })
	return snap
}

// RegisterListener adds l to the listener registry, delivering the current
// state (and, while in carrier-roaming NB-IoT mode, the current emergency
// flag) synchronously before returning (spec §4.2). identity may be empty to
// receive a generated one. Safe to call from any goroutine; see Snapshot.
func (m *Machine) RegisterListener(identity string, l listener.Listener) string {
	var id string
	m.runQuery(func(m *Machine) {
		carrierRoaming := m.carrier != nil && m.carrier.NBIotCarrierRoamingEnabled()
		id = m.listeners.Register(identity, l, m.ctx.current, carrierRoaming, m.ctx.isEmergency)
	})
	return id
}

// runQuery posts fn to run on the dispatcher goroutine and blocks until it
// has, or until the dispatcher has been stopped by Close.
func (m *Machine) runQuery(fn func(*Machine)) {
	done := make(chan struct{})
	m.queue.Post(dispatcher.Event{
		Kind:    KindQuery,
		Payload: queryPayload{fn: fn, done: done},
	})
	select {
	case <-done:
	case <-m.queue.Done():
	}
}

// UnregisterListener removes the listener at identity; silent no-op if
// absent.
func (m *Machine) UnregisterListener(identity string) {
	m.listeners.Unregister(identity)
}
