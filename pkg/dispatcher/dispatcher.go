package dispatcher

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Kind identifies the kind of an Event. Each domain using the dispatcher
// (here, pkg/session) defines its own Kind constants.
type Kind uint16

// Event is one unit of work handed to the dispatcher. Payload carries
// whatever data the Kind requires; handlers type-assert it themselves.
type Event struct {
	Kind    Kind
	Payload any

	// TraceID identifies this event in debug logs. Post assigns one if the
	// caller leaves it empty.
	TraceID string
}

// Handler processes one event to completion. It runs exclusively on the
// dispatcher's own goroutine — handlers never run concurrently with each
// other or with themselves.
type Handler func(Event)

// Dispatcher is the single-threaded cooperative event queue of spec
// §4.4/C4. One goroutine drains a FIFO queue of posted events, running each
// handler call to completion before dispatching the next. A handler may
// call Defer to push the event it is currently handling onto a side queue
// that FlushDeferred later replays as the first events seen by whatever
// state comes next.
type Dispatcher struct {
	mu       sync.Mutex
	queue    []Event
	deferred []Event

	signal chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	handler Handler
}

// New creates a dispatcher that invokes handler for each posted event, in
// FIFO order, on its own goroutine once Start is called.
func New(handler Handler) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		signal:  make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
		handler: handler,
	}
}

// Start launches the consumer goroutine. Must be called once.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.loop()
}

// Close stops the consumer goroutine and waits for it to exit. Any events
// still queued are discarded.
func (d *Dispatcher) Close() {
	d.cancel()
	d.wg.Wait()
}

// Done returns a channel that closes once Close has been called, so a
// caller blocked waiting on a posted event's result can give up instead of
// hanging forever against a stopped dispatcher.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.ctx.Done()
}

// Post enqueues an event for handling. Safe to call from any goroutine.
// Events posted by the same goroutine are delivered to the handler in the
// order Post was called (spec §4.4: "FIFO order between events posted from
// the same producer").
func (d *Dispatcher) Post(e Event) {
	if e.TraceID == "" {
		e.TraceID = uuid.NewString()
	}
	d.mu.Lock()
	d.queue = append(d.queue, e)
	d.mu.Unlock()
	d.wake()
}

// Defer re-queues e onto the deferred side queue. Intended to be called
// from within a handler, for an event the current state cannot yet act on
// (spec §4.1 deferred-event policy in Enabling/Disabling). The event is not
// visible to the handler again until FlushDeferred is called.
func (d *Dispatcher) Defer(e Event) {
	d.mu.Lock()
	d.deferred = append(d.deferred, e)
	d.mu.Unlock()
}

// FlushDeferred prepends every deferred event onto the front of the main
// queue, preserving their relative order, and clears the deferred queue.
// Called once a state transition has committed, so the deferred events
// become the first events the new state receives (spec §4.4/§4.1).
func (d *Dispatcher) FlushDeferred() {
	d.mu.Lock()
	if len(d.deferred) == 0 {
		d.mu.Unlock()
		return
	}
	merged := make([]Event, 0, len(d.deferred)+len(d.queue))
	merged = append(merged, d.deferred...)
	merged = append(merged, d.queue...)
	d.queue = merged
	d.deferred = nil
	d.mu.Unlock()
	d.wake()
}

// RemoveKind drops every pending event of the given kind from both the main
// queue and the deferred queue (spec §4.4: "remove(kind) drops pending and
// deferred events of that kind").
func (d *Dispatcher) RemoveKind(kind Kind) {
	d.mu.Lock()
	d.queue = filterOutKind(d.queue, kind)
	d.deferred = filterOutKind(d.deferred, kind)
	d.mu.Unlock()
}

// Pending reports the number of events currently queued (main + deferred),
// primarily for tests asserting drain-to-quiescence.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue) + len(d.deferred)
}

func filterOutKind(events []Event, kind Kind) []Event {
	if len(events) == 0 {
		return events
	}
	kept := events[:0:0]
	for _, e := range events {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	return kept
}

func (d *Dispatcher) wake() {
	select {
	case d.signal <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()

	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			select {
			case <-d.ctx.Done():
				return
			case <-d.signal:
				continue
			}
		}
		e := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()

		select {
		case <-d.ctx.Done():
			return
		default:
		}

		d.handler(e)
	}
}
