package registry

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bdiamand/delegate"
	"github.com/bdiamand/delegate/fault"
)

// Handle is an opaque reference to a registered delegate.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a table lifecycle event.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventRemoved
)

// Event describes a change to a table.
type Event struct {
	Name   string
	Handle Handle
	Type   EventType
}

// Observer receives notifications about table lifecycle events.
type Observer interface {
	OnTableEvent(Event)
}

type entry[In, Out any] struct {
	name   string
	handle Handle
	fn     delegate.MoveFunc[In, Out]
}

// Table is a named dispatch table of delegates sharing one signature.
// Unlike the delegates it holds, a Table is internally synchronized and
// safe for concurrent use. Invocations are serialized under the table
// lock, which is what upholds the delegates' single-threaded contract;
// a registered callable must not call back into the same table.
type Table[In, Out any] struct {
	mu        sync.RWMutex
	byName    map[uint64][]*entry[In, Out] // xxhash(name) -> chain
	byHandle  map[Handle]*entry[In, Out]
	observers []Observer
	obsMu     sync.RWMutex
	next      Handle
	closed    bool
	id        string
	log       *zap.Logger
}

// Option configures a Table.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the table's logger. A no-op logger is used by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates an empty table.
func New[In, Out any](opts ...Option) *Table[In, Out] {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	t := &Table[In, Out]{
		byName:   make(map[uint64][]*entry[In, Out]),
		byHandle: make(map[Handle]*entry[In, Out]),
		id:       uuid.NewString(),
		log:      o.log,
	}
	t.log.Debug("table created", zap.String("table", t.id))
	return t
}

// Register copies a delegate into the table under name. The caller's
// delegate is unchanged. Duplicate names are rejected.
func (t *Table[In, Out]) Register(name string, fn *delegate.Func[In, Out]) (Handle, error) {
	clone := fn.Clone()
	h, err := t.insert(name, &clone.MoveFunc)
	if err != nil {
		clone.Close()
	}
	return h, err
}

// Adopt moves a delegate into the table under name; src is left empty.
// This is the path for move-only payloads, which Register cannot take.
func (t *Table[In, Out]) Adopt(name string, src *delegate.MoveFunc[In, Out]) (Handle, error) {
	var moved delegate.MoveFunc[In, Out]
	moved.MoveFrom(src)
	h, err := t.insert(name, &moved)
	if err != nil {
		// Hand the payload back rather than dropping it on the floor.
		src.MoveFrom(&moved)
	}
	return h, err
}

func (t *Table[In, Out]) insert(name string, fn *delegate.MoveFunc[In, Out]) (Handle, error) {
	key := xxhash.Sum64String(name)

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, fault.Closed()
	}
	for _, e := range t.byName[key] {
		if e.name == name {
			t.mu.Unlock()
			return 0, fault.Duplicate(name)
		}
	}
	t.next++
	e := &entry[In, Out]{name: name, handle: t.next}
	e.fn.MoveFrom(fn)
	t.byName[key] = append(t.byName[key], e)
	t.byHandle[e.handle] = e
	t.mu.Unlock()

	t.log.Debug("delegate registered",
		zap.String("table", t.id),
		zap.String("name", name),
		zap.Uint32("handle", uint32(e.handle)))
	t.notify(Event{Type: EventRegistered, Name: name, Handle: e.handle})
	return e.handle, nil
}

// Invoke calls the delegate registered under name. Invocations through
// the same table are serialized.
func (t *Table[In, Out]) Invoke(name string, in In) (Out, error) {
	key := xxhash.Sum64String(name)

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.byName[key] {
		if e.name == name {
			return e.fn.Call(in), nil
		}
	}
	var zero Out
	return zero, fault.NotFound(name)
}

// InvokeHandle calls the delegate a handle refers to.
func (t *Table[In, Out]) InvokeHandle(h Handle, in In) (Out, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.byHandle[h]; ok {
		return e.fn.Call(in), nil
	}
	var zero Out
	return zero, fault.New(fault.PhaseRegistry, fault.KindNotFound).
		Detail("handle %d not registered", h).
		Build()
}

// Remove drops the delegate registered under name, destroying its payload.
func (t *Table[In, Out]) Remove(name string) bool {
	key := xxhash.Sum64String(name)

	t.mu.Lock()
	chain := t.byName[key]
	for i, e := range chain {
		if e.name != name {
			continue
		}
		t.byName[key] = append(chain[:i], chain[i+1:]...)
		if len(t.byName[key]) == 0 {
			delete(t.byName, key)
		}
		delete(t.byHandle, e.handle)
		t.mu.Unlock()

		e.fn.Close()
		t.log.Debug("delegate removed",
			zap.String("table", t.id),
			zap.String("name", name))
		t.notify(Event{Type: EventRemoved, Name: name, Handle: e.handle})
		return true
	}
	t.mu.Unlock()
	return false
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[In, Out]) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table[In, Out]) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered delegates.
func (t *Table[In, Out]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byHandle)
}

// Clear removes every delegate, destroying each payload.
func (t *Table[In, Out]) Clear() {
	t.mu.Lock()
	removed := make([]*entry[In, Out], 0, len(t.byHandle))
	for _, e := range t.byHandle {
		removed = append(removed, e)
	}
	t.byName = make(map[uint64][]*entry[In, Out])
	t.byHandle = make(map[Handle]*entry[In, Out])
	t.mu.Unlock()

	for _, e := range removed {
		e.fn.Close()
		t.notify(Event{Type: EventRemoved, Name: e.name, Handle: e.handle})
	}
}

// Close clears the table and stops accepting registrations.
func (t *Table[In, Out]) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	t.Clear()
	t.log.Debug("table closed", zap.String("table", t.id))
	return nil
}

func (t *Table[In, Out]) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnTableEvent(e)
	}
}
