// Package input routes global interaction signals, such as a pointer
// release that happens outside the canvas, to whoever currently holds a
// listener for them.
package input

// Kind identifies a signal.
type Kind int

const (
	PointerRelease Kind = iota
	Cancel
)

func (k Kind) String() string {
	switch k {
	case PointerRelease:
		return "pointer-release"
	case Cancel:
		return "cancel"
	}
	return "unknown"
}

// Event is one dispatched signal. X and Y are paper coordinates when the
// source knows them.
type Event struct {
	Kind Kind
	X, Y float64
}

type listener struct {
	id int
	fn func(Event)
}

// Bus holds scoped listeners. It is not safe for concurrent use.
type Bus struct {
	listeners map[Kind][]listener
	nextID    int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[Kind][]listener),
	}
}

// Acquire registers fn for kind and returns the func that releases it.
// Release is idempotent.
func (b *Bus) Acquire(kind Kind, fn func(Event)) func() {
	b.nextID++
	id := b.nextID
	b.listeners[kind] = append(b.listeners[kind], listener{id: id, fn: fn})

	released := false
	return func() {
		if released {
			return
		}
		released = true
		b.remove(kind, id)
	}
}

func (b *Bus) remove(kind Kind, id int) {
	ls := b.listeners[kind]
	for i, l := range ls {
		if l.id == id {
			b.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to the listeners held at the time of the call and
// returns how many were invoked. A listener released by an earlier one
// during the same dispatch is skipped. Listeners acquired during dispatch
// wait for the next one.
func (b *Bus) Dispatch(ev Event) int {
	ls := append([]listener(nil), b.listeners[ev.Kind]...)
	n := 0
	for _, l := range ls {
		if !b.held(ev.Kind, l.id) {
			continue
		}
		l.fn(ev)
		n++
	}
	return n
}

func (b *Bus) held(kind Kind, id int) bool {
	for _, l := range b.listeners[kind] {
		if l.id == id {
			return true
		}
	}
	return false
}

// Active returns the number of listeners held for kind.
func (b *Bus) Active(kind Kind) int {
	return len(b.listeners[kind])
}
