package texttest

// listeners is an ordered list of callbacks for one event. Callbacks run in
// registration order.
type listeners[T any] struct {
	nextID  int
	entries []listener[T]
}

type listener[T any] struct {
	id int
	fn func(T)
}

// add registers fn and returns a func that removes it again.
func (l *listeners[T]) add(fn func(T)) (remove func()) {
	if fn == nil {
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listener[T]{id: id, fn: fn})

	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners[T]) empty() bool {
	return len(l.entries) == 0
}

// emit calls every registered callback with v.
func (l *listeners[T]) emit(v T) {
	// Callbacks may unregister themselves.
	entries := append([]listener[T](nil), l.entries...)
	for _, e := range entries {
		e.fn(v)
	}
}
