package dialogue

// Event is a synchronous multicast callback list. Events are not safe for
// concurrent use; they are invoked from the game's update goroutine.
type Event struct {
	listeners []*listener
	nextID    uint64
}

type listener struct {
	id   uint64
	fn   func()
	once bool
}

// Subscription is the handle returned when a listener is added. Releasing it
// removes the listener; releasing twice is harmless.
type Subscription struct {
	event *Event
	id    uint64
}

// AddListener registers fn until its subscription is released.
func (e *Event) AddListener(fn func()) Subscription {
	return e.add(fn, false)
}

// AddOnceListener registers fn for a single invocation. The listener is
// removed before fn runs, so it fires at most once even if the event is
// invoked again from inside fn.
func (e *Event) AddOnceListener(fn func()) Subscription {
	return e.add(fn, true)
}

func (e *Event) add(fn func(), once bool) Subscription {
	if e == nil || fn == nil {
		return Subscription{}
	}
	e.nextID++
	e.listeners = append(e.listeners, &listener{id: e.nextID, fn: fn, once: once})
	return Subscription{event: e, id: e.nextID}
}

// Invoke calls the listeners registered at the time of the call, in
// registration order. Listeners added during Invoke wait for the next one;
// listeners released during Invoke are skipped.
func (e *Event) Invoke() {
	if e == nil || len(e.listeners) == 0 {
		return
	}
	snapshot := append([]*listener(nil), e.listeners...)
	for _, l := range snapshot {
		if !e.contains(l.id) {
			continue
		}
		if l.once {
			e.remove(l.id)
		}
		l.fn()
	}
}

// Len returns the number of registered listeners.
func (e *Event) Len() int {
	if e == nil {
		return 0
	}
	return len(e.listeners)
}

func (e *Event) contains(id uint64) bool {
	for _, l := range e.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (e *Event) remove(id uint64) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Release removes the listener. It reports whether the listener was still
// registered.
func (s Subscription) Release() bool {
	if s.event == nil || s.id == 0 {
		return false
	}
	return s.event.remove(s.id)
}

// Active reports whether the listener is still registered.
func (s Subscription) Active() bool {
	return s.event != nil && s.id != 0 && s.event.contains(s.id)
}
