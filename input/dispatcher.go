package input

// Listener receives device events from a Dispatcher.
type Listener interface {
	HandleEvent(ev Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ev Event)

func (f ListenerFunc) HandleEvent(ev Event) { f(ev) }

// Source produces device events. Poll is called once per frame and pushes
// everything that happened since the previous call into d.
type Source interface {
	Poll(d *Dispatcher)
}

// PointerLock is the render surface's pointer lock contract.
type PointerLock interface {
	Request()
	Release()
	Locked() bool
}

// Dispatcher fans events out to subscribed listeners in subscription order.
// Listeners may subscribe or unsubscribe while an event is being delivered;
// the change takes effect from the next event.
type Dispatcher struct {
	nextID    uint64
	listeners []*Subscription
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscription is the registration of one listener.
type Subscription struct {
	id       uint64
	owner    *Dispatcher
	listener Listener
}

// Subscribe registers l and returns its subscription.
func (d *Dispatcher) Subscribe(l Listener) *Subscription {
	if d == nil || l == nil {
		return &Subscription{}
	}
	d.nextID++
	sub := &Subscription{id: d.nextID, owner: d, listener: l}
	d.listeners = append(d.listeners, sub)
	return sub
}

// Len returns the number of active subscriptions.
func (d *Dispatcher) Len() int {
	if d == nil {
		return 0
	}
	return len(d.listeners)
}

// Dispatch delivers ev to every listener.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil || ev == nil {
		return
	}
	snapshot := append([]*Subscription(nil), d.listeners...)
	for _, sub := range snapshot {
		if sub.owner == nil {
			continue
		}
		sub.listener.HandleEvent(ev)
	}
}

// Close removes the listener from its dispatcher. Closing twice is a no-op.
func (s *Subscription) Close() {
	if s == nil || s.owner == nil {
		return
	}
	d := s.owner
	s.owner = nil
	for i, sub := range d.listeners {
		if sub.id == s.id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	return s != nil && s.owner != nil
}
