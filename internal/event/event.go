// internal/event/event.go
package event

// EventType — тип события
type EventType string

// Event — структура события
type Event struct {
	Type EventType
	Data interface{} // payload, one of the structs in types.go
}

// Listener — интерфейс для подписчиков на события
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

type subscription struct {
	listener Listener
}

// Dispatcher — диспетчер событий. Delivery is synchronous and in
// subscription order.
type Dispatcher struct {
	listeners map[EventType][]*subscription
}

// NewDispatcher — создаёт новый диспетчер
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]*subscription),
	}
}

// Subscribe — подписка на событие. The returned func removes the
// subscription.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) (unsubscribe func()) {
	sub := &subscription{listener: listener}
	d.listeners[eventType] = append(d.listeners[eventType], sub)
	return func() {
		subs := d.listeners[eventType]
		for i, s := range subs {
			if s == sub {
				d.listeners[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch — отправка события всем подписчикам
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil {
		return
	}
	subs := d.listeners[event.Type]
	for _, s := range subs {
		s.listener.OnEvent(event)
	}
}
