// Package events fans store mutations out to observers.
package events

import (
	"sync"
	"time"
)

const (
	StoreCatalog     = "catalog"
	StoreCart        = "cart"
	StoreCareService = "care_service"
	StoreChat        = "chat"
	StoreOrder       = "order"
)

type Event struct {
	Store    string
	Action   string
	EntityID string
	ActorID  string
	Metadata map[string]any
	At       time.Time
}

type Handler func(Event)

type Publisher interface {
	Publish(Event)
}

// Bus delivers events synchronously, in subscription order. Handlers must not
// call back into the publishing store's mutations.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers []subscription
}

type subscription struct {
	id int
	fn Handler
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a func that removes it.
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers = append(b.handlers, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.handlers {
			if s.id == id {
				b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
				return
			}
		}
	}
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]subscription, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.RUnlock()

	for _, s := range handlers {
		s.fn(e)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(Event) {}
