package events

import (
	"fmt"
	"sync"
)

// Bus is a simple event bus for UI services. Handlers run on their own
// goroutine; Wait blocks until every dispatched handler has returned.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]func(interface{})
	wg        sync.WaitGroup
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]func(interface{})),
	}
}

// Subscribe registers a listener for an event type
func (b *Bus) Subscribe(eventType string, handler func(interface{})) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], handler)
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, handler := range b.listeners[TypeOf(event)] {
		b.wg.Add(1)
		go func(h func(interface{})) {
			defer b.wg.Done()
			h(event)
		}(handler)
	}
}

// Wait blocks until in-flight handlers finish
func (b *Bus) Wait() {
	b.wg.Wait()
}

// TypeOf is the key an event is published under
func TypeOf(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
