package events

import "libcatalog/internal/domain"

// EventBus is a simple interface for publishing events
type EventBus interface {
	Publish(event interface{})
	Subscribe(eventType string, handler func(interface{}))
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (n *NullBus) Publish(event interface{})                              {}
func (n *NullBus) Subscribe(eventType string, handler func(interface{})) {}

// QueryChangedEvent is published after any query setter changed the state
type QueryChangedEvent struct {
	SearchTerm     string
	SearchCategory domain.SearchCategory
	SortOrder      domain.SortOrder
	CurrentPage    int
}

// CollectionChangedEvent is published when a new collection generation is seen
type CollectionChangedEvent struct {
	Generation uint64
	Count      int
}
