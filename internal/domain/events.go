package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventLoadStarted   EventType = "LoadStarted"
	EventLoadCompleted EventType = "LoadCompleted"
	EventLoadFailed    EventType = "LoadFailed"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LoadStartedEvent is emitted when the collection fetch is issued
type LoadStartedEvent struct {
	Endpoint string
}

func (e LoadStartedEvent) Type() EventType { return EventLoadStarted }

// LoadCompletedEvent is emitted once a collection has been stored
type LoadCompletedEvent struct {
	Count      int
	Generation uint64
}

func (e LoadCompletedEvent) Type() EventType { return EventLoadCompleted }

// LoadFailedEvent is emitted when the fetch or decode fails; the collection stays empty
type LoadFailedEvent struct {
	Err error
}

func (e LoadFailedEvent) Type() EventType { return EventLoadFailed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
	PageSize int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written to disk
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
