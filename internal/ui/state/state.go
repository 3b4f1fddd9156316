package state

import (
	"libcatalog/internal/domain"
)

// AppState contains the screen state that is not part of the query
type AppState struct {
	// Load progress
	LoadStatus domain.LoadStatus
	LoadError  error

	// UI state
	Width            int
	Height           int
	ShowHelp         bool
	HelpScrollOffset int // scroll offset for help popup
	StatusMessage    string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		LoadStatus: domain.LoadPending,
	}
}

// SetLoaded records a settled load
func (s *AppState) SetLoaded(status domain.LoadStatus, err error) {
	s.LoadStatus = status
	s.LoadError = err
}

// IsLoading reports whether the initial load is still outstanding
func (s *AppState) IsLoading() bool {
	return s.LoadStatus == domain.LoadPending
}

// ToggleHelp flips the help popup and resets its scroll position
func (s *AppState) ToggleHelp() {
	s.ShowHelp = !s.ShowHelp
	s.HelpScrollOffset = 0
}
