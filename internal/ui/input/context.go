package input

import (
	"libcatalog/internal/ui/state"
	"libcatalog/internal/ui/viewmodels"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
	View  viewmodels.ViewModel
}

func (c ModelContext) CurrentPage() int   { return c.View.CurrentPage }
func (c ModelContext) PageCount() int     { return c.View.PageCount }
func (c ModelContext) SearchTerm() string { return c.View.SearchTerm }
func (c ModelContext) IsLoading() bool    { return c.State.IsLoading() }
func (c ModelContext) ShowingHelp() bool  { return c.State.ShowHelp }
