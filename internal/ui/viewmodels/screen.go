package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"libcatalog/internal/config"
	"libcatalog/internal/domain"
	"libcatalog/internal/ui/state"
	"libcatalog/internal/ui/views"
)

// Screen transforms application state and the query result into view-ready data
type Screen struct {
	state            *state.AppState
	config           *config.Config
	help             help.Model
	keys             help.KeyMap
	inputTransformer *InputTransformer
}

// NewScreen creates a new screen projection
func NewScreen(appState *state.AppState, cfg *config.Config, textInput textinput.Model) *Screen {
	return &Screen{
		state:            appState,
		config:           cfg,
		help:             help.New(),
		inputTransformer: NewInputTransformer(textInput),
	}
}

// SetHelp sets the help model and the bindings it renders
func (s *Screen) SetHelp(helpModel help.Model, keys help.KeyMap) {
	s.help = helpModel
	s.keys = keys
}

// SetInputMode sets the current input mode
func (s *Screen) SetInputMode(mode InputMode) {
	s.inputTransformer.SetMode(mode)
}

// UpdateTextInput updates the text input model
func (s *Screen) UpdateTextInput(textInput textinput.Model) {
	s.inputTransformer.textInput = textInput
}

// BuildViewState creates a ViewState for rendering
func (s *Screen) BuildViewState(vm ViewModel) views.ViewState {
	s.inputTransformer.SetCategory(vm.SearchCategory)

	vs := views.ViewState{
		Width:            s.state.Width,
		Height:           s.state.Height,
		Loading:          vm.Status == domain.LoadPending,
		LoadFailed:       vm.Status == domain.LoadFailed,
		Rows:             vm.PageRows,
		FirstRowNumber:   vm.FirstRowNumber(),
		TotalLabel:       vm.TotalLabel(),
		PageNumbers:      vm.PageNumbers,
		CurrentPage:      vm.CurrentPage,
		PageCount:        vm.PageCount,
		SearchTerm:       vm.SearchTerm,
		SearchCategory:   vm.SearchCategory,
		SortLabel:        vm.SortOrder.Label(),
		StatusMessage:    s.state.StatusMessage,
		ShowHelp:         s.state.ShowHelp,
		HelpScrollOffset: s.state.HelpScrollOffset,
		HelpModel:        s.help,
		HelpKeys:         s.keys,
		TextInput:        s.inputTransformer.GetInputText(),
		InputMode:        s.inputTransformer.GetInputModeString(),
	}
	if s.config != nil {
		vs.Endpoint = s.config.Endpoint
	}
	if vm.LoadError != nil {
		vs.LoadError = vm.LoadError.Error()
	}
	return vs
}
