package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"libcatalog/internal/ui/input/types"
)

var (
	submitKey = key.NewBinding(key.WithKeys("enter"))
	cancelKey = key.NewBinding(key.WithKeys("esc"))
	abortKey  = key.NewBinding(key.WithKeys("ctrl+c"))
)

// TextInputMode is a base for modes that edit the shared text input.
// Keys it does not consume go to the text input itself.
type TextInputMode struct {
	mode      types.Mode
	name      string
	textInput *textinput.Model
}

func NewTextInputMode(mode types.Mode, name string, ti *textinput.Model) TextInputMode {
	return TextInputMode{mode: mode, name: name, textInput: ti}
}

func (m TextInputMode) Name() string {
	return m.name
}

func (m TextInputMode) Enter(types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Prompt = "" // rendered by the screen, it depends on the category
		m.textInput.CursorEnd()
		m.textInput.Focus()
	}
	return nil
}

func (m TextInputMode) Exit(types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
	}
	return nil
}

func (m TextInputMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return m.textInput.Value()
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg, _ types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, abortKey):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, cancelKey):
		return []types.Action{
			types.CancelTextAction{Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case key.Matches(msg, submitKey):
		return []types.Action{
			types.SubmitTextAction{Text: m.value(), Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, false
}
