package modes

import (
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"libcatalog/internal/ui/input/types"
)

// SearchMode edits the search term; every keystroke is applied immediately
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", ti),
	}
}

// GotoPageMode reads a page number, applied on enter. Only digits are typed.
type GotoPageMode struct {
	TextInputMode
}

func NewGotoPageMode(ti *textinput.Model) *GotoPageMode {
	return &GotoPageMode{
		TextInputMode: NewTextInputMode(types.ModeGotoPage, "goto-page", ti),
	}
}

func (m *GotoPageMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !unicode.IsDigit(r) {
				return nil, true
			}
		}
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
