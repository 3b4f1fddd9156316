package modes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"libcatalog/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	// While help is open only scrolling, closing and quitting apply
	if ctx.ShowingHelp() {
		switch msg.String() {
		case "?", "esc":
			return []types.Action{types.ToggleHelpAction{}}, true
		case "q":
			return []types.Action{types.QuitAction{}}, true
		case "up", "k":
			return []types.Action{types.ScrollHelpAction{Delta: -1}}, true
		case "down", "j":
			return []types.Action{types.ScrollHelpAction{Delta: 1}}, true
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	// Query and paging keys are inert until the collection has settled
	if ctx.IsLoading() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchTerm()}}, true
	case key.Matches(msg, m.keys.Clear):
		if ctx.SearchTerm() == "" {
			return nil, false
		}
		return []types.Action{types.ClearSearchAction{}}, true
	case key.Matches(msg, m.keys.Category):
		return []types.Action{types.CycleCategoryAction{}}, true
	case key.Matches(msg, m.keys.Order):
		return []types.Action{types.ToggleSortAction{}}, true
	case key.Matches(msg, m.keys.PrevPage):
		return []types.Action{types.PageAction{Direction: "prev"}}, true
	case key.Matches(msg, m.keys.NextPage):
		return []types.Action{types.PageAction{Direction: "next"}}, true
	case key.Matches(msg, m.keys.FirstPage):
		return []types.Action{types.PageAction{Direction: "first"}}, true
	case key.Matches(msg, m.keys.LastPage):
		return []types.Action{types.PageAction{Direction: "last"}}, true
	case key.Matches(msg, m.keys.PageNumber):
		n, err := strconv.Atoi(msg.String())
		if err != nil || n > ctx.PageCount() {
			// only pages that have a control on screen can be picked
			return nil, false
		}
		return []types.Action{types.SelectPageAction{Page: n}}, true
	case key.Matches(msg, m.keys.GotoPage):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeGotoPage}}, true
	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true
	}

	return nil, false
}
