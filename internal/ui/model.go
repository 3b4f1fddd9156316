package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"libcatalog/internal/config"
	"libcatalog/internal/domain"
	"libcatalog/internal/eventbus"
	"libcatalog/internal/logger"
	"libcatalog/internal/ui/input"
	inputtypes "libcatalog/internal/ui/input/types"
	"libcatalog/internal/ui/services/query"
	"libcatalog/internal/ui/state"
	"libcatalog/internal/ui/viewmodels"
	"libcatalog/internal/ui/views"
)

const statusTimeout = 3 * time.Second

// Model represents the UI state
type Model struct {
	config *config.Config
	state  *state.AppState
	query  *query.Service
	log    logger.Logger

	help         help.Model
	inPagerMode  bool   // tracks if we're currently in pager mode
	searchBefore string // term to restore when a search edit is cancelled

	renderer     *views.Renderer
	screen       *viewmodels.Screen
	inputHandler *input.Handler
	pager        *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over a query service
func NewModel(cfg *config.Config, svc *query.Service, log logger.Logger) *Model {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	appState := state.NewAppState()

	m := &Model{
		config:       cfg,
		state:        appState,
		query:        svc,
		log:          log,
		help:         help.New(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		pager:        NewPager(),
	}

	// placeholder text input; the live one belongs to the input handler
	m.screen = viewmodels.NewScreen(appState, cfg, textinput.New())
	m.screen.SetHelp(m.help, m.inputHandler.Keys())
	m.syncLoadStatus()

	return m
}

// SetProgram sets the program reference used by the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.syncLoadStatus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		m.screen.SetHelp(m.help, m.inputHandler.Keys())

	case tea.KeyMsg:
		ctx := input.ModelContext{State: m.state, View: m.query.View()}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

		if ti := m.inputHandler.TextInput(); ti != nil {
			m.screen.UpdateTextInput(*ti)
		}
		return m, tea.Batch(cmds...)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			if ti := m.inputHandler.TextInput(); ti != nil {
				m.screen.UpdateTextInput(*ti)
			}
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}

	return m, nil
}

func (m *Model) View() string {
	if m.state.Width == 0 {
		return "Loading..."
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSearch:
		m.screen.SetInputMode(viewmodels.InputModeSearch)
	case inputtypes.ModeGotoPage:
		m.screen.SetInputMode(viewmodels.InputModeGotoPage)
	default:
		m.screen.SetInputMode(viewmodels.InputModeNormal)
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		m.screen.UpdateTextInput(*ti)
	}

	return m.renderer.Render(m.screen.BuildViewState(m.query.View()))
}

// syncLoadStatus mirrors the loader's status into the screen state
func (m *Model) syncLoadStatus() {
	vm := m.query.View()
	if vm.Status != m.state.LoadStatus {
		m.state.SetLoaded(vm.Status, vm.LoadError)
	}
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.PageAction:
		switch a.Direction {
		case "next":
			m.query.NextPage()
		case "prev":
			m.query.PrevPage()
		case "first":
			m.query.FirstPage()
		case "last":
			m.query.LastPage()
		}

	case inputtypes.SelectPageAction:
		m.query.SelectPage(a.Page)

	case inputtypes.CycleCategoryAction:
		m.query.CycleSearchCategory()
		return m.flash(fmt.Sprintf("Searching by %s", m.query.State().SearchCategory.Label()))

	case inputtypes.ToggleSortAction:
		m.query.ToggleSortOrder()
		return m.flash(fmt.Sprintf("Sorted %s by published date", strings.ToLower(m.query.State().SortOrder.Label())))

	case inputtypes.ClearSearchAction:
		m.query.SetSearchTerm("")

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModeSearch {
			m.searchBefore = m.query.State().SearchTerm
		}

	case inputtypes.UpdateTextAction:
		if a.Mode == inputtypes.ModeSearch {
			m.query.SetSearchTerm(a.Text)
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeSearch:
			m.query.SetSearchTerm(a.Text)
		case inputtypes.ModeGotoPage:
			if strings.TrimSpace(a.Text) == "" {
				return nil
			}
			n, err := strconv.Atoi(strings.TrimSpace(a.Text))
			if err != nil || n < 1 {
				return m.flash(fmt.Sprintf("%q is not a page number", a.Text))
			}
			m.query.SelectPage(n)
		}

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeSearch {
			m.query.SetSearchTerm(m.searchBefore)
		}

	case inputtypes.ToggleHelpAction:
		m.state.ToggleHelp()

	case inputtypes.ScrollHelpAction:
		m.state.HelpScrollOffset += a.Delta
		if m.state.HelpScrollOffset < 0 {
			m.state.HelpScrollOffset = 0
		}

	case inputtypes.OpenPagerAction:
		if m.program == nil {
			return m.flash("Pager unavailable")
		}
		q := m.query.State()
		content := m.pager.Content(m.query.Results(), q.SearchTerm, q.SearchCategory, q.SortOrder)
		return m.showPager(content)

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		// The spinner only animates while loading
		if m.inPagerMode || !m.state.IsLoading() {
			return m, nil
		}
		return m, tick()

	case pagerMsg:
		if msg.err != nil {
			m.log.Warn("pager failed", zap.Error(msg.err))
			return m, m.flash(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.LoadCompletedEvent:
		m.state.SetLoaded(domain.LoadReady, nil)
		return m.flash(fmt.Sprintf("Loaded %d books", e.Count))
	case eventbus.LoadFailedEvent:
		m.state.SetLoaded(domain.LoadFailed, e.Err)
	case eventbus.ErrorEvent:
		if e.Err != nil {
			return m.flash(fmt.Sprintf("%s: %v", e.Message, e.Err))
		}
		return m.flash(e.Message)
	case eventbus.ConfigSavedEvent:
		return m.flash("Wrote default config to " + e.Path)
	case eventbus.ConfigLoadedEvent:
		m.log.Debug("config in use", zap.String("path", e.Path))
	}
	return nil
}

// flash shows a status message for a few seconds
func (m *Model) flash(message string) tea.Cmd {
	m.state.StatusMessage = message
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) showPager(content string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
