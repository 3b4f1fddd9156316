package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"libcatalog/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Endpoint         string
	Loading          bool
	LoadFailed       bool
	LoadError        string
	Rows             []domain.Record
	FirstRowNumber   int
	TotalLabel       string
	PageNumbers      []int
	CurrentPage      int
	PageCount        int
	SearchTerm       string
	SearchCategory   domain.SearchCategory
	SortLabel        string
	StatusMessage    string
	ShowHelp         bool
	HelpScrollOffset int
	HelpModel        help.Model
	HelpKeys         help.KeyMap
	TextInput        string
	InputMode        string
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	recordRender *RecordRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		recordRender: NewRecordRenderer(styles),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	if state.InputMode != "" {
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	} else {
		content.WriteString(r.renderQueryLine(state))
		content.WriteString("\n\n")
	}

	content.WriteString(r.renderBody(state))

	helpText := ""
	if !state.ShowHelp {
		helpText = r.styles.Help.Render("Press ? for help")
		if state.HelpKeys != nil {
			helpText = state.HelpModel.ShortHelpView(state.HelpKeys.ShortHelp())
		}
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	if helpText != "" {
		currentLines := strings.Count(content.String(), "\n") + 1

		// Account for container padding (1 top, 1 bottom from Padding(1, 2))
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if padding := availableLines - currentLines - 1; padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString("\n")
		content.WriteString(helpText)
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	finalContent := mainStyle.Render(content.String())

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("libcatalog")
	if !state.Loading {
		return logo
	}

	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := int(time.Now().UnixMilli()/80) % len(spinner)
	right := r.styles.Dim.Render(fmt.Sprintf("%s Loading", spinner[frame]))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderQueryLine reflects the current control values
func (r *Renderer) renderQueryLine(state ViewState) string {
	search := r.styles.Dim.Render("no search")
	if state.SearchTerm != "" {
		search = r.styles.Search.Render(fmt.Sprintf("%q", state.SearchTerm))
	}
	return fmt.Sprintf("Search by %s: %s   Sort: %s",
		state.SearchCategory.Label(), search, state.SortLabel)
}

func (r *Renderer) renderBody(state ViewState) string {
	switch {
	case state.Loading:
		return r.styles.StatusLoading.Render("Loading...")
	case state.LoadFailed:
		msg := "Could not load the catalog"
		if state.Endpoint != "" {
			msg += " from " + state.Endpoint
		}
		if state.LoadError != "" {
			msg += ": " + state.LoadError
		}
		return r.styles.StatusError.Render(msg)
	}

	var b strings.Builder
	b.WriteString(r.styles.Total.Render(state.TotalLabel))
	b.WriteString("\n")

	if len(state.Rows) == 0 {
		if state.PageCount == 0 {
			b.WriteString(r.styles.Dim.Render("No books match."))
		} else {
			b.WriteString(r.styles.Dim.Render(fmt.Sprintf("Page %d is empty, there are %d pages.", state.CurrentPage, state.PageCount)))
		}
	} else {
		tableWidth := 0
		if state.Width > 4 {
			tableWidth = state.Width - 4
		}
		b.WriteString(r.recordRender.RenderTable(state.Rows, state.FirstRowNumber, state.SearchTerm, state.SearchCategory, tableWidth))
	}

	if controls := r.recordRender.RenderPageControls(state.PageNumbers, state.CurrentPage); controls != "" {
		b.WriteString("\n")
		b.WriteString(controls)
	}
	return b.String()
}

// renderHelpContent renders the key bindings, scrolled to fit the popup
func (r *Renderer) renderHelpContent(state ViewState) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	var body string
	if state.HelpKeys != nil {
		hm := state.HelpModel
		hm.ShowAll = true
		body = hm.FullHelpView(state.HelpKeys.FullHelp())
	}

	lines := strings.Split(titleStyle.Render("libcatalog help")+"\n"+body, "\n")
	totalLines := len(lines)

	visibleHeight := state.Height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return strings.Join(lines, "\n")
	}

	scrollOffset := state.HelpScrollOffset
	if maxOffset := totalLines - visibleHeight; scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	endLine := scrollOffset + visibleHeight
	lines = lines[scrollOffset:endLine]

	if scrollOffset > 0 {
		lines[0] = r.styles.Dim.Render("↑ (more above)")
	}
	if endLine < totalLines {
		lines[len(lines)-1] = r.styles.Dim.Render("↓ (more below)")
	}
	return strings.Join(lines, "\n")
}
