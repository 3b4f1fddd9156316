package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"libcatalog/internal/domain"
	"libcatalog/internal/ui/views"
)

// Pager shows the complete result set in ov
type Pager struct {
	program  *tea.Program // reference to Bubble Tea program for terminal management
	renderer *views.RecordRenderer
}

// NewPager creates a pager
func NewPager() *Pager {
	return &Pager{renderer: views.NewRecordRenderer(views.NewStyles())}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Content renders every record of the result, numbered from 1
func (p *Pager) Content(records []domain.Record, term string, category domain.SearchCategory, order domain.SortOrder) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total Books found: %d", len(records)))
	if term != "" {
		b.WriteString(fmt.Sprintf("   search %s contains %q", category, term))
	}
	b.WriteString(fmt.Sprintf("   published %s\n", strings.ToLower(order.Label())))
	if len(records) > 0 {
		b.WriteString(p.renderer.RenderTable(records, 1, term, category, 0))
		b.WriteString("\n")
	}
	return b.String()
}

// Show hands the terminal to ov until the user quits it
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
