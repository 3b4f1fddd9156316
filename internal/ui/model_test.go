package ui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libcatalog/internal/config"
	"libcatalog/internal/domain"
	"libcatalog/internal/eventbus"
	"libcatalog/internal/ui/services/query"
	"libcatalog/internal/ui/views"
)

type fakeSource struct {
	records domain.Collection
	status  domain.LoadStatus
	err     error
}

func (f *fakeSource) Snapshot() (domain.Collection, uint64) {
	if f.status != domain.LoadReady {
		return nil, 0
	}
	return f.records, 1
}

func (f *fakeSource) Status() (domain.LoadStatus, error) { return f.status, f.err }

func newTestModel(src *fakeSource) *Model {
	cfg := config.DefaultConfig()
	m := NewModel(cfg, query.NewService(src, cfg.PageSize, nil, nil), nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func catalog(n int) domain.Collection {
	c := make(domain.Collection, n)
	for i := range c {
		c[i] = domain.Record{
			Name:      fmt.Sprintf("Book %02d", i+1),
			Author:    fmt.Sprintf("Writer %d", i%4),
			Subject:   "Fiction",
			Published: fmt.Sprintf("%d-06-01", 1950+i),
		}
	}
	return c
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestModelShowsLoadingUntilSettled(t *testing.T) {
	src := &fakeSource{status: domain.LoadPending}
	m := newTestModel(src)

	assert.Contains(t, views.StripANSI(m.View()), "Loading...")

	// query keys are inert while loading
	press(m, "o")
	assert.Equal(t, domain.SortAscending, m.query.State().SortOrder)

	src.records, src.status = catalog(3), domain.LoadReady
	m.Update(EventMsg{Event: eventbus.LoadCompletedEvent{Count: 3, Generation: 1}})

	out := views.StripANSI(m.View())
	assert.Contains(t, out, "Total Books found: 3")
	assert.Contains(t, out, "Loaded 3 books")
}

func TestModelShowsLoadFailure(t *testing.T) {
	src := &fakeSource{status: domain.LoadFailed, err: errors.New("unexpected status: 500")}
	m := newTestModel(src)

	out := views.StripANSI(m.View())
	assert.Contains(t, out, "Could not load the catalog")
	assert.Contains(t, out, "unexpected status: 500")
}

func TestModelFlashesBusEvents(t *testing.T) {
	m := newTestModel(&fakeSource{status: domain.LoadFailed, err: errors.New("unexpected status: 500")})

	m.Update(EventMsg{Event: eventbus.ConfigSavedEvent{Path: "/tmp/libcatalog.toml"}})
	assert.Contains(t, views.StripANSI(m.View()), "Wrote default config to /tmp/libcatalog.toml")

	m.Update(EventMsg{Event: eventbus.ErrorEvent{Message: "Catalog load failed", Err: errors.New("unexpected status: 500")}})
	assert.Contains(t, views.StripANSI(m.View()), "Catalog load failed: unexpected status: 500")

	// config loads are logged, not shown
	m.Update(EventMsg{Event: eventbus.ConfigLoadedEvent{Path: "/tmp/libcatalog.toml"}})
	assert.Contains(t, views.StripANSI(m.View()), "Catalog load failed")
}

func TestModelIncrementalSearch(t *testing.T) {
	m := newTestModel(&fakeSource{records: catalog(25), status: domain.LoadReady})

	press(m, "right", "right")
	require.Equal(t, 3, m.query.State().CurrentPage)

	press(m, "/", "B", "o", "o", "k", " ", "0")
	q := m.query.State()
	assert.Equal(t, "Book 0", q.SearchTerm)
	assert.Equal(t, 1, q.CurrentPage)
	assert.Contains(t, views.StripANSI(m.View()), "Total Books found: 9")

	// esc restores the term from before the edit
	press(m, "esc")
	assert.Equal(t, "", m.query.State().SearchTerm)

	press(m, "/", "1", "enter")
	assert.Equal(t, "1", m.query.State().SearchTerm)

	press(m, "esc")
	assert.Equal(t, "", m.query.State().SearchTerm)
}

func TestModelCategoryOrderAndPages(t *testing.T) {
	m := newTestModel(&fakeSource{records: catalog(25), status: domain.LoadReady})

	press(m, "c")
	assert.Equal(t, domain.CategoryAuthor, m.query.State().SearchCategory)

	press(m, "o")
	assert.Equal(t, domain.SortDescending, m.query.State().SortOrder)
	assert.Contains(t, views.StripANSI(m.View()), "Book 25")

	press(m, "3")
	assert.Equal(t, 3, m.query.State().CurrentPage)
	press(m, "g")
	assert.Equal(t, 1, m.query.State().CurrentPage)
	press(m, "G")
	assert.Equal(t, 3, m.query.State().CurrentPage)

	press(m, ":", "x", "2", "enter")
	assert.Equal(t, 2, m.query.State().CurrentPage)

	press(m, ":", "0", "enter")
	assert.Equal(t, 2, m.query.State().CurrentPage)
	assert.Contains(t, views.StripANSI(m.View()), `"0" is not a page number`)

	// an empty prompt just closes
	press(m, ":", "enter")
	assert.Equal(t, 2, m.query.State().CurrentPage)
}

func TestModelHelpAndQuit(t *testing.T) {
	m := newTestModel(&fakeSource{records: catalog(2), status: domain.LoadReady})

	press(m, "?")
	assert.True(t, m.state.ShowHelp)
	assert.Contains(t, views.StripANSI(m.View()), "libcatalog help")

	press(m, "?")
	assert.False(t, m.state.ShowHelp)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelPagerWithoutProgram(t *testing.T) {
	m := newTestModel(&fakeSource{records: catalog(2), status: domain.LoadReady})
	press(m, "v")
	assert.Equal(t, "Pager unavailable", m.state.StatusMessage)
}

func TestPagerContent(t *testing.T) {
	p := NewPager()
	out := views.StripANSI(p.Content(catalog(12), "book", domain.CategoryName, domain.SortDescending))

	assert.Contains(t, out, "Total Books found: 12")
	assert.Contains(t, out, `search name contains "book"`)
	assert.Contains(t, out, "published descending")
	assert.Contains(t, out, "Book 12")
	assert.Error(t, p.Show(out))
}
