package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"libcatalog/internal/domain"
)

// RecordHeaders are the table column titles, in column order
var RecordHeaders = []string{"#", "Name", "Author", "Subject", "Published"}

// RecordRenderer draws a page of records as a table
type RecordRenderer struct {
	styles *Styles
}

// NewRecordRenderer creates a new record renderer
func NewRecordRenderer(styles *Styles) *RecordRenderer {
	return &RecordRenderer{styles: styles}
}

// RenderTable renders rows numbered from firstRow. The active search term is
// highlighted in the searched column only.
func (r *RecordRenderer) RenderTable(rows []domain.Record, firstRow int, term string, category domain.SearchCategory, width int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.TableBorder).
		Headers(RecordHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			return r.styles.Cell
		})

	for i, rec := range rows {
		t.Row(
			strconv.Itoa(firstRow+i),
			r.cell(rec.Name, term, category == domain.CategoryName),
			r.cell(rec.Author, term, category == domain.CategoryAuthor),
			r.cell(rec.Subject, term, category == domain.CategorySubject),
			rec.Published,
		)
	}
	if width > 0 {
		t.Width(width)
	}
	return t.Render()
}

func (r *RecordRenderer) cell(text, term string, searched bool) string {
	if !searched || term == "" {
		return text
	}
	return highlightMatch(text, term, r.styles.Highlight, lipgloss.NewStyle())
}

// RenderPageControls renders 1..pageCount with the current page highlighted
func (r *RecordRenderer) RenderPageControls(pageNumbers []int, current int) string {
	if len(pageNumbers) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pageNumbers))
	for _, n := range pageNumbers {
		label := strconv.Itoa(n)
		if n == current {
			parts = append(parts, r.styles.PageCurrent.Render(label))
		} else {
			parts = append(parts, r.styles.PageOther.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// highlightMatch highlights the first case-insensitive occurrence of query
func highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		// lowering changed byte offsets; indices would not map back
		return normalStyle.Render(text)
	}

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}
