package logic

import (
	"sort"
	"strings"
	"time"

	"libcatalog/internal/domain"
)

// publishedLayouts are tried in order; the first that parses wins.
// Layouts without a zone, date-time and month-name forms included, are read
// as UTC rather than local time, so every zone-less value shares one clock with
// the date-only values and ordering does not depend on the machine's TZ.
var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParsePublished parses a published value. ok is false for empty or
// unrecognised input.
func ParsePublished(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

type datedRecord struct {
	record domain.Record
	at     time.Time
	valid  bool
}

// SortByPublished returns a copy of records ordered by published date.
//
// Records whose date cannot be parsed form a single bucket: they compare equal
// to each other and are always placed after every dated record, in both
// directions. Equal keys keep their input order.
func SortByPublished(records []domain.Record, order domain.SortOrder) []domain.Record {
	dated := make([]datedRecord, len(records))
	for i, r := range records {
		at, ok := ParsePublished(r.Published)
		dated[i] = datedRecord{record: r, at: at, valid: ok}
	}

	desc := order == domain.SortDescending
	sort.SliceStable(dated, func(i, j int) bool {
		a, b := dated[i], dated[j]
		if a.valid != b.valid {
			return a.valid
		}
		if !a.valid {
			return false
		}
		if desc {
			return a.at.After(b.at)
		}
		return a.at.Before(b.at)
	})

	sorted := make([]domain.Record, len(dated))
	for i, d := range dated {
		sorted[i] = d.record
	}
	return sorted
}
