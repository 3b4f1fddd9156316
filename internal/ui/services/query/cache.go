package query

import (
	"github.com/zeebo/xxh3"

	"libcatalog/internal/domain"
)

// maxCachedResults bounds each memo table; incremental typing produces one
// entry per keystroke
const maxCachedResults = 64

type filterEntry struct {
	term     string
	category domain.SearchCategory
	rows     []domain.Record
}

type sortEntry struct {
	term     string
	category domain.SearchCategory
	order    domain.SortOrder
	rows     []domain.Record
}

// resultCache memoises filter results per (generation, term, category) and
// sort results per (filter key, order). Keys are xxh3 hashes; the full key is
// stored alongside and compared so a collision is a miss, never a wrong hit.
type resultCache struct {
	generation uint64
	filters    map[uint64]filterEntry
	sorts      map[uint64]sortEntry
	hits       uint64
	misses     uint64
}

func newResultCache() *resultCache {
	return &resultCache{
		filters: make(map[uint64]filterEntry),
		sorts:   make(map[uint64]sortEntry),
	}
}

// reset drops every entry when the collection generation moved on.
// It reports whether anything was dropped.
func (c *resultCache) reset(generation uint64) bool {
	if generation == c.generation {
		return false
	}
	c.generation = generation
	c.filters = make(map[uint64]filterEntry)
	c.sorts = make(map[uint64]sortEntry)
	return true
}

func (c *resultCache) filtered(term string, category domain.SearchCategory, compute func() []domain.Record) []domain.Record {
	key := filterKey(term, category)
	if e, ok := c.filters[key]; ok && e.term == term && e.category == category {
		c.hits++
		return e.rows
	}
	c.misses++

	if len(c.filters) >= maxCachedResults {
		c.filters = make(map[uint64]filterEntry)
	}
	rows := compute()
	c.filters[key] = filterEntry{term: term, category: category, rows: rows}
	return rows
}

func (c *resultCache) sorted(term string, category domain.SearchCategory, order domain.SortOrder, compute func() []domain.Record) []domain.Record {
	key := sortKey(term, category, order)
	if e, ok := c.sorts[key]; ok && e.term == term && e.category == category && e.order == order {
		c.hits++
		return e.rows
	}
	c.misses++

	if len(c.sorts) >= maxCachedResults {
		c.sorts = make(map[uint64]sortEntry)
	}
	rows := compute()
	c.sorts[key] = sortEntry{term: term, category: category, order: order, rows: rows}
	return rows
}

func filterKey(term string, category domain.SearchCategory) uint64 {
	return xxh3.HashString(string(category) + "\x00" + term)
}

func sortKey(term string, category domain.SearchCategory, order domain.SortOrder) uint64 {
	return xxh3.HashString(string(order) + "\x00" + string(category) + "\x00" + term)
}
