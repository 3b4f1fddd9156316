package query

import (
	"sync"

	"go.uber.org/zap"

	"libcatalog/internal/domain"
	"libcatalog/internal/logger"
	"libcatalog/internal/ui/logic"
	"libcatalog/internal/ui/services/events"
	"libcatalog/internal/ui/state"
	"libcatalog/internal/ui/viewmodels"
)

// Source is the read side of the loader
type Source interface {
	Snapshot() (domain.Collection, uint64)
	Status() (domain.LoadStatus, error)
}

// Service owns the query state and is its only writer. Every action is
// serialised; readers get a consistent snapshot through View.
type Service struct {
	mu     sync.Mutex
	source Source
	state  *state.QueryState
	bus    events.EventBus
	log    logger.Logger
	cache  *resultCache
}

// NewService creates a query service over source. bus and log may be nil.
func NewService(source Source, pageSize int, bus events.EventBus, log logger.Logger) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Service{
		source: source,
		state:  state.NewQueryState(pageSize),
		bus:    bus,
		log:    log,
		cache:  newResultCache(),
	}
}

// State returns a copy of the current query state
func (s *Service) State() state.QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// View recomputes the view model for the current state and collection
func (s *Service) View() viewmodels.ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := s.resultsLocked()
	status, err := s.source.Status()
	return viewmodels.Build(s.state.Snapshot(), sorted, viewmodels.Load{Status: status, Err: err})
}

// Results returns the full filtered and sorted result, unpaginated
func (s *Service) Results() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultsLocked()
}

// CacheStats reports memo hits and misses since creation
func (s *Service) CacheStats() (hits, misses uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.hits, s.cache.misses
}

// SetSearchTerm applies a new term and returns to page 1
func (s *Service) SetSearchTerm(term string) bool {
	return s.apply("search term", func(q *state.QueryState) bool { return q.SetSearchTerm(term) })
}

// SetSearchCategory changes the searched field
func (s *Service) SetSearchCategory(c domain.SearchCategory) bool {
	return s.apply("search category", func(q *state.QueryState) bool { return q.SetSearchCategory(c) })
}

// CycleSearchCategory moves to the next searchable field
func (s *Service) CycleSearchCategory() bool {
	return s.apply("search category", func(q *state.QueryState) bool {
		return q.SetSearchCategory(q.SearchCategory.Next())
	})
}

// SetSortOrder sets the chronological direction
func (s *Service) SetSortOrder(o domain.SortOrder) bool {
	return s.apply("sort order", func(q *state.QueryState) bool { return q.SetSortOrder(o) })
}

// ToggleSortOrder flips the chronological direction
func (s *Service) ToggleSortOrder() bool {
	return s.apply("sort order", func(q *state.QueryState) bool { return q.SetSortOrder(q.SortOrder.Toggle()) })
}

// SelectPage sets the page without bounds checks
func (s *Service) SelectPage(n int) bool {
	return s.apply("page", func(q *state.QueryState) bool { return q.SelectPage(n) })
}

// NextPage advances one page, stopping at the last one
func (s *Service) NextPage() bool {
	return s.apply("page", func(q *state.QueryState) bool {
		count := s.pageCountLocked()
		if q.CurrentPage >= count {
			return false
		}
		next := q.CurrentPage + 1
		if next < 1 {
			next = 1
		}
		return q.SelectPage(next)
	})
}

// PrevPage goes back one page. A page left past the end by a shrinking
// result lands on the last existing page.
func (s *Service) PrevPage() bool {
	return s.apply("page", func(q *state.QueryState) bool {
		count := s.pageCountLocked()
		prev := q.CurrentPage - 1
		if prev > count {
			prev = count
		}
		if prev < 1 {
			return false
		}
		return q.SelectPage(prev)
	})
}

// FirstPage selects page 1
func (s *Service) FirstPage() bool {
	return s.apply("page", func(q *state.QueryState) bool { return q.SelectPage(1) })
}

// LastPage selects the last page, if there is one
func (s *Service) LastPage() bool {
	return s.apply("page", func(q *state.QueryState) bool {
		count := s.pageCountLocked()
		if count < 1 {
			return false
		}
		return q.SelectPage(count)
	})
}

func (s *Service) apply(what string, mutate func(q *state.QueryState) bool) bool {
	s.mu.Lock()
	changed := mutate(s.state)
	snap := s.state.Snapshot()
	s.mu.Unlock()

	if !changed {
		return false
	}

	s.log.Debug("query changed",
		zap.String("field", what),
		zap.String("term", snap.SearchTerm),
		zap.Stringer("category", snap.SearchCategory),
		zap.Stringer("order", snap.SortOrder),
		zap.Int("page", snap.CurrentPage))

	s.bus.Publish(events.QueryChangedEvent{
		SearchTerm:     snap.SearchTerm,
		SearchCategory: snap.SearchCategory,
		SortOrder:      snap.SortOrder,
		CurrentPage:    snap.CurrentPage,
	})
	return true
}

func (s *Service) pageCountLocked() int {
	return logic.PageCount(len(s.resultsLocked()), s.state.PageSize)
}

// resultsLocked runs filter and sort through the memo. Callers hold s.mu.
func (s *Service) resultsLocked() []domain.Record {
	collection, generation := s.source.Snapshot()
	if s.cache.reset(generation) {
		s.log.Debug("collection generation changed, dropping cached results",
			zap.Uint64("generation", generation),
			zap.Int("count", len(collection)))
		s.bus.Publish(events.CollectionChangedEvent{Generation: generation, Count: len(collection)})
	}

	q := s.state
	filtered := s.cache.filtered(q.SearchTerm, q.SearchCategory, func() []domain.Record {
		return logic.Filter(collection, q.SearchTerm, q.SearchCategory)
	})
	return s.cache.sorted(q.SearchTerm, q.SearchCategory, q.SortOrder, func() []domain.Record {
		return logic.SortByPublished(filtered, q.SortOrder)
	})
}
