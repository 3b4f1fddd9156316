package loader

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"libcatalog/internal/domain"
	"libcatalog/internal/eventbus"
	"libcatalog/internal/logger"
	"libcatalog/internal/logic"
)

// Loader owns the collection. It issues a single fetch; on failure the
// collection stays empty and the failure is logged and published, never retried.
type Loader struct {
	fetcher Fetcher
	store   logic.CollectionStore
	bus     eventbus.EventBus
	log     logger.Logger

	mu      sync.RWMutex
	started bool
	status  domain.LoadStatus
	err     error
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a loader writing into store. bus may be nil.
func New(fetcher Fetcher, store logic.CollectionStore, bus eventbus.EventBus, log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	log = log.With(zap.String("endpoint", fetcher.Endpoint()))
	return &Loader{
		fetcher: fetcher,
		store:   store,
		bus:     bus,
		log:     log,
		status:  domain.LoadPending,
		done:    make(chan struct{}),
	}
}

// Start issues the fetch in the background. Only the first call has an effect.
func (l *Loader) Start(ctx context.Context) error {
	if !l.markStarted() {
		return ErrAlreadyStarted
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		_ = l.run(ctx)
	}()
	return nil
}

// Load fetches synchronously and returns the fetch error, if any.
// The error is informational: the loader has already settled into LoadFailed.
func (l *Loader) Load(ctx context.Context) error {
	if !l.markStarted() {
		return ErrAlreadyStarted
	}
	return l.run(ctx)
}

// Done is closed once the load has settled either way
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until a background load started with Start has returned
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Status reports the load state and the failure cause, if any
func (l *Loader) Status() (domain.LoadStatus, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status, l.err
}

// Snapshot returns the loaded collection (empty until ready) and its generation
func (l *Loader) Snapshot() (domain.Collection, uint64) {
	return l.store.Snapshot()
}

func (l *Loader) markStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return false
	}
	l.started = true
	return true
}

func (l *Loader) run(ctx context.Context) error {
	defer close(l.done)

	endpoint := l.fetcher.Endpoint()
	l.publish(eventbus.LoadStartedEvent{Endpoint: endpoint})
	l.log.InfoWithContext(ctx, "loading collection")

	start := time.Now()
	records, err := l.fetcher.Fetch(ctx)
	if err != nil {
		l.mu.Lock()
		l.status = domain.LoadFailed
		l.err = err
		l.mu.Unlock()

		l.log.ErrorWithContext(ctx, "error fetching collection",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		l.publish(eventbus.LoadFailedEvent{Err: err})
		l.publish(eventbus.ErrorEvent{Message: "Catalog load failed", Err: err})
		return err
	}

	generation := l.store.Replace(records)

	l.mu.Lock()
	l.status = domain.LoadReady
	l.err = nil
	l.mu.Unlock()

	l.log.InfoWithContext(ctx, "collection loaded",
		zap.Int("count", len(records)),
		zap.Uint64("generation", generation),
		zap.Duration("elapsed", time.Since(start)))
	l.publish(eventbus.LoadCompletedEvent{Count: len(records), Generation: generation})
	return nil
}

func (l *Loader) publish(event eventbus.DomainEvent) {
	if l.bus != nil {
		l.bus.Publish(event)
	}
}
