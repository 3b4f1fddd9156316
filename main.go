package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"libcatalog/internal/config"
	"libcatalog/internal/eventbus"
	"libcatalog/internal/loader"
	"libcatalog/internal/logger"
	"libcatalog/internal/logic"
	"libcatalog/internal/ui"
	"libcatalog/internal/ui/services/events"
	"libcatalog/internal/ui/services/query"
)

func main() {
	var (
		configPath string
		endpoint   string
		pageSize   int
	)
	flag.StringVar(&configPath, "config", "", "Config file (default ./libcatalog.toml, then the user config dir)")
	flag.StringVar(&endpoint, "endpoint", "", "Catalog endpoint, overrides the config")
	flag.IntVar(&pageSize, "page-size", 0, "Rows per page, overrides the config")
	flag.Parse()

	// The domain bus comes first: config loading publishes on it
	bus := eventbus.New(nil)
	defer bus.Close()

	// Events for the UI queue here until the program is running
	eventChan := make(chan eventbus.DomainEvent, 100)
	var dropped atomic.Int64
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			dropped.Add(1)
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
		eventbus.EventLoadCompleted,
		eventbus.EventLoadFailed,
		eventbus.EventError,
	} {
		bus.Subscribe(t, forward)
	}

	cfg, path, err := config.Resolve(config.NewConfigServiceWithBus(bus), configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if pageSize != 0 {
		cfg.PageSize = pageSize
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so stderr is never a log target here
	if cfg.Log.Output == "" || cfg.Log.Output == "stderr" || cfg.Log.Output == "stdout" {
		cfg.Log.Output = "libcatalog.log"
	}
	log, err := logger.NewLogger(cfg.Log.Format, cfg.Log.Level, cfg.Log.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	eventbus.SetLogger(bus, log)
	log.Info("config loaded", zap.String("path", path), zap.String("endpoint", cfg.Endpoint), zap.Int("page_size", cfg.PageSize))

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Query events from the UI service travel on their own bus
	uiBus := events.NewBus()

	store := logic.NewMemoryCollectionStore()
	fetcher := loader.NewHTTPFetcher(cfg.Endpoint, cfg.HTTP, log)
	catalogLoader := loader.New(fetcher, store, bus, log)

	svc := query.NewService(catalogLoader, cfg.PageSize, uiBus, log)
	uiBus.Subscribe(events.TypeOf(events.CollectionChangedEvent{}), func(e interface{}) {
		if ev, ok := e.(events.CollectionChangedEvent); ok {
			log.Debug("collection changed", zap.Uint64("generation", ev.Generation), zap.Int("count", ev.Count))
		}
	})
	uiBus.Subscribe(events.TypeOf(events.QueryChangedEvent{}), func(e interface{}) {
		if ev, ok := e.(events.QueryChangedEvent); ok {
			log.Debug("query changed",
				zap.String("term", ev.SearchTerm),
				zap.String("category", ev.SearchCategory.String()),
				zap.String("order", ev.SortOrder.String()),
				zap.Int("page", ev.CurrentPage))
		}
	})

	uiModel := ui.NewModel(cfg, svc, log)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-ctx.Done():
				return
			}
		}
	}()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
			p.Quit()
		case <-ctx.Done():
		}
	}()

	if err := catalogLoader.Start(ctx); err != nil {
		log.Error("could not start loader", zap.Error(err))
	}

	log.Info("starting UI")
	if _, err := p.Run(); err != nil {
		log.Error("error running program", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Info("UI exited normally")
	if n := dropped.Load(); n > 0 {
		log.Warn("UI event channel was full, events dropped", zap.Int64("count", n))
	}

	cancel()
	catalogLoader.Wait()
}
