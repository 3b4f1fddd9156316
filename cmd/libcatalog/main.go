// Command libcatalog runs one catalog query without the interactive UI and
// prints the requested page as a table or as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"libcatalog/internal/config"
	"libcatalog/internal/domain"
	"libcatalog/internal/loader"
	"libcatalog/internal/logger"
	"libcatalog/internal/logic"
	"libcatalog/internal/ui/services/query"
	"libcatalog/internal/ui/viewmodels"
	"libcatalog/internal/ui/views"
)

type options struct {
	configPath string
	endpoint   string
	pageSize   int
	search     string
	by         string
	order      string
	page       int
	asJSON     bool
}

// pageOutput is the JSON shape of one result page
type pageOutput struct {
	SearchTerm     string          `json:"search_term"`
	SearchCategory string          `json:"search_category"`
	SortOrder      string          `json:"sort_order"`
	Page           int             `json:"page"`
	PageSize       int             `json:"page_size"`
	PageCount      int             `json:"page_count"`
	Total          int             `json:"total"`
	Rows           []domain.Record `json:"rows"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, _, err := config.Resolve(config.NewConfigService(), opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if opts.pageSize != 0 {
		cfg.PageSize = opts.pageSize
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	category, err := domain.ParseSearchCategory(opts.by)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	order, err := domain.ParseSortOrder(opts.order)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	log, err := logger.NewLogger(cfg.Log.Format, cfg.Log.Level, cfg.Log.Output)
	if err != nil {
		fmt.Fprintf(stderr, "Error setting up logging: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	catalogLoader := loader.New(
		loader.NewHTTPFetcher(cfg.Endpoint, cfg.HTTP, log),
		logic.NewMemoryCollectionStore(), nil, log)
	// A failed load leaves an empty collection; the empty page is still printed
	code := 0
	if err := catalogLoader.Load(ctx); err != nil {
		log.Error("catalog load failed", zap.Error(err))
		fmt.Fprintf(stderr, "Could not load the catalog from %s: %v\n", cfg.Endpoint, err)
		code = 1
	}

	svc := query.NewService(catalogLoader, cfg.PageSize, nil, log)
	svc.SetSearchCategory(category)
	svc.SetSortOrder(order)
	svc.SetSearchTerm(opts.search)
	svc.SelectPage(opts.page)

	vm := svc.View()
	if opts.asJSON {
		if rc := writeJSON(stdout, stderr, vm); rc != 0 {
			return rc
		}
		return code
	}
	writeTable(stdout, vm)
	return code
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	opts := options{}
	fs := flag.NewFlagSet("libcatalog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "Config file (default ./libcatalog.toml, then the user config dir)")
	fs.StringVar(&opts.endpoint, "endpoint", "", "Catalog endpoint, overrides the config")
	fs.IntVar(&opts.pageSize, "page-size", 0, "Rows per page, overrides the config")
	fs.StringVar(&opts.search, "search", "", "Case-insensitive substring to search for")
	fs.StringVar(&opts.by, "by", string(domain.CategoryName), "Field to search: name, author or subject")
	fs.StringVar(&opts.order, "order", string(domain.SortAscending), "Published date order: asc or desc")
	fs.IntVar(&opts.page, "page", 1, "Page to print")
	fs.BoolVar(&opts.asJSON, "json", false, "Print the page as JSON")
	err := fs.Parse(args)
	return opts, err
}

func writeJSON(stdout, stderr io.Writer, vm viewmodels.ViewModel) int {
	rows := vm.PageRows
	if rows == nil {
		rows = []domain.Record{}
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pageOutput{
		SearchTerm:     vm.SearchTerm,
		SearchCategory: vm.SearchCategory.String(),
		SortOrder:      vm.SortOrder.String(),
		Page:           vm.CurrentPage,
		PageSize:       vm.PageSize,
		PageCount:      vm.PageCount,
		Total:          vm.TotalCount,
		Rows:           rows,
	}); err != nil {
		fmt.Fprintf(stderr, "Error encoding output: %v\n", err)
		return 1
	}
	return 0
}

func writeTable(w io.Writer, vm viewmodels.ViewModel) {
	fmt.Fprintln(w, vm.TotalLabel())
	if len(vm.PageRows) == 0 {
		if vm.PageCount > 0 {
			fmt.Fprintf(w, "Page %d is empty, there are %d pages.\n", vm.CurrentPage, vm.PageCount)
		}
		return
	}
	renderer := views.NewRecordRenderer(views.NewStyles())
	fmt.Fprintln(w, renderer.RenderTable(vm.PageRows, vm.FirstRowNumber(), vm.SearchTerm, vm.SearchCategory, 0))
	fmt.Fprintf(w, "Page %d of %d\n", vm.CurrentPage, vm.PageCount)
}
