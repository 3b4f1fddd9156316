package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"libcatalog/internal/config"
	"libcatalog/internal/domain"
	"libcatalog/internal/logger"
)

// Fetcher retrieves the whole collection in one call
type Fetcher interface {
	Fetch(ctx context.Context) (domain.Collection, error)
	Endpoint() string
}

// HTTPFetcher GETs a JSON array of records from a single endpoint
type HTTPFetcher struct {
	endpoint string
	client   *retryablehttp.Client
}

// NewHTTPFetcher builds a fetcher for endpoint. With the default HTTPConfig the
// request is attempted once and has no client-side timeout.
func NewHTTPFetcher(endpoint string, cfg config.HTTPConfig, log logger.Logger) *HTTPFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.HTTPClient.Timeout = cfg.Timeout
	// hand every response back so status handling stays in one place
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if log != nil {
		client.Logger = &leveledLogger{s: log.Sugar()}
	} else {
		client.Logger = nil
	}

	return &HTTPFetcher{
		endpoint: endpoint,
		client:   client,
	}
}

func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint
}

// Fetch performs the GET and decodes the payload
func (f *HTTPFetcher) Fetch(ctx context.Context) (domain.Collection, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	return decodeCollection(resp.Body)
}

func decodeCollection(r io.Reader) (domain.Collection, error) {
	var records domain.Collection
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if records == nil {
		// a literal null body is treated as an empty catalog
		records = domain.Collection{}
	}
	return records, nil
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
