//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
)

type book struct {
	Name      string `json:"name"`
	Author    string `json:"author"`
	Subject   string `json:"subject"`
	Published string `json:"published"`
}

// CatalogOption configures the catalog served to the app
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	status int
	books  []book
}

// WithStatus makes the catalog endpoint answer with status and no records
func WithStatus(status int) CatalogOption {
	return func(opts *catalogOptions) {
		opts.status = status
	}
}

// WithBooks replaces the generated catalog
func WithBooks(books ...book) CatalogOption {
	return func(opts *catalogOptions) {
		opts.books = books
	}
}

// GeneratedBooks returns n books named "Volume 01".. with one published year each
func GeneratedBooks(n int) []book {
	books := make([]book, n)
	for i := range books {
		books[i] = book{
			Name:      fmt.Sprintf("Volume %02d", i+1),
			Author:    fmt.Sprintf("Author %c", 'A'+i%5),
			Subject:   []string{"History", "Poetry", "Science"}[i%3],
			Published: fmt.Sprintf("%d-03-15", 1960+i),
		}
	}
	return books
}

// CreateTestWorkspace creates a temporary directory for config and logs
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// ServeCatalog starts the endpoint the app loads its collection from
func (tf *TUITestFramework) ServeCatalog(options ...CatalogOption) string {
	opts := &catalogOptions{status: http.StatusOK, books: GeneratedBooks(25)}
	for _, opt := range options {
		opt(opts)
	}

	tf.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(opts.status)
		if opts.status != http.StatusOK {
			return
		}
		_ = json.NewEncoder(w).Encode(opts.books)
	}))
	tf.endpoint = tf.server.URL + "/db"
	return tf.endpoint
}

// startCatalogApp is the common setup: workspace, catalog, app, settled load
func startCatalogApp(tf *TUITestFramework, options ...CatalogOption) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	tf.ServeCatalog(options...)
	if err := tf.StartApp(); err != nil {
		return err
	}
	if !tf.Ready() {
		return fmt.Errorf("catalog never settled\n%s", tf.SnapshotPlain())
	}
	return nil
}
