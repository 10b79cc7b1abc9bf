// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/jukebox/internal/models"
)

// MockSearcher is a test double for [services.Searcher].
//
// Results are keyed by the raw query; Err, when set, is returned for every call.
type MockSearcher struct {
	mu      sync.Mutex
	Results map[string][]models.Video
	Err     error
	Queries []string
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results[query], nil
}

func (m *MockSearcher) Name() string { return "mock" }

// Calls returns the number of searches issued so far.
func (m *MockSearcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}

// BlockingSearcher holds each search until its query is released, so tests can control resolve order.
type BlockingSearcher struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	Results map[string][]models.Video
	Started chan string
}

func NewBlockingSearcher(results map[string][]models.Video) *BlockingSearcher {
	return &BlockingSearcher{
		gates:   make(map[string]chan struct{}),
		Results: results,
		Started: make(chan string, 16),
	}
}

func (b *BlockingSearcher) gate(query string) chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if g, ok := b.gates[query]; ok {
		return g
	}
	g := make(chan struct{})
	b.gates[query] = g
	return g
}

func (b *BlockingSearcher) Search(ctx context.Context, query string) ([]models.Video, error) {
	g := b.gate(query)
	b.Started <- query
	select {
	case <-g:
		return b.Results[query], nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release lets the search for query resolve.
func (b *BlockingSearcher) Release(query string) {
	close(b.gate(query))
}

func (b *BlockingSearcher) Name() string { return "blocking" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// Videos builds one video per id with predictable titles and thumbnails.
func Videos(ids ...string) []models.Video {
	out := make([]models.Video, len(ids))
	for i, id := range ids {
		out[i] = models.Video{ID: id, Title: "Title " + id, Thumbnail: "https://i.ytimg.com/vi/" + id + "/default.jpg"}
	}
	return out
}

// VideoIDs returns the identifiers of items in order.
func VideoIDs(items []models.Video) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.ID
	}
	return out
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
