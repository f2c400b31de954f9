package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// Request is one call received by a Backend.
type Request struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// Backend is a fake back-office API. Unregistered routes answer 404.
type Backend struct {
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Request
}

// NewBackend starts a fake API that is shut down when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{routes: map[string]http.HandlerFunc{}}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

// URL is the API base URL.
func (b *Backend) URL() string {
	return b.server.URL
}

// HandleFunc routes method and path to h.
func (b *Backend) HandleFunc(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = h
}

// Handle answers method and path with status and a raw JSON body.
func (b *Backend) Handle(method, path string, status int, body string) {
	b.HandleFunc(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

// HandleJSON answers method and path with 200 and v encoded as JSON.
func (b *Backend) HandleJSON(method, path string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	b.Handle(method, path, http.StatusOK, string(data))
}

// HandlePages serves a paged listing at path. pages[i] is page i+1 and
// every page carries the same pagination envelope.
func (b *Backend) HandlePages(path, itemsKey string, perPage int, pages ...[]model.Order) {
	total := 0
	for _, p := range pages {
		total += len(p)
	}
	b.HandleFunc(http.MethodGet, path, func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 || page > len(pages) {
			WriteJSON(w, http.StatusNotFound, `{"success":false,"message":"page not found"}`)
			return
		}
		data, _ := json.Marshal(map[string]any{
			"success": true,
			itemsKey:  pages[page-1],
			"pagination": model.Pagination{
				Total:       total,
				CurrentPage: page,
				LastPage:    len(pages),
				PerPage:     perPage,
			},
		})
		WriteJSON(w, http.StatusOK, string(data))
	})
}

// Requests returns every call received so far.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Calls counts the requests to method and path.
func (b *Backend) Calls(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	h, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, `{"success":false,"message":"Route not found"}`)
		return
	}
	h(w, r)
}

// WriteJSON writes a raw JSON response.
func WriteJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
