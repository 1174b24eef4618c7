package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rshade/libris/internal/catalog"
	"github.com/rshade/libris/internal/openlibrary"
)

// makeBooks builds n records titled "<prefix> <i>" with ascending years.
func makeBooks(prefix string, n int) []catalog.BookRecord {
	books := make([]catalog.BookRecord, n)
	for i := range books {
		books[i] = catalog.BookRecord{
			Key:              fmt.Sprintf("/works/%s%d", prefix, i),
			Title:            catalog.StringPtr(fmt.Sprintf("%s %02d", prefix, i)),
			AuthorNames:      []string{"Author " + prefix},
			FirstPublishYear: catalog.IntPtr(1950 + i),
		}
	}
	return books
}

type fetchCall struct {
	query string
	page  int
}

// fakeFetcher serves canned pages. When gate is set, each call signals on
// started and blocks until gate yields.
type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[int]*openlibrary.Page
	errs    map[int]error
	calls   []fetchCall
	gate    chan struct{}
	started chan struct{}
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages: map[int]*openlibrary.Page{},
		errs:  map[int]error{},
	}
}

func (f *fakeFetcher) withPage(page int, total int, records []catalog.BookRecord) *fakeFetcher {
	f.pages[page] = &openlibrary.Page{Records: records, Total: total}
	return f
}

func (f *fakeFetcher) withError(page int, err error) *fakeFetcher {
	f.errs[page] = err
	return f
}

func (f *fakeFetcher) blocking() *fakeFetcher {
	f.gate = make(chan struct{})
	f.started = make(chan struct{}, 1)
	return f
}

func (f *fakeFetcher) FetchPage(_ context.Context, query string, page int) (*openlibrary.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{query: query, page: page})
	gate, started := f.gate, f.started
	f.mu.Unlock()

	if gate != nil {
		started <- struct{}{}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[page]; err != nil {
		return nil, err
	}
	if p, ok := f.pages[page]; ok {
		return p, nil
	}
	return &openlibrary.Page{Records: []catalog.BookRecord{}}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeFetcher) lastCall() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// recorder captures every collaborator instruction.
type recorder struct {
	rendered       [][]catalog.BookRecord
	resultsVisible bool
	status         string
	statusVisible  bool
	loadEnabled    bool
	loadVisible    bool
	statuses       []string
}

func (r *recorder) Render(records []catalog.BookRecord) {
	r.rendered = append(r.rendered, records)
	r.resultsVisible = true
}

func (r *recorder) Hide() {
	r.resultsVisible = false
}

func (r *recorder) Status(message string, visible bool) {
	r.status = message
	r.statusVisible = visible
	r.statuses = append(r.statuses, message)
}

func (r *recorder) SetLoadMore(enabled, visible bool) {
	r.loadEnabled = enabled
	r.loadVisible = visible
}

func (r *recorder) lastRendered() []catalog.BookRecord {
	if len(r.rendered) == 0 {
		return nil
	}
	return r.rendered[len(r.rendered)-1]
}

func newTestController(f Fetcher) (*Controller, *recorder) {
	rec := &recorder{}
	c := NewController(f, Options{Renderer: rec, Status: rec, LoadMore: rec})
	return c, rec
}

func titles(records []catalog.BookRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.SortTitle()
	}
	return out
}
