package session

import (
	"slices"

	"github.com/rshade/libris/internal/catalog"
)

// Accumulator holds the results fetched so far for one query.
// Records keep API arrival order; display ordering is done by Project.
type Accumulator struct {
	query       string
	currentPage int
	total       int
	records     []catalog.BookRecord
	loaded      bool
}

// NewAccumulator returns an accumulator already started on query.
func NewAccumulator(query string) *Accumulator {
	a := &Accumulator{}
	a.StartNewQuery(query)
	return a
}

// StartNewQuery resets the accumulator for a new query.
func (a *Accumulator) StartNewQuery(query string) {
	a.query = query
	a.currentPage = 1
	a.total = 0
	a.records = []catalog.BookRecord{}
	a.loaded = false
}

// ApplyFetchResult folds a fetched page into the accumulator. The first page
// replaces the collection; later pages append and advance the page cursor.
// The reported total always overwrites the previous one.
func (a *Accumulator) ApplyFetchResult(records []catalog.BookRecord, total int, isFirstPage bool) {
	if isFirstPage {
		a.records = slices.Clone(records)
		if a.records == nil {
			a.records = []catalog.BookRecord{}
		}
		a.total = total
		a.loaded = true
		return
	}
	a.records = append(a.records, records...)
	a.total = total
	a.currentPage++
}

// HasMore reports whether the server holds records not fetched yet.
func (a *Accumulator) HasMore() bool {
	return a.total != 0 && len(a.records) < a.total
}

// Query returns the active query.
func (a *Accumulator) Query() string { return a.query }

// CurrentPage returns the last page applied (1 after the first page).
func (a *Accumulator) CurrentPage() int { return a.currentPage }

// Total returns the server-reported match count.
func (a *Accumulator) Total() int { return a.total }

// Len returns the number of accumulated records.
func (a *Accumulator) Len() int { return len(a.records) }

// Loaded reports whether the first page has been applied.
func (a *Accumulator) Loaded() bool { return a.loaded }

// Records returns a copy of the accumulated records in arrival order.
func (a *Accumulator) Records() []catalog.BookRecord {
	return slices.Clone(a.records)
}
