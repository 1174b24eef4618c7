package tui

import (
	"sync"

	"github.com/rshade/libris/internal/catalog"
)

// Presenter collects what the session controller asks to display. The
// controller calls it from the goroutine running a fetch command, while the
// Bubble Tea loop reads it from View, so every access is locked.
type Presenter struct {
	mu sync.Mutex

	records       []catalog.BookRecord
	resultsShown  bool
	status        string
	statusVisible bool
	loadEnabled   bool
	loadVisible   bool
	version       uint64
}

// PresenterView is a copy of the presenter state.
type PresenterView struct {
	Records         []catalog.BookRecord
	ResultsVisible  bool
	Status          string
	StatusVisible   bool
	LoadMoreEnabled bool
	LoadMoreVisible bool
	Version         uint64
}

// NewPresenter returns an empty presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

// Render replaces the displayed records and shows the result area.
func (p *Presenter) Render(records []catalog.BookRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append([]catalog.BookRecord(nil), records...)
	p.resultsShown = true
	p.version++
}

// Hide hides the result area.
func (p *Presenter) Hide() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resultsShown = false
	p.version++
}

// Status sets the status line.
func (p *Presenter) Status(message string, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = message
	p.statusVisible = visible
	p.version++
}

// SetLoadMore toggles the load-more affordance.
func (p *Presenter) SetLoadMore(enabled, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadEnabled = enabled
	p.loadVisible = visible
	p.version++
}

// View returns a copy of the current state.
func (p *Presenter) View() PresenterView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PresenterView{
		Records:         append([]catalog.BookRecord(nil), p.records...),
		ResultsVisible:  p.resultsShown,
		Status:          p.status,
		StatusVisible:   p.statusVisible,
		LoadMoreEnabled: p.loadEnabled,
		LoadMoreVisible: p.loadVisible,
		Version:         p.version,
	}
}
