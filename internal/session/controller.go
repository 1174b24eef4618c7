package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rshade/libris/internal/catalog"
	"github.com/rshade/libris/internal/logging"
	"github.com/rshade/libris/internal/openlibrary"
)

// Controller errors. None of them change session state.
var (
	ErrEmptyQuery    = errors.New("empty search query")
	ErrBusy          = errors.New("a search request is already in flight")
	ErrNoActiveQuery = errors.New("no active query")
	ErrNoMoreResults = errors.New("no more results to load")
)

// Fetcher retrieves one page of results. *openlibrary.Client implements it.
type Fetcher interface {
	FetchPage(ctx context.Context, query string, page int) (*openlibrary.Page, error)
}

// Renderer draws an ordered sequence of records, or hides the result area.
type Renderer interface {
	Render(records []catalog.BookRecord)
	Hide()
}

// StatusSink displays a status line.
type StatusSink interface {
	Status(message string, visible bool)
}

// LoadMoreControl toggles the load-more affordance.
type LoadMoreControl interface {
	SetLoadMore(enabled, visible bool)
}

// Options configures a Controller. Nil collaborators are replaced with no-ops.
type Options struct {
	Renderer  Renderer
	Status    StatusSink
	LoadMore  LoadMoreControl
	Projector *Projector
	SortMode  SortMode
}

// Snapshot is a read-only view of the controller.
type Snapshot struct {
	State       State
	Query       string
	CurrentPage int
	Total       int
	Count       int
	SortMode    SortMode
	HasMore     bool
}

// Loading reports whether a fetch is in flight.
func (s Snapshot) Loading() bool {
	return s.State.Loading()
}

// Controller drives a search session from user intents.
type Controller struct {
	fetcher   Fetcher
	renderer  Renderer
	status    StatusSink
	loadMore  LoadMoreControl
	projector *Projector

	mu       sync.Mutex
	state    State
	session  *Accumulator
	sortMode SortMode
}

// NewController creates an idle controller.
func NewController(fetcher Fetcher, opts Options) *Controller {
	c := &Controller{
		fetcher:   fetcher,
		renderer:  opts.Renderer,
		status:    opts.Status,
		loadMore:  opts.LoadMore,
		projector: opts.Projector,
		sortMode:  opts.SortMode,
		state:     StateIdle,
	}
	if c.renderer == nil {
		c.renderer = nopCollaborator{}
	}
	if c.status == nil {
		c.status = nopCollaborator{}
	}
	if c.loadMore == nil {
		c.loadMore = nopCollaborator{}
	}
	if c.projector == nil {
		c.projector = defaultProjector
	}
	return c
}

// SubmitQuery starts a new search for text. A blank text shows a prompt and
// returns ErrEmptyQuery; a submit while a fetch is in flight returns ErrBusy.
// Fetch failures are shown through the status sink and returned wrapped.
func (c *Controller) SubmitQuery(ctx context.Context, text string) error {
	log := logging.FromContext(ctx)
	query := strings.TrimSpace(text)

	c.mu.Lock()
	if query == "" {
		c.showPromptLocked(StatusEnterTerm)
		c.mu.Unlock()
		return ErrEmptyQuery
	}
	if state := c.state; state.Loading() {
		c.mu.Unlock()
		log.Debug().Str("query", query).Stringer("state", state).Msg("submit ignored, fetch in flight")
		return ErrBusy
	}

	acc := NewAccumulator(query)
	c.session = acc
	c.state = StateSearching
	c.status.Status(StatusLoading, true)
	c.renderer.Hide()
	c.loadMore.SetLoadMore(false, false)
	c.mu.Unlock()

	log.Info().Str("query", query).Msg("search started")
	page, err := c.fetcher.FetchPage(ctx, query, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateError
		c.status.Status(StatusSearchFailed, true)
		c.renderer.Hide()
		c.loadMore.SetLoadMore(false, false)
		log.Warn().Err(err).Str("query", query).Msg("search failed")
		return fmt.Errorf("searching %q: %w", query, err)
	}

	acc.ApplyFetchResult(page.Records, page.Total, true)
	if acc.Len() == 0 {
		c.state = StateEmpty
		c.status.Status(StatusNoResults, true)
		c.renderer.Hide()
		c.loadMore.SetLoadMore(false, false)
		log.Info().Str("query", query).Int("total", page.Total).Msg("search returned no results")
		return nil
	}

	c.state = StateReady
	c.renderLocked()
	log.Info().Str("query", query).Int("count", acc.Len()).Int("total", acc.Total()).Msg("search completed")
	return nil
}

// RequestMore fetches the next page for the active query and appends it.
// A failure keeps the results already shown.
func (c *Controller) RequestMore(ctx context.Context) error {
	log := logging.FromContext(ctx)

	c.mu.Lock()
	if c.state.Loading() {
		c.mu.Unlock()
		return ErrBusy
	}
	acc := c.session
	if acc == nil || !acc.Loaded() || acc.Len() == 0 {
		c.mu.Unlock()
		return ErrNoActiveQuery
	}
	if !acc.HasMore() {
		c.mu.Unlock()
		return ErrNoMoreResults
	}

	query := acc.Query()
	next := acc.CurrentPage() + 1
	c.state = StateLoadingMore
	c.status.Status(StatusLoadingMore, true)
	c.loadMore.SetLoadMore(false, true)
	c.mu.Unlock()

	log.Debug().Str("query", query).Int("page", next).Msg("loading more results")
	page, err := c.fetcher.FetchPage(ctx, query, next)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateError
		c.status.Status(StatusLoadMoreFailed, true)
		c.loadMore.SetLoadMore(acc.HasMore(), acc.HasMore())
		log.Warn().Err(err).Str("query", query).Int("page", next).Msg("load more failed")
		return fmt.Errorf("loading page %d of %q: %w", next, query, err)
	}

	acc.ApplyFetchResult(page.Records, page.Total, false)
	c.state = StateReady
	c.renderLocked()
	log.Debug().Str("query", query).Int("count", acc.Len()).Int("total", acc.Total()).Msg("more results loaded")
	return nil
}

// ChangeSortMode re-renders the accumulated set in the new order. It never
// fetches. The mode is remembered even when there is nothing to render.
func (c *Controller) ChangeSortMode(mode SortMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sortMode = mode
	if c.session == nil || c.session.Len() == 0 {
		return
	}
	if c.state == StateReady {
		c.renderLocked()
		return
	}
	// Keep the in-flight or failure status line, only reorder.
	c.renderer.Render(c.projector.Project(c.session.records, c.sortMode))
}

// EditQuery reacts to the query input changing. Clearing the input shows a
// prompt and hides results but keeps the session. Ignored while loading.
func (c *Controller) EditQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Loading() {
		return
	}
	if strings.TrimSpace(text) == "" {
		c.showPromptLocked(StatusEditPrompt)
	}
}

// Snapshot returns the current controller view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{State: c.state, SortMode: c.sortMode}
	if c.session != nil {
		snap.Query = c.session.Query()
		snap.CurrentPage = c.session.CurrentPage()
		snap.Total = c.session.Total()
		snap.Count = c.session.Len()
		snap.HasMore = c.session.HasMore()
	}
	return snap
}

// Results returns the accumulated records in the current sort order.
func (c *Controller) Results() []catalog.BookRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return []catalog.BookRecord{}
	}
	return c.projector.Project(c.session.records, c.sortMode)
}

func (c *Controller) renderLocked() {
	acc := c.session
	c.renderer.Render(c.projector.Project(acc.records, c.sortMode))
	c.status.Status(CountStatus(acc.Len(), acc.Total(), acc.Query()), true)
	more := acc.HasMore()
	c.loadMore.SetLoadMore(more, more)
}

func (c *Controller) showPromptLocked(message string) {
	c.status.Status(message, true)
	c.renderer.Hide()
	c.loadMore.SetLoadMore(false, false)
}

type nopCollaborator struct{}

func (nopCollaborator) Render([]catalog.BookRecord) {}
func (nopCollaborator) Hide()                       {}
func (nopCollaborator) Status(string, bool)         {}
func (nopCollaborator) SetLoadMore(bool, bool)      {}
