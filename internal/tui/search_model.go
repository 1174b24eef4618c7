package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/libris/internal/catalog"
	"github.com/rshade/libris/internal/logging"
	"github.com/rshade/libris/internal/session"
	listview "github.com/rshade/libris/internal/tui/list"
)

// Layout defaults.
const (
	defaultWidth  = 100
	defaultHeight = 24
	// chromeHeight is the number of lines used by header, input, status and help.
	chromeHeight  = 8
	minListHeight = 3
	inputCharMax  = 200
)

// ViewState is the screen currently shown.
type ViewState int

const (
	// ViewStateSearch shows the input and the result list.
	ViewStateSearch ViewState = iota
	// ViewStateDetail shows one book.
	ViewStateDetail
	// ViewStateQuitting is set once the program is exiting.
	ViewStateQuitting
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// searchDoneMsg reports that a SubmitQuery command returned.
type searchDoneMsg struct{ err error }

// moreDoneMsg reports that a RequestMore command returned.
type moreDoneMsg struct{ err error }

// SearchKeyMap holds the bindings of the search screen.
type SearchKeyMap struct {
	Submit    key.Binding
	Focus     key.Binding
	LoadMore  key.Binding
	Sort      key.Binding
	Open      key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultSearchKeyMap returns the default bindings.
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Focus:     key.NewBinding(key.WithKeys("tab", "/"), key.WithHelp("tab", "switch focus")),
		LoadMore:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// SearchOptions configures a SearchModel.
type SearchOptions struct {
	SortMode     session.SortMode
	Projector    *session.Projector
	CoversURL    string
	InitialQuery string
}

// SearchModel is the interactive book search screen.
type SearchModel struct {
	ctx    context.Context
	cancel context.CancelFunc

	controller *session.Controller
	presenter  *Presenter
	keys       SearchKeyMap

	state     ViewState
	focus     focusArea
	input     textinput.Model
	list      *listview.Model[catalog.BookRecord]
	loading   *LoadingState
	detail    *catalog.BookRecord
	coversURL string

	width, height int
	pending       int
	ticking       bool
	lastVersion   uint64
	initialQuery  string
}

// NewSearchModel wires a session controller to a new screen.
func NewSearchModel(ctx context.Context, fetcher session.Fetcher, opts SearchOptions) *SearchModel {
	ctx, cancel := context.WithCancel(ctx)
	presenter := NewPresenter()

	controller := session.NewController(fetcher, session.Options{
		Renderer:  presenter,
		Status:    presenter,
		LoadMore:  presenter,
		Projector: opts.Projector,
		SortMode:  opts.SortMode,
	})

	ti := textinput.New()
	ti.Placeholder = "Search books by title, author or subject"
	ti.CharLimit = inputCharMax
	ti.Prompt = "> "
	ti.SetValue(opts.InitialQuery)
	ti.Focus()

	coversURL := opts.CoversURL
	if coversURL == "" {
		coversURL = catalog.DefaultCoversURL
	}

	m := &SearchModel{
		ctx:          ctx,
		cancel:       cancel,
		controller:   controller,
		presenter:    presenter,
		keys:         DefaultSearchKeyMap(),
		state:        ViewStateSearch,
		focus:        focusInput,
		input:        ti,
		loading:      NewLoadingState(),
		coversURL:    coversURL,
		width:        defaultWidth,
		height:       defaultHeight,
		initialQuery: strings.TrimSpace(opts.InitialQuery),
	}
	m.list = listview.New([]catalog.BookRecord{}, m.listHeight(), m.width, RenderBookRow)
	m.presenter.Status(session.StatusEditPrompt, true)
	return m
}

// Init starts the cursor blink and, when given, the initial search.
func (m *SearchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initialQuery != "" {
		cmds = append(cmds, m.submit(m.initialQuery))
	}
	return tea.Batch(cmds...)
}

// Update handles messages (Bubble Tea interface).
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		m.list.SetSize(m.listHeight(), m.width)
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			m.ticking = false
			return m, nil
		}
		return m, m.loading.Update(msg)

	case searchDoneMsg:
		m.pending--
		m.logResult("search", msg.err)
		m.sync()
		m.list.SetSelected(0)
		return m, nil

	case moreDoneMsg:
		m.pending--
		m.logResult("load more", msg.err)
		m.sync()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *SearchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.state == ViewStateDetail {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
			m.state = ViewStateSearch
			m.detail = nil
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *SearchModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit(m.input.Value())
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyEsc:
		if m.list.ItemCount() > 0 {
			m.setFocus(focusList)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.controller.EditQuery(after)
		m.sync()
	}
	return m, cmd
}

func (m *SearchModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(focusInput)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Open):
		if item := m.list.SelectedItem(); item != nil {
			book := *item
			m.detail = &book
			m.state = ViewStateDetail
		}
		return m, nil
	case key.Matches(msg, m.keys.LoadMore):
		return m, m.requestMore()
	case key.Matches(msg, m.keys.Sort):
		m.controller.ChangeSortMode(m.controller.Snapshot().SortMode.Next())
		m.sync()
		return m, nil
	}

	_, cmd := m.list.Update(msg)
	return m, cmd
}

// submit runs SubmitQuery. A blank query is handled synchronously since it
// never reaches the network.
func (m *SearchModel) submit(text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		_ = m.controller.SubmitQuery(m.ctx, text)
		m.sync()
		return nil
	}
	if m.controller.Snapshot().Loading() {
		return nil
	}

	ctx, controller := m.ctx, m.controller
	return m.startFetch(func() tea.Msg {
		return searchDoneMsg{err: controller.SubmitQuery(ctx, text)}
	})
}

func (m *SearchModel) requestMore() tea.Cmd {
	snap := m.controller.Snapshot()
	if snap.Loading() || !snap.HasMore {
		return nil
	}

	ctx, controller := m.ctx, m.controller
	return m.startFetch(func() tea.Msg {
		return moreDoneMsg{err: controller.RequestMore(ctx)}
	})
}

func (m *SearchModel) startFetch(fetch tea.Cmd) tea.Cmd {
	m.pending++
	if m.ticking {
		return fetch
	}
	m.ticking = true
	return tea.Batch(fetch, m.loading.Init())
}

func (m *SearchModel) quit() (tea.Model, tea.Cmd) {
	m.state = ViewStateQuitting
	m.cancel()
	return m, tea.Quit
}

func (m *SearchModel) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// sync copies the presenter records into the list when they changed.
func (m *SearchModel) sync() {
	v := m.presenter.View()
	if v.Version == m.lastVersion {
		return
	}
	m.lastVersion = v.Version
	if v.ResultsVisible {
		m.list.SetItems(v.Records)
	} else {
		m.list.SetItems(nil)
	}
	if m.list.ItemCount() == 0 && m.focus == focusList {
		m.setFocus(focusInput)
	}
}

func (m *SearchModel) logResult(op string, err error) {
	if err == nil || errors.Is(err, session.ErrBusy) {
		return
	}
	logging.FromContext(m.ctx).Debug().Err(err).Str("operation", op).Msg("fetch command finished with error")
}

func (m *SearchModel) listHeight() int {
	return max(m.height-chromeHeight, minListHeight)
}

// View renders the screen (Bubble Tea interface).
func (m *SearchModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}
	if m.state == ViewStateDetail && m.detail != nil {
		return RenderBookCard(*m.detail, m.coversURL, m.width) + "\n" +
			MutedStyle.Render("esc back • q quit") + "\n"
	}

	snap := m.controller.Snapshot()
	v := m.presenter.View()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("libris · Open Library search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case snap.Loading():
		m.loading.SetMessage(v.Status)
		b.WriteString(RenderLoading(m.loading))
	case v.StatusVisible && snap.State == session.StateError:
		b.WriteString(ErrorStyle.Render(v.Status))
	case v.StatusVisible:
		b.WriteString(StatusStyle.Render(v.Status))
	}
	b.WriteString("\n")

	if v.ResultsVisible && m.list.ItemCount() > 0 {
		b.WriteString("\n")
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter(snap, v))
	return b.String()
}

func (m *SearchModel) renderFooter(snap session.Snapshot, v PresenterView) string {
	parts := []string{"sort: " + snap.SortMode.String()}
	if v.LoadMoreVisible {
		if v.LoadMoreEnabled {
			parts = append(parts, "m load more")
		} else {
			parts = append(parts, "loading more…")
		}
	}
	if m.focus == focusInput {
		parts = append(parts, "enter search", "tab results", "ctrl+c quit")
	} else {
		parts = append(parts, "enter details", "s sort", "tab input", "q quit")
	}
	return MutedStyle.Render(strings.Join(parts, " • "))
}

// State returns the current screen.
func (m *SearchModel) State() ViewState {
	return m.state
}

// Controller exposes the session controller.
func (m *SearchModel) Controller() *session.Controller {
	return m.controller
}
