package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/libris/internal/catalog"
	"github.com/rshade/libris/internal/openlibrary"
)

var errUpstream = errors.New("upstream unavailable")

// stubFetcher serves numbered books, ten per page.
type stubFetcher struct {
	mu    sync.Mutex
	total int
	fail  bool
	calls int
}

func (f *stubFetcher) FetchPage(_ context.Context, query string, page int) (*openlibrary.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return nil, &openlibrary.FetchError{Query: query, Page: page, Err: errUpstream}
	}

	start := (page - 1) * openlibrary.PageSize
	end := min(start+openlibrary.PageSize, f.total)
	records := make([]catalog.BookRecord, 0, openlibrary.PageSize)
	for i := start; i < end; i++ {
		records = append(records, catalog.BookRecord{
			Key:              fmt.Sprintf("/works/OL%dW", i),
			Title:            catalog.StringPtr(fmt.Sprintf("%s %02d", query, i)),
			AuthorNames:      []string{"Frank Herbert"},
			FirstPublishYear: catalog.IntPtr(1960 + i),
			CoverID:          catalog.IntPtr(1000 + i),
		})
	}
	return &openlibrary.Page{Records: records, Total: f.total}, nil
}

// drain runs cmd and any batched commands, returning the messages that the
// search model reacts to.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(c)...)
		}
		return out
	case searchDoneMsg, moreDoneMsg:
		return []tea.Msg{msg}
	default:
		return nil
	}
}

// deliver feeds the fetch results of cmd back into m.
func deliver(m *SearchModel, cmd tea.Cmd) {
	for _, msg := range drain(cmd) {
		_, _ = m.Update(msg)
	}
}

func typeText(m *SearchModel, s string) {
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func pressKey(m *SearchModel, t tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: t})
	return cmd
}

func pressRune(m *SearchModel, r rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return cmd
}
