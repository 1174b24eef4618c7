package session

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/libris/internal/catalog"
)

// SortMode selects the display order of the accumulated set.
type SortMode int

const (
	// SortRelevance keeps API order.
	SortRelevance SortMode = iota
	// SortNewest orders by first publish year, descending.
	SortNewest
	// SortOldest orders by first publish year, ascending.
	SortOldest
	// SortAlphabetical orders by title using locale collation.
	SortAlphabetical
)

// numSortModes is the number of sort modes, used when cycling.
const numSortModes = 4

// Year substitutes for records without a first publish year.
const (
	missingYearNewest = 0
	missingYearOldest = 9999
)

// ErrInvalidSortMode is returned by ParseSortMode for unknown names.
var ErrInvalidSortMode = errors.New("invalid sort mode")

// SortModes lists every mode in cycle order.
func SortModes() []SortMode {
	return []SortMode{SortRelevance, SortNewest, SortOldest, SortAlphabetical}
}

// String returns the canonical mode name.
func (m SortMode) String() string {
	switch m {
	case SortRelevance:
		return "relevance"
	case SortNewest:
		return "newest"
	case SortOldest:
		return "oldest"
	case SortAlphabetical:
		return "alphabetical"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// Next returns the following mode, wrapping around.
func (m SortMode) Next() SortMode {
	return (m + 1) % numSortModes
}

// ParseSortMode parses a mode name. The empty string means relevance.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "relevance", "default":
		return SortRelevance, nil
	case "newest":
		return SortNewest, nil
	case "oldest":
		return SortOldest, nil
	case "alphabetical", "a-z", "az", "title":
		return SortAlphabetical, nil
	default:
		return SortRelevance, fmt.Errorf("%w: %q (valid: relevance, newest, oldest, alphabetical)", ErrInvalidSortMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m SortMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SortMode) UnmarshalText(text []byte) error {
	parsed, err := ParseSortMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Projector derives display orderings. A collate.Collator is not safe for
// concurrent use, so comparisons are serialized on mu.
type Projector struct {
	mu       sync.Mutex
	collator *collate.Collator
}

// NewProjector returns a projector collating titles for the given language.
func NewProjector(tag language.Tag) *Projector {
	return &Projector{collator: collate.New(tag)}
}

// NewProjectorForLanguage parses a BCP 47 tag such as "en" or "de-DE".
func NewProjectorForLanguage(lang string) (*Projector, error) {
	if lang == "" {
		return NewProjector(language.English), nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parsing language %q: %w", lang, err)
	}
	return NewProjector(tag), nil
}

//nolint:gochecknoglobals // shared default for callers without a language preference
var defaultProjector = NewProjector(language.English)

// Project orders records for display using English collation.
func Project(records []catalog.BookRecord, mode SortMode) []catalog.BookRecord {
	return defaultProjector.Project(records, mode)
}

// Project returns a new slice holding records in the order given by mode.
// The input is never modified and ties keep their original relative order.
func (p *Projector) Project(records []catalog.BookRecord, mode SortMode) []catalog.BookRecord {
	out := slices.Clone(records)
	if out == nil {
		out = []catalog.BookRecord{}
	}

	switch mode {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b catalog.BookRecord) int {
			return cmp.Compare(yearOr(b, missingYearNewest), yearOr(a, missingYearNewest))
		})
	case SortOldest:
		slices.SortStableFunc(out, func(a, b catalog.BookRecord) int {
			return cmp.Compare(yearOr(a, missingYearOldest), yearOr(b, missingYearOldest))
		})
	case SortAlphabetical:
		p.mu.Lock()
		defer p.mu.Unlock()
		slices.SortStableFunc(out, func(a, b catalog.BookRecord) int {
			return p.collator.CompareString(a.SortTitle(), b.SortTitle())
		})
	case SortRelevance:
	}

	return out
}

func yearOr(b catalog.BookRecord, fallback int) int {
	if year, ok := b.Year(); ok {
		return year
	}
	return fallback
}
