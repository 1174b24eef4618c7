package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/libris/internal/session"
)

// Page count limits.
const (
	DefaultPages = 1
	MinPages     = 1
	MaxPages     = 50
)

// Validation errors.
var (
	ErrInvalidPages = fmt.Errorf("pages must be between %d and %d", MinPages, MaxPages)
	ErrInvalidSort  = errors.New("invalid sort mode")
)

// PaginationParams holds the page-walking flags of a command.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Pages is the number of result pages to fetch per query.
	Pages int

	// Sort is the raw --sort value; empty means the configured default.
	Sort string
}

// NewPaginationParams creates params with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{Pages: DefaultPages}
}

// Validate checks the page count and sort value.
func (p PaginationParams) Validate() error {
	if p.Pages < MinPages || p.Pages > MaxPages {
		return fmt.Errorf("%w, got %d", ErrInvalidPages, p.Pages)
	}
	if p.Sort != "" {
		if _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// SortMode resolves the --sort value, using fallback when it was not given.
func (p PaginationParams) SortMode(fallback session.SortMode) (session.SortMode, error) {
	if p.Sort == "" {
		return fallback, nil
	}
	return ParseSort(p.Sort)
}

// ParseSort parses a --sort value. The error lists the accepted modes.
func ParseSort(s string) (session.SortMode, error) {
	mode, err := session.ParseSortMode(s)
	if err != nil {
		return session.SortRelevance, fmt.Errorf("%w %q: valid modes are %s",
			ErrInvalidSort, s, strings.Join(ValidSortNames(), ", "))
	}
	return mode, nil
}

// ValidSortNames returns the canonical sort mode names.
func ValidSortNames() []string {
	modes := session.SortModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}
