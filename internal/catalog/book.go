package catalog

import (
	"fmt"
	"strings"
)

// Display defaults for missing fields.
const (
	UntitledTitle = "Untitled"
	UnknownAuthor = "Unknown author"
)

// Cover image sizes understood by the covers service.
const (
	CoverSmall  = "S"
	CoverMedium = "M"
	CoverLarge  = "L"
)

// DefaultCoversURL is the base URL for cover images.
const DefaultCoversURL = "https://covers.openlibrary.org"

// BookRecord is one catalog entry.
type BookRecord struct {
	// Key is the work key (e.g. "/works/OL45804W"); may be empty.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	Title            *string  `json:"title,omitempty"              yaml:"title,omitempty"`
	AuthorNames      []string `json:"author_name,omitempty"        yaml:"author_name,omitempty"`
	FirstPublishYear *int     `json:"first_publish_year,omitempty" yaml:"first_publish_year,omitempty"`
	CoverID          *int     `json:"cover_i,omitempty"            yaml:"cover_i,omitempty"`
}

// DisplayTitle returns the title, or UntitledTitle when absent or blank.
func (b BookRecord) DisplayTitle() string {
	if b.Title == nil || strings.TrimSpace(*b.Title) == "" {
		return UntitledTitle
	}
	return *b.Title
}

// SortTitle returns the raw title, or "" when absent.
func (b BookRecord) SortTitle() string {
	if b.Title == nil {
		return ""
	}
	return *b.Title
}

// DisplayAuthors joins the author names with ", ", or returns UnknownAuthor.
func (b BookRecord) DisplayAuthors() string {
	if len(b.AuthorNames) == 0 {
		return UnknownAuthor
	}
	return strings.Join(b.AuthorNames, ", ")
}

// Year returns the first publish year and whether it is known.
func (b BookRecord) Year() (int, bool) {
	if b.FirstPublishYear == nil {
		return 0, false
	}
	return *b.FirstPublishYear, true
}

// HasCover reports whether the record carries a cover identifier.
func (b BookRecord) HasCover() bool {
	return b.CoverID != nil && *b.CoverID > 0
}

// CoverURL derives the cover image URL for the given size using DefaultCoversURL.
// It returns "" when the record has no cover.
func (b BookRecord) CoverURL(size string) string {
	return b.CoverURLFrom(DefaultCoversURL, size)
}

// CoverURLFrom derives the cover image URL against a custom covers base URL.
func (b BookRecord) CoverURLFrom(baseURL, size string) string {
	if !b.HasCover() {
		return ""
	}
	switch size {
	case CoverSmall, CoverMedium, CoverLarge:
	default:
		size = CoverLarge
	}
	return fmt.Sprintf("%s/b/id/%d-%s.jpg", strings.TrimRight(baseURL, "/"), *b.CoverID, size)
}

// Summary renders the record on a single line: `Title - Authors (Year)`.
func (b BookRecord) Summary() string {
	s := b.DisplayTitle() + " - " + b.DisplayAuthors()
	if year, ok := b.Year(); ok {
		s += fmt.Sprintf(" (%d)", year)
	}
	return s
}

// StringPtr returns a pointer to s. Handy for building records in tests and fixtures.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
