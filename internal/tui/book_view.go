package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/libris/internal/catalog"
)

// Row layout.
const (
	colWidthTitle   = 44
	colWidthAuthors = 28
	colWidthYear    = 4
	truncateSuffix  = "..."
	minCardWidth    = 40
	cardWidthMargin = 4
)

// missingYear is shown when a record has no publication year.
const missingYear = "----"

// truncateText shortens s to at most n runes, marking the cut with "...".
func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= len(truncateSuffix) {
		return string(r[:n])
	}
	return string(r[:n-len(truncateSuffix)]) + truncateSuffix
}

func yearText(b catalog.BookRecord) string {
	if y, ok := b.Year(); ok {
		return strconv.Itoa(y)
	}
	return missingYear
}

// FormatBookRow renders a record as a fixed-width, unstyled line.
func FormatBookRow(b catalog.BookRecord) string {
	return fmt.Sprintf("%-*s  %-*s  %*s",
		colWidthTitle, truncateText(b.DisplayTitle(), colWidthTitle),
		colWidthAuthors, truncateText(b.DisplayAuthors(), colWidthAuthors),
		colWidthYear, yearText(b),
	)
}

// RenderBookRow is the list row renderer; the cursor row is highlighted.
func RenderBookRow(b catalog.BookRecord, selected bool) string {
	row := FormatBookRow(b)
	if selected {
		return SelectedStyle.Render(row)
	}
	return row
}

// RenderBookCard renders the detail card for one record.
func RenderBookCard(b catalog.BookRecord, coversURL string, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(b.DisplayTitle()))
	content.WriteString("\n")

	field := func(label, value string) {
		content.WriteString(LabelStyle.Render(fmt.Sprintf("%-9s", label)))
		content.WriteString(ValueStyle.Render(value))
		content.WriteString("\n")
	}

	field("Authors", b.DisplayAuthors())
	if y, ok := b.Year(); ok {
		field("Year", strconv.Itoa(y))
	} else {
		field("Year", "unknown")
	}
	if b.Key != "" {
		field("Key", b.Key)
	}
	if b.HasCover() {
		field("Cover", b.CoverURLFrom(coversURL, catalog.CoverLarge))
	} else {
		content.WriteString(MutedStyle.Render("No cover image"))
		content.WriteString("\n")
	}

	style := CardStyle
	if width > minCardWidth {
		style = style.Width(width - cardWidthMargin)
	}
	return style.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderResultsStyled renders a titled, coloured result listing for
// non-interactive terminals.
func RenderResultsStyled(query, status string, records []catalog.BookRecord, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(fmt.Sprintf("Results for %q", query)))
	content.WriteString("\n")

	headerRow := fmt.Sprintf("%-*s  %-*s  %*s",
		colWidthTitle, "TITLE", colWidthAuthors, "AUTHORS", colWidthYear, "YEAR")
	content.WriteString(LabelStyle.Render(headerRow))
	content.WriteString("\n")

	for _, b := range records {
		content.WriteString(FormatBookRow(b))
		content.WriteString("\n")
	}

	if status != "" {
		content.WriteString("\n")
		content.WriteString(StatusStyle.Render(status))
		content.WriteString("\n")
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(content.String()) + "\n"
}
