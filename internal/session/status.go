package session

import "fmt"

// User-facing status messages.
const (
	StatusEnterTerm      = "Please enter a search term!"
	StatusEditPrompt     = "Enter a search term to view results."
	StatusLoading        = "Loading books..."
	StatusLoadingMore    = "Loading more results..."
	StatusNoResults      = "No results found. Try a different search term!"
	StatusSearchFailed   = "Oh no! Something went wrong! Please try again."
	StatusLoadMoreFailed = "Something went wrong!"
)

// CountStatus formats the result count line. When the server reported no
// total, the shown count stands in for it.
func CountStatus(shown, total int, query string) string {
	if total == 0 {
		total = shown
	}
	label := "results"
	if total == 1 {
		label = "result"
	}
	return fmt.Sprintf("Showing %d of %d %s for \"%s\".", shown, total, label, query)
}
