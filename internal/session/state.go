package session

import "fmt"

// State is the controller's position in the search lifecycle.
type State int

const (
	// StateIdle means no query has been submitted.
	StateIdle State = iota
	// StateSearching means a first-page fetch is in flight.
	StateSearching
	// StateReady means results are displayed and nothing is in flight.
	StateReady
	// StateLoadingMore means a follow-up page fetch is in flight.
	StateLoadingMore
	// StateEmpty means the query succeeded with zero results.
	StateEmpty
	// StateError means the last fetch failed.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateReady:
		return "ready"
	case StateLoadingMore:
		return "loading-more"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loading reports whether a fetch is in flight in this state.
func (s State) Loading() bool {
	return s == StateSearching || s == StateLoadingMore
}
