// Package session implements the search session: the accumulated result set
// for the active query, the sort projection applied on display, and the
// controller that drives both from user intents.
//
// The controller owns the only mutable session value. At most one fetch is in
// flight at any time: an intent that would issue a second fetch is rejected
// with ErrBusy and leaves the session untouched. Rendering is delegated to the
// Renderer, StatusSink and LoadMoreControl collaborators, which are always
// invoked while the controller lock is held and therefore must not call back
// into the controller.
package session
