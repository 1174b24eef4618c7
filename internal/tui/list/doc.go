// Package listview provides a virtually scrolled list for Bubble Tea.
//
// Only the rows inside the viewport (plus a small buffer) are rendered, so a
// result set that keeps growing through "load more" stays cheap to draw.
// Items can be replaced in place with SetItems, which keeps the cursor on the
// same index when possible.
package listview
