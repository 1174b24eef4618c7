// Package tui renders search results for terminals: the interactive Bubble Tea
// search screen, styled listings for non-interactive terminals, and output mode
// detection.
package tui
