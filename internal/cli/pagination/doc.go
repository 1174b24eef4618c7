// Package pagination provides page-count flags, sort flag parsing, and
// result metadata for the CLI commands that walk Open Library result pages.
//
// Open Library pages are fixed at ten records, so the only knob a user turns
// is how many pages to fetch (--pages). PaginationMeta describes what was
// fetched relative to the server-reported total and is embedded in JSON and
// YAML output.
package pagination
