// Package openlibrary is a small client for the Open Library search API.
//
// FetchPage issues exactly one GET against /search.json per call and returns a
// single fixed-size page. It never retries and never caches; a failed call is
// reported as a *FetchError and the caller decides whether to try again.
package openlibrary
