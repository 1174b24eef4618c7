// Package catalog defines the book records returned by a catalog search.
//
// A BookRecord is decoded once from the remote search response and never
// modified afterwards. Optional upstream fields are pointers so that "missing"
// can be told apart from a zero value (a book first published in year 0 does
// not exist, but an absent title and an empty title sort the same way).
package catalog
