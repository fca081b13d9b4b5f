// Package pagination implements the offset/limit page metadata shared by
// the list endpoints.
package pagination

import "strconv"

const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// Page describes the window of a list response. Limit is the number of
// items actually returned, not the requested page size. Next and Previous
// are opaque numeric cursors computed from the requested window; they are
// not validated against data bounds, so callers detect end-of-data by
// observing fewer items than they asked for.
type Page struct {
	Next     string `json:"next"`
	Limit    int    `json:"limit"`
	Previous string `json:"previous"`
}

// NewPage computes page metadata for a window request that returned
// count items.
func NewPage(offset, limit, count int) Page {
	previous := offset - limit
	if previous < 0 {
		previous = 0
	}

	return Page{
		Next:     strconv.Itoa(offset + limit),
		Limit:    count,
		Previous: strconv.Itoa(previous),
	}
}
