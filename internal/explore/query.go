// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package explore

import (
	"net/url"
	"strings"
)

// SortMode selects the ordering of an explorer listing.
type SortMode string

const (
	SortNewest  SortMode = "newest"
	SortPopular SortMode = "popular"
	SortAZ      SortMode = "az"
)

// ParseSort reads a sort mode, falling back to fallback for anything else.
func ParseSort(s string, fallback SortMode) SortMode {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case SortNewest, SortPopular, SortAZ:
		return mode
	}
	return fallback
}

// ViewMode is the layout of a post listing. It never affects ordering.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseView reads a view mode, defaulting to grid.
func ParseView(s string) ViewMode {
	if ViewMode(strings.ToLower(strings.TrimSpace(s))) == ViewList {
		return ViewList
	}
	return ViewGrid
}

// Query is the live state of an explorer: the search box and controls.
type Query struct {
	Text string
	Sort SortMode
	View ViewMode
}

// QueryFromValues reads the explorer state from URL query parameters
// q, sort and view.
func QueryFromValues(v url.Values, defaultSort SortMode) Query {
	return Query{
		Text: v.Get("q"),
		Sort: ParseSort(v.Get("sort"), defaultSort),
		View: ParseView(v.Get("view")),
	}
}

// Needle returns the normalized search term; empty means no filtering.
func (q Query) Needle() string {
	return strings.ToLower(strings.TrimSpace(q.Text))
}

// Active reports whether a search term is set.
func (q Query) Active() bool {
	return q.Needle() != ""
}

// IsDefault reports whether the query is the untouched initial state for
// a surface whose default sort is defaultSort.
func (q Query) IsDefault(defaultSort SortMode) bool {
	return !q.Active() && q.Sort == defaultSort && q.View == ViewGrid
}
