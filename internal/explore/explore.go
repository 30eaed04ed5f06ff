// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package explore filters and orders already-fetched post and category
// lists for display: free-text search, the newest/popular/A-Z sort modes,
// bounded "top" subsets and stable in-page anchors. All functions are pure
// and cheap enough to run on every request without caching.
package explore

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Per-surface caps for bounded subsets. They are applied after filtering
// and sorting, never before.
const (
	JumpLimit            = 5 // "jump to" rail on a category page
	RelatedLimit         = 6 // sibling categories under the same parent
	ArchiveFeaturedLimit = 6 // featured rail on the posts archive
	FeaturedLimit        = 3 // featured panel on the categories index
)

// Schema tells the explorer how to read one entity type.
type Schema[T any] struct {
	// Fields returns the searchable text of an item.
	Fields func(T) []string
	// Title is compared under the A-Z mode and, when TitleTieBreak is set,
	// breaks ties under newest.
	Title func(T) string
	// Date orders items under newest.
	Date func(T) time.Time
	// Weight orders items under popular (read time, post count).
	Weight func(T) int
	// TitleTieBreak orders equal dates by title instead of input order.
	TitleTieBreak bool
}

// Filter keeps the items whose searchable fields contain the query as a
// case-insensitive substring. An empty query returns items itself, so
// callers must not modify the result.
func Filter[T any](items []T, s Schema[T], q Query) []T {
	needle := q.Needle()
	if needle == "" {
		return items
	}

	var out []T
	for _, item := range items {
		for _, field := range s.Fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Sort returns a newly allocated, stably sorted copy of items.
func Sort[T any](items []T, s Schema[T], mode SortMode) []T {
	sorted := slices.Clone(items)
	col := collate.New(language.English)

	byTitle := func(a, b T) int {
		return col.CompareString(s.Title(a), s.Title(b))
	}
	newest := func(a, b T) int {
		if c := s.Date(b).Compare(s.Date(a)); c != 0 {
			return c
		}
		if s.TitleTieBreak {
			return byTitle(a, b)
		}
		return 0
	}

	switch mode {
	case SortAZ:
		slices.SortStableFunc(sorted, byTitle)
	case SortPopular:
		slices.SortStableFunc(sorted, func(a, b T) int {
			if d := s.Weight(b) - s.Weight(a); d != 0 {
				return d
			}
			return newest(a, b)
		})
	default:
		slices.SortStableFunc(sorted, newest)
	}
	return sorted
}

// Explore filters items by the query text and orders the matches by the
// query's sort mode.
func Explore[T any](items []T, s Schema[T], q Query) []T {
	return Sort(Filter(items, s, q), s, q.Sort)
}

// Top truncates an already sorted list to at most n items.
func Top[T any](sorted []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(sorted) <= n {
		return sorted
	}
	return sorted[:n]
}
