// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package archive derives the category archive from the flat post and
// category collections: per-category counts, latest activity and post
// lists, plus the breadcrumb and related-category trails. Every function
// is pure; inputs are never modified.
package archive

import (
	"slices"
	"time"

	"writeups/internal/models"
	"writeups/internal/richtext"
)

// UntitledCategory labels a category with neither title nor slug.
const UntitledCategory = "Untitled category"

// CategoryIDs normalizes a post's relationship references to identifiers.
// Unresolvable references are dropped.
func CategoryIDs(refs []models.Ref) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if id, ok := ref.ID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Summarize projects a post into its listing form, computing the read time
// from the rich-text body.
func Summarize(p models.Post) models.PostSummary {
	return models.PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Categories:  slices.Clone(p.Categories),
		Meta:        p.Meta,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		ReadTime:    richtext.ReadTime(p.Content),
	}
}

// SummarizeAll projects posts in order.
func SummarizeAll(posts []models.Post) []models.PostSummary {
	out := make([]models.PostSummary, len(posts))
	for i, p := range posts {
		out[i] = Summarize(p)
	}
	return out
}

// seed copies a category's static fields into a fresh accumulator.
func seed(c models.Category) models.Category {
	acc := models.Category{
		ID:           c.ID,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Icon:         c.Icon.Normalize(),
		Badge:        c.Badge,
		Featured:     c.Featured,
		SortOrder:    c.SortOrder,
		LatestPostAt: Epoch,
	}
	if acc.Title == "" {
		acc.Title = c.Slug
	}
	if acc.Title == "" {
		acc.Title = UntitledCategory
	}
	if c.Parent != nil {
		parent := *c.Parent
		acc.Parent = &parent
	}
	return acc
}

// Aggregate builds the derived category index. Categories keep their input
// order; each one's posts are sorted newest first with ties left in post
// input order. Categories no post references are left out, as are
// references to categories missing from the input.
func Aggregate(posts []models.Post, categories []models.Category) []models.Category {
	index := make(map[string]int, len(categories))
	accs := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if c.ID == "" {
			continue
		}
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = len(accs)
		accs = append(accs, seed(c))
	}

	dates := make([][]time.Time, len(accs))
	for _, p := range posts {
		var (
			summary   models.PostSummary
			date      time.Time
			projected bool
		)
		for _, id := range CategoryIDs(p.Categories) {
			i, ok := index[id]
			if !ok {
				continue
			}
			if !projected {
				summary, date, projected = Summarize(p), EffectiveDate(p), true
			}
			accs[i].Posts = append(accs[i].Posts, summary)
			dates[i] = append(dates[i], date)
			accs[i].Count++
			if date.After(accs[i].LatestPostAt) {
				accs[i].LatestPostAt = date
			}
		}
	}

	result := make([]models.Category, 0, len(accs))
	for i, acc := range accs {
		if acc.Count == 0 {
			continue
		}
		acc.Posts = sortNewestFirst(acc.Posts, dates[i])
		result = append(result, acc)
	}
	return result
}

// sortNewestFirst stably orders posts by descending date. dates[i] is the
// effective date of posts[i].
func sortNewestFirst(posts []models.PostSummary, dates []time.Time) []models.PostSummary {
	order := make([]int, len(posts))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return dates[b].Compare(dates[a])
	})

	sorted := make([]models.PostSummary, len(posts))
	for i, j := range order {
		sorted[i] = posts[j]
	}
	return sorted
}

// TaggedTotal sums the post counts across categories. A post filed under
// two categories counts twice.
func TaggedTotal(categories []models.Category) int {
	total := 0
	for _, c := range categories {
		total += c.Count
	}
	return total
}
