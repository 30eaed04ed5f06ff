// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package explore

import (
	"slices"
	"time"

	"writeups/internal/archive"
	"writeups/internal/models"
	"writeups/internal/richtext"
)

// SummarySchema reads post summaries: search over title, slug and meta
// description; popular means longest read.
var SummarySchema = Schema[models.PostSummary]{
	Fields: func(p models.PostSummary) []string {
		return []string{p.Title, p.Slug, p.Meta.Description}
	},
	Title: func(p models.PostSummary) string { return p.Title },
	Date:  archive.SummaryDate,
	Weight: func(p models.PostSummary) int {
		if p.ReadTime == nil {
			return 0
		}
		return *p.ReadTime
	},
}

// PostSchema reads full posts the same way as SummarySchema. The read time
// is derived from the body on every comparison, so prefer summaries for
// anything larger than a handful of posts.
var PostSchema = Schema[models.Post]{
	Fields: func(p models.Post) []string {
		return []string{p.Title, p.Slug, p.Meta.Description}
	},
	Title: func(p models.Post) string { return p.Title },
	Date:  archive.EffectiveDate,
	Weight: func(p models.Post) int {
		if rt := richtext.ReadTime(p.Content); rt != nil {
			return *rt
		}
		return 0
	},
}

// CategorySchema reads aggregated categories: search over title, slug,
// description and badge; newest means latest post, popular means most
// posts, and equal dates fall back to the title.
var CategorySchema = Schema[models.Category]{
	Fields: func(c models.Category) []string {
		return []string{c.Title, c.Slug, c.Description, c.Badge}
	},
	Title:         func(c models.Category) string { return c.Title },
	Date:          func(c models.Category) time.Time { return c.LatestPostAt },
	Weight:        func(c models.Category) int { return c.Count },
	TitleTieBreak: true,
}

// FeaturedCategories picks the categories flagged as featured, ordered by
// their manual sort order and then by post count, capped at n.
func FeaturedCategories(categories []models.Category, n int) []models.Category {
	var featured []models.Category
	for _, c := range categories {
		if c.Featured {
			featured = append(featured, c)
		}
	}
	slices.SortStableFunc(featured, func(a, b models.Category) int {
		if d := a.SortOrder - b.SortOrder; d != 0 {
			return d
		}
		return b.Count - a.Count
	})
	return Top(featured, n)
}
