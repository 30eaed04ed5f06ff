// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"html/template"

	"writeups/internal/explore"
	"writeups/internal/models"
)

// Option is one entry of a <select> control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Explorer is the state shared by every search/sort control bar.
type Explorer struct {
	Query   explore.Query
	Sort    []Option
	Shown   int
	Message string // empty when there are results
}

// NewExplorer builds the control state for q. labels lists the sort modes
// in display order.
func NewExplorer(q explore.Query, labels []Option, shown int, noun string) Explorer {
	opts := make([]Option, len(labels))
	for i, l := range labels {
		opts[i] = Option{Value: l.Value, Label: l.Label, Selected: l.Value == string(q.Sort)}
	}
	return Explorer{
		Query:   q,
		Sort:    opts,
		Shown:   shown,
		Message: explore.Outcome(shown, q).Message(noun),
	}
}

// Sort labels per surface.
var (
	CategorySortLabels = []Option{
		{Value: string(explore.SortNewest), Label: "Newest updates"},
		{Value: string(explore.SortPopular), Label: "Most posts"},
		{Value: string(explore.SortAZ), Label: "A-Z"},
	}
	PostSortLabels = []Option{
		{Value: string(explore.SortNewest), Label: "Newest"},
		{Value: string(explore.SortPopular), Label: "Popular"},
		{Value: string(explore.SortAZ), Label: "A-Z"},
	}
)

// ArchiveView is the posts archive: every category with its posts.
type ArchiveView struct {
	TotalPosts    int
	CategoryCount int
	Featured      []models.Category
	Categories    []models.Category
	Explorer      Explorer
}

// CategoriesView is the categories index.
type CategoriesView struct {
	CategoryCount int
	Tagged        int
	Featured      []models.Category // empty while a search is active
	Categories    []models.Category
	Explorer      Explorer
}

// CategoryView is a single category with its post explorer.
type CategoryView struct {
	Category    models.Category
	Description template.HTML
	Breadcrumbs []models.Breadcrumb
	Related     []models.Category
	TotalPosts  int
	Posts       []models.PostSummary
	Jump        []models.PostSummary
	Explorer    Explorer
}

// PostView is a single post.
type PostView struct {
	Post       models.Post
	Body       template.HTML
	ReadTime   *int
	Categories []models.Category
}

// NotFoundView is shown for unknown slugs.
type NotFoundView struct {
	What string // "category" or "post"
	Slug string
}
