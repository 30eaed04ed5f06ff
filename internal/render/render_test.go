// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"writeups/internal/explore"
	"writeups/internal/models"
)

func intPtr(n int) *int { return &n }

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	rn, err := New(Site{Name: "Writeups", URL: "https://writeups.example.com", AssetVersion: "v1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rn
}

func render(t *testing.T, rn *Renderer, name string, page *PageData) string {
	t.Helper()
	out, err := rn.Render(name, page)
	if err != nil {
		t.Fatalf("Render(%s): %v", name, err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestNew(t *testing.T) {
	rn := testRenderer(t)
	for _, name := range []string{"posts", "categories", "category", "post", "not_found"} {
		if !rn.Has(name) {
			t.Errorf("expected template %q to be parsed", name)
		}
	}
	for _, name := range []string{"base", "partials"} {
		if rn.Has(name) {
			t.Errorf("%s.html should not be registered as a page", name)
		}
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	rn := testRenderer(t)
	if _, err := rn.Render("admin", rn.NewPage("x", "", nil)); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRenderArchive(t *testing.T) {
	rn := testRenderer(t)
	web := models.Category{
		ID: "1", Title: "Web", Slug: "web", Icon: models.IconNetwork, Badge: "Core",
		Description: "All **things** HTTP", Featured: true, Count: 2,
		Posts: []models.PostSummary{
			{ID: "p1", Title: "SQLi", Slug: "sqli", PublishedAt: "2026-03-04T10:00:00Z", ReadTime: intPtr(3)},
			{ID: "p2", Title: "", Slug: "", CreatedAt: "not a date"},
		},
	}
	q := explore.Query{Sort: explore.SortNewest, View: explore.ViewGrid}
	view := ArchiveView{
		TotalPosts:    2,
		CategoryCount: 1,
		Featured:      []models.Category{web},
		Categories:    []models.Category{web},
		Explorer:      NewExplorer(q, CategorySortLabels, 1, "categories"),
	}

	html := render(t, rn, "posts", rn.NewPage("Posts", "posts", view))
	assertContains(t, html,
		"<title>Posts | Writeups</title>",
		`href="/categories/web"`,
		`id="category-web"`,
		`href="#category-web"`,
		"All things HTTP",
		"2 posts",
		`id="post-sqli"`,
		`id="post-p2"`,
		"Mar 4, 2026",
		"3 min read",
		"Untitled",
		`<option value="newest" selected>Newest updates</option>`,
		`href="/static/site.css?v1"`,
		`aria-current="page">Posts`,
	)
	if strings.Contains(html, "No categories") {
		t.Error("empty-state message shown with results")
	}
}

func TestRenderArchiveNoMatches(t *testing.T) {
	rn := testRenderer(t)
	q := explore.Query{Text: "zzz", Sort: explore.SortAZ, View: explore.ViewGrid}
	view := ArchiveView{Explorer: NewExplorer(q, CategorySortLabels, 0, "categories")}

	html := render(t, rn, "posts", rn.NewPage("Posts", "posts", view))
	assertContains(t, html,
		"No categories match your search.",
		`value="zzz"`,
		`<option value="az" selected>A-Z</option>`,
	)
}

func TestRenderCategoriesHidesFeaturedWhileSearching(t *testing.T) {
	rn := testRenderer(t)
	cat := models.Category{ID: "1", Title: "Crypto", Slug: "crypto", Count: 1}

	idle := CategoriesView{
		CategoryCount: 1, Tagged: 1,
		Featured:   []models.Category{cat},
		Categories: []models.Category{cat},
		Explorer:   NewExplorer(explore.Query{Sort: explore.SortPopular}, CategorySortLabels, 1, "categories"),
	}
	html := render(t, rn, "categories", rn.NewPage("Categories", "categories", idle))
	assertContains(t, html, "Top categories by post count", "Posts tagged", "1 post<")

	searching := idle
	searching.Featured = nil
	searching.Explorer = NewExplorer(explore.Query{Text: "cry", Sort: explore.SortPopular}, CategorySortLabels, 1, "categories")
	html = render(t, rn, "categories", rn.NewPage("Categories", "categories", searching))
	if strings.Contains(html, "Top categories by post count") {
		t.Error("featured panel rendered while a search is active")
	}
}

func TestRenderCategoryPage(t *testing.T) {
	rn := testRenderer(t)
	posts := []models.PostSummary{
		{ID: "a", Title: "First", Slug: "first", PublishedAt: "2026-01-02T00:00:00Z"},
		{ID: "b", Title: "Second", Slug: "second"},
	}
	view := CategoryView{
		Category:    models.Category{ID: "c", Title: "SQL Injection", Slug: "sqli", Icon: models.IconDatabase},
		Description: "<p>desc</p>",
		Breadcrumbs: []models.Breadcrumb{{Label: "Web", Href: "/categories/web"}, {Label: "SQL Injection"}},
		Related:     []models.Category{{ID: "x", Title: "XSS", Slug: "xss"}},
		TotalPosts:  2,
		Posts:       posts,
		Jump:        posts[:1],
		Explorer:    NewExplorer(explore.Query{Sort: explore.SortNewest, View: explore.ViewList}, PostSortLabels, 2, "posts"),
	}

	html := render(t, rn, "category", rn.NewPage("SQL Injection", "categories", view))
	assertContains(t, html,
		"<h1>SQL Injection</h1>",
		"<p>desc</p>",
		`<a class="pill" href="/categories/web">Web</a>`,
		`aria-current="page">SQL Injection</span>`,
		"Related categories",
		`href="/categories/xss"`,
		`href="#post-first"`,
		`class="post-list"`,
		`href="/categories/sqli?sort=newest&amp;view=list"`,
		`href="/categories/sqli?sort=newest"`,
	)
}

func TestRenderPost(t *testing.T) {
	rn := testRenderer(t)
	view := PostView{
		Post:       models.Post{ID: "1", Title: "ret2libc", Slug: "ret2libc", CreatedAt: "2026-02-01T00:00:00Z"},
		Body:       "<p>body</p>",
		ReadTime:   intPtr(1),
		Categories: []models.Category{{Title: "Binary", Slug: "binary", Icon: models.IconBinary}},
	}
	html := render(t, rn, "post", rn.NewPage("ret2libc", "posts", view))
	assertContains(t, html, "<h1>ret2libc</h1>", "<p>body</p>", "Feb 1, 2026", "1 min read", `href="/categories/binary"`)
}

func TestPageWritesStatus(t *testing.T) {
	rn := testRenderer(t)
	rec := httptest.NewRecorder()
	rn.Page(rec, http.StatusNotFound, "not_found", rn.NewPage("Not found", "", NotFoundView{What: "Category", Slug: "nope"}))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type: %q", ct)
	}
	assertContains(t, rec.Body.String(), "Category not found", "(nope)")
}

func TestFuncs(t *testing.T) {
	if got := plural(1, "post"); got != "1 post" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(0, "post"); got != "0 posts" {
		t.Errorf("plural(0) = %q", got)
	}
	if got := formatDate("", "2026-12-25T08:00:00Z"); got != "Dec 25, 2026" {
		t.Errorf("formatDate fallback = %q", got)
	}
	if got := formatDate("garbage", ""); got != "" {
		t.Errorf("formatDate(garbage) = %q", got)
	}
	if got := minutes(nil); got != 0 {
		t.Errorf("minutes(nil) = %d", got)
	}

	q := explore.Query{Text: "sql map", Sort: explore.SortPopular, View: explore.ViewGrid}
	if got := withParam("/categories/web", q, "view", "list"); got != "/categories/web?q=sql+map&sort=popular&view=list" {
		t.Errorf("withParam = %q", got)
	}
	if got := withParam("/posts", explore.Query{}, "q", ""); got != "/posts" {
		t.Errorf("withParam empty = %q", got)
	}

	if _, err := dict("a"); err == nil {
		t.Error("dict with odd args should fail")
	}
	if m, err := dict("a", 1, "b", true); err != nil || m["a"] != 1 || m["b"] != true {
		t.Errorf("dict = %v, %v", m, err)
	}

	for _, icon := range append(models.Icons, "unknown") {
		if svg := iconSVG(icon); !strings.Contains(string(svg), "<path") && !strings.Contains(string(svg), "<rect") && !strings.Contains(string(svg), "<polyline") && !strings.Contains(string(svg), "<ellipse") {
			t.Errorf("icon %q has no shapes: %s", icon, svg)
		}
	}
}

func TestNewPageYear(t *testing.T) {
	rn := testRenderer(t)
	if page := rn.NewPage("t", "s", nil); page.Year != time.Now().Year() || page.Site.Name != "Writeups" {
		t.Errorf("NewPage: %+v", page)
	}
}
