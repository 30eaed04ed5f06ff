// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the public pages: the posts archive, the
// categories index, single categories and single posts.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"writeups/internal/archive"
	"writeups/internal/cache"
	"writeups/internal/explore"
	"writeups/internal/markdown"
	"writeups/internal/models"
	"writeups/internal/render"
	"writeups/internal/richtext"
	"writeups/internal/store"
)

// PageCache is the subset of cache.PageCache the handlers use.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
}

var _ PageCache = (*cache.PageCache)(nil)

// categoryPostsLimit caps the posts loaded for one category page.
const categoryPostsLimit = 50

// Field selections per surface. Only what the page shows is loaded.
var (
	summaryPostFields  = []string{"title", "slug", "categories", "meta", "content", "publishedAt", "createdAt"}
	countPostFields    = []string{"categories", "publishedAt", "createdAt"}
	listCatFields      = []string{"title", "slug", "description", "icon", "badge", "featured", "sortOrder"}
	treeCatFields      = []string{"title", "slug", "icon", "badge", "parent"}
	postCategoryFields = []string{"title", "slug", "icon"}
)

// Public groups handlers for the public-facing site. Default-state pages
// go through the Valkey page cache; everything else renders per request
// against a request-scoped repository cache.
type Public struct {
	source   store.Source
	pages    PageCache
	renderer *render.Renderer
}

// NewPublic creates a new Public handler group. pages may be nil to
// disable page caching.
func NewPublic(source store.Source, pages PageCache, renderer *render.Renderer) *Public {
	return &Public{source: source, pages: pages, renderer: renderer}
}

// PostsArchive renders /posts: every category that has posts, each with its
// posts newest first, behind a category search and sort.
func (p *Public) PostsArchive(w http.ResponseWriter, r *http.Request) {
	q := p.query(r, explore.SortNewest)
	cacheable := q.IsDefault(explore.SortNewest)
	if cacheable && p.serveCached(w, r, cache.PostsKey()) {
		return
	}

	ctx := r.Context()
	src := store.NewRequestCache(p.source)
	defer src.Close()

	categories, err := src.Categories(ctx, store.Query{Sort: "title", Fields: listCatFields})
	if err != nil {
		p.serverError(w, "list categories failed", err)
		return
	}
	posts, err := src.Posts(ctx, store.Query{Sort: "-publishedAt", Fields: summaryPostFields})
	if err != nil {
		p.serverError(w, "list posts failed", err)
		return
	}

	aggregated := archive.Aggregate(posts, categories)
	shown := explore.Explore(aggregated, explore.CategorySchema, q)

	view := render.ArchiveView{
		TotalPosts:    len(posts),
		CategoryCount: len(aggregated),
		Featured:      explore.FeaturedCategories(aggregated, explore.ArchiveFeaturedLimit),
		Categories:    shown,
		Explorer:      render.NewExplorer(q, render.CategorySortLabels, len(shown), "categories"),
	}
	page := p.renderer.NewPage("Posts", "posts", view)
	p.respond(w, r, "posts", page, cache.PostsKey(), cacheable)
}

// CategoriesIndex renders /categories: counted categories, the top three by
// post count while no search is active, and a searchable grid.
func (p *Public) CategoriesIndex(w http.ResponseWriter, r *http.Request) {
	q := p.query(r, explore.SortPopular)
	cacheable := q.IsDefault(explore.SortPopular)
	if cacheable && p.serveCached(w, r, cache.CategoriesKey()) {
		return
	}

	ctx := r.Context()
	src := store.NewRequestCache(p.source)
	defer src.Close()

	categories, err := src.Categories(ctx, store.Query{Sort: "title", Fields: listCatFields})
	if err != nil {
		p.serverError(w, "list categories failed", err)
		return
	}
	posts, err := src.Posts(ctx, store.Query{Fields: countPostFields})
	if err != nil {
		p.serverError(w, "list posts failed", err)
		return
	}

	counted := archive.Aggregate(posts, categories)
	shown := explore.Explore(counted, explore.CategorySchema, q)

	var featured []models.Category
	if !q.Active() {
		popular := explore.Sort(counted, explore.CategorySchema, explore.SortPopular)
		featured = explore.Top(popular, explore.FeaturedLimit)
	}

	view := render.CategoriesView{
		CategoryCount: len(counted),
		Tagged:        archive.TaggedTotal(counted),
		Featured:      featured,
		Categories:    shown,
		Explorer:      render.NewExplorer(q, render.CategorySortLabels, len(shown), "categories"),
	}
	page := p.renderer.NewPage("Categories", "categories", view)
	p.respond(w, r, "categories", page, cache.CategoriesKey(), cacheable)
}

// Category renders /categories/{slug}: the category header, its breadcrumb
// trail, sibling categories and a post explorer.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(chi.URLParam(r, "slug"))
	if !validSlug(slug) {
		p.notFound(w, "Category", slug)
		return
	}
	q := p.query(r, explore.SortNewest)
	cacheable := q.IsDefault(explore.SortNewest)
	key := cache.CategoryKey(slug)
	if cacheable && p.serveCached(w, r, key) {
		return
	}

	ctx := r.Context()
	src := store.NewRequestCache(p.source)
	defer src.Close()

	category, err := store.CategoryBySlug(ctx, src, slug)
	if err != nil {
		p.serverError(w, "find category by slug failed", err, "slug", slug)
		return
	}
	if category == nil {
		p.notFound(w, "Category", slug)
		return
	}

	posts, err := src.Posts(ctx, store.Query{
		CategoryID: category.ID,
		Sort:       "-publishedAt",
		Fields:     summaryPostFields,
		Limit:      categoryPostsLimit,
	})
	if err != nil {
		p.serverError(w, "list category posts failed", err, "slug", slug)
		return
	}
	tree, err := src.Categories(ctx, store.Query{Sort: "title", Fields: treeCatFields})
	if err != nil {
		p.serverError(w, "list category tree failed", err)
		return
	}

	description, err := markdown.ToHTML(category.Description)
	if err != nil {
		slog.Warn("category description render failed", "slug", slug, "error", err)
		description = ""
	}

	summaries := archive.SummarizeAll(posts)
	shown := explore.Explore(summaries, explore.SummarySchema, q)

	view := render.CategoryView{
		Category:    *category,
		Description: description,
		Breadcrumbs: archive.Breadcrumbs(*category, tree),
		Related:     archive.Related(*category, tree, explore.RelatedLimit),
		TotalPosts:  len(summaries),
		Posts:       shown,
		Jump:        explore.Top(shown, explore.JumpLimit),
		Explorer:    render.NewExplorer(q, render.PostSortLabels, len(shown), "posts"),
	}
	page := p.renderer.NewPage(category.Title+" | Categories", "categories", view)
	page.Description = markdown.Plain(category.Description)
	p.respond(w, r, "category", page, key, cacheable)
}

// Post renders /posts/{slug} from its rich-text document.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(chi.URLParam(r, "slug"))
	if !validSlug(slug) {
		p.notFound(w, "Post", slug)
		return
	}
	key := cache.PostKey(slug)
	if p.serveCached(w, r, key) {
		return
	}

	ctx := r.Context()
	src := store.NewRequestCache(p.source)
	defer src.Close()

	post, err := store.PostBySlug(ctx, src, slug, false)
	if err != nil {
		p.serverError(w, "find post by slug failed", err, "slug", slug)
		return
	}
	if post == nil {
		p.notFound(w, "Post", slug)
		return
	}

	all, err := src.Categories(ctx, store.Query{Fields: postCategoryFields})
	if err != nil {
		p.serverError(w, "list categories failed", err)
		return
	}
	byID := make(map[string]models.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	var categories []models.Category
	for _, id := range archive.CategoryIDs(post.Categories) {
		if c, ok := byID[id]; ok {
			categories = append(categories, c)
		}
	}

	doc := richtext.Parse(post.Content)
	view := render.PostView{
		Post:       *post,
		Body:       richtext.HTML(doc),
		ReadTime:   richtext.MinutesFor(richtext.WordCount(richtext.Text(doc))),
		Categories: categories,
	}
	page := p.renderer.NewPage(post.Title, "posts", view)
	page.Description = post.Meta.Description
	p.respond(w, r, "post", page, key, true)
}

// NotFound renders the generic 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.notFound(w, "", "")
}

// query reads the explorer state from the request URL.
func (p *Public) query(r *http.Request, defaultSort explore.SortMode) explore.Query {
	q := explore.QueryFromValues(r.URL.Query(), defaultSort)
	q.Text = clampQuery(q.Text)
	return q
}

// serveCached writes a cached page if there is one.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if p.pages == nil {
		return false
	}
	body, ok := p.pages.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("X-Cache", "HIT")
	render.Write(w, http.StatusOK, body)
	return true
}

// respond renders a page, stores it in the page cache when cacheable and
// writes it.
func (p *Public) respond(w http.ResponseWriter, r *http.Request, name string, page *render.PageData, key string, cacheable bool) {
	body, err := p.renderer.Render(name, page)
	if err != nil {
		p.serverError(w, "render page failed", err, "template", name)
		return
	}
	if cacheable && p.pages != nil {
		p.pages.Set(r.Context(), key, body)
		w.Header().Set("X-Cache", "MISS")
	}
	render.Write(w, http.StatusOK, body)
}

func (p *Public) notFound(w http.ResponseWriter, what, slug string) {
	page := p.renderer.NewPage("Not found", "", render.NotFoundView{What: what, Slug: slug})
	p.renderer.Page(w, http.StatusNotFound, "not_found", page)
}

func (p *Public) serverError(w http.ResponseWriter, msg string, err error, args ...any) {
	slog.Error(msg, append([]any{"error", err}, args...)...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
