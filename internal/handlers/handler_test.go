// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory fakes for the repository and the page
// cache so the handlers can be exercised without PostgreSQL or Valkey.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/go-chi/chi/v5"

	"writeups/internal/archive"
	"writeups/internal/models"
	"writeups/internal/render"
	"writeups/internal/store"
)

// memSource answers store queries from slices, honouring the filters the
// handlers use. Sort is ignored: items come back in slice order.
type memSource struct {
	posts      []models.Post
	categories []models.Category
	calls      int
	err        error
}

func (m *memSource) Posts(_ context.Context, q store.Query) ([]models.Post, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Post
	for _, p := range m.posts {
		if !q.Draft && !p.IsPublished() {
			continue
		}
		if q.Slug != "" && p.Slug != q.Slug {
			continue
		}
		if q.CategoryID != "" && !slices.Contains(archive.CategoryIDs(p.Categories), q.CategoryID) {
			continue
		}
		if q.ExcludeID != "" && p.ID == q.ExcludeID {
			continue
		}
		out = append(out, p)
		if q.Limit > 0 && uint64(len(out)) == q.Limit {
			break
		}
	}
	return out, nil
}

func (m *memSource) Categories(_ context.Context, q store.Query) ([]models.Category, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Category
	for _, c := range m.categories {
		if q.Slug != "" && c.Slug != q.Slug {
			continue
		}
		if q.ParentID != "" {
			if pid, ok := c.ParentID(); !ok || pid != q.ParentID {
				continue
			}
		}
		if q.ExcludeID != "" && c.ID == q.ExcludeID {
			continue
		}
		out = append(out, c)
		if q.Limit > 0 && uint64(len(out)) == q.Limit {
			break
		}
	}
	return out, nil
}

// memPages is a map-backed page cache.
type memPages struct {
	pages map[string][]byte
	sets  int
}

func newMemPages() *memPages {
	return &memPages{pages: make(map[string][]byte)}
}

func (m *memPages) Get(_ context.Context, key string) ([]byte, bool) {
	b, ok := m.pages[key]
	return b, ok
}

func (m *memPages) Set(_ context.Context, key string, html []byte) {
	m.sets++
	m.pages[key] = html
}

func ref(id string) models.Ref { return models.IDRef(id) }

func embedded(id string) models.Ref {
	var r models.Ref
	if err := json.Unmarshal([]byte(`{"id":"`+id+`","title":"x"}`), &r); err != nil {
		panic(err)
	}
	return r
}

func doc(text string) json.RawMessage {
	b, _ := json.Marshal(map[string]any{
		"root": map[string]any{
			"type": "root",
			"children": []any{
				map[string]any{"type": "paragraph", "children": []any{
					map[string]any{"type": "text", "text": text},
				}},
			},
		},
	})
	return b
}

// fixtures returns a small site: a web tree with two children, a binary
// category and an empty crypto category.
func fixtures() *memSource {
	web := ref("web")
	return &memSource{
		categories: []models.Category{
			{ID: "web", Title: "Web Exploitation", Slug: "web", Icon: models.IconNetwork, Featured: true, SortOrder: 10, Description: "Everything **HTTP**."},
			{ID: "sqli", Title: "SQL Injection", Slug: "sqli", Icon: models.IconDatabase, Parent: &web},
			{ID: "xss", Title: "XSS", Slug: "xss", Icon: models.IconTerminal, Parent: &web},
			{ID: "bin", Title: "Binary", Slug: "binary", Icon: models.IconBinary, Featured: true, SortOrder: 20},
			{ID: "crypto", Title: "Crypto", Slug: "crypto", Icon: models.IconLock},
		},
		posts: []models.Post{
			{ID: "p1", Title: "Union SQLi", Slug: "union-sqli", Status: models.PostStatusPublished, Categories: []models.Ref{ref("sqli"), ref("web")}, Content: doc("union select"), PublishedAt: "2026-03-01T00:00:00Z", Meta: models.PostMeta{Description: "legacy search form"}},
			{ID: "p2", Title: "SVG XSS", Slug: "svg-xss", Status: models.PostStatusPublished, Categories: []models.Ref{embedded("xss"), embedded("web")}, Content: doc("svg onload"), PublishedAt: "2026-02-01T00:00:00Z"},
			{ID: "p3", Title: "ret2libc", Slug: "ret2libc", Status: models.PostStatusPublished, Categories: []models.Ref{ref("bin")}, Content: doc("rop chain"), PublishedAt: "2026-01-01T00:00:00Z"},
			{ID: "p4", Title: "Draft", Slug: "draft", Status: models.PostStatusDraft, Categories: []models.Ref{ref("crypto")}, Content: doc("wip")},
			{ID: "p5", Title: "Orphan", Slug: "orphan", Status: models.PostStatusPublished, Categories: []models.Ref{ref("gone")}, CreatedAt: "2025-12-01T00:00:00Z"},
		},
	}
}

// testEnv wires a Public handler group behind a chi router.
type testEnv struct {
	source *memSource
	pages  *memPages
	router http.Handler
}

func newTestEnv(t *testing.T, src *memSource) *testEnv {
	t.Helper()
	rn, err := render.New(render.Site{Name: "Writeups", URL: "http://example.test"})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	pages := newMemPages()
	pub := NewPublic(src, pages, rn)

	r := chi.NewRouter()
	r.Get("/posts", pub.PostsArchive)
	r.Get("/posts/{slug}", pub.Post)
	r.Get("/categories", pub.CategoriesIndex)
	r.Get("/categories/{slug}", pub.Category)
	r.NotFound(pub.NotFound)

	return &testEnv{source: src, pages: pages, router: r}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

var errDown = errors.New("database down")
