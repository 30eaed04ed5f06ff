// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildPostsDefaults(t *testing.T) {
	query, args, fields, err := build(Query{Collection: CollectionPosts})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(query, "SELECT p.id, p.title, p.slug") {
		t.Errorf("select list: %q", query)
	}
	if !strings.Contains(query, "FROM posts p WHERE p.status = $1") {
		t.Errorf("expected published filter, got %q", query)
	}
	if diff := cmp.Diff([]any{"published"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(postSchema.order, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPostsDraft(t *testing.T) {
	query, args, _, err := build(Query{Collection: CollectionPosts, Draft: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(query, "WHERE") {
		t.Errorf("draft query should not filter status: %q", query)
	}
	if len(args) != 0 {
		t.Errorf("args: got %v, want none", args)
	}
}

func TestBuildPostsByCategory(t *testing.T) {
	query, args, _, err := build(Query{
		Collection: CollectionPosts,
		CategoryID: "cat-1",
		ExcludeID:  "post-9",
		Sort:       "-publishedAt",
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{
		"jsonb_array_elements",
		"ref #>> '{}' = $2 OR ref->>'id' = $3",
		"p.id::text <> $4",
		"ORDER BY p.published_at DESC NULLS LAST",
		"LIMIT 10",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q:\n%s", want, query)
		}
	}
	if diff := cmp.Diff([]any{"published", "cat-1", "cat-1", "post-9"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCategoriesFields(t *testing.T) {
	query, args, fields, err := build(Query{
		Collection: CollectionCategories,
		ParentID:   "root",
		Fields:     []string{"slug", "title"},
		Sort:       "sortOrder",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(query, "SELECT c.id, c.title, c.slug FROM categories c") {
		t.Errorf("select list: %q", query)
	}
	if !strings.Contains(query, "c.parent_id::text = $1") {
		t.Errorf("expected parent filter: %q", query)
	}
	if !strings.HasSuffix(query, "ORDER BY c.sort_order ASC") {
		t.Errorf("expected ascending sort: %q", query)
	}
	if diff := cmp.Diff([]string{"id", "title", "slug"}, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"root"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want error
	}{
		{"no collection", Query{}, ErrUnknownCollection},
		{"bad collection", Query{Collection: "users"}, ErrUnknownCollection},
		{"bad field", Query{Collection: CollectionPosts, Fields: []string{"password"}}, ErrUnknownField},
		{"bad sort", Query{Collection: CollectionCategories, Sort: "-views"}, ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := build(tt.q)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestQueryKey(t *testing.T) {
	a := Query{Collection: CollectionPosts, Slug: "x", Fields: []string{"title"}}
	b := Query{Collection: CollectionPosts, Slug: "x", Fields: []string{"title"}}
	c := Query{Collection: CollectionPosts, Slug: "x", Fields: []string{"title"}, Draft: true}

	if a.Key() != b.Key() {
		t.Errorf("equal queries have different keys: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Errorf("draft flag not part of key: %q", a.Key())
	}
}
