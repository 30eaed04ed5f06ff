// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Collection names a content collection in the repository.
type Collection string

const (
	CollectionPosts      Collection = "posts"
	CollectionCategories Collection = "categories"
)

var (
	// ErrUnknownCollection is returned for a Query naming no collection we serve.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnknownField is returned when a Query selects or sorts by a field
	// the collection does not have.
	ErrUnknownField = errors.New("unknown field")
)

// Query describes a find against the repository: which collection, which
// records, in what order and which fields to populate. Zero values mean
// "no constraint".
type Query struct {
	Collection Collection
	Slug       string   // slug equals
	CategoryID string   // posts: references this category
	ParentID   string   // categories: parent equals
	ExcludeID  string   // id not equals
	Sort       string   // field name, "-" prefix for descending
	Fields     []string // nil selects every field
	Limit      uint64
	Draft      bool // posts: include drafts
}

// Key identifies the query for request-scoped memoization.
func (q Query) Key() string {
	return fmt.Sprintf("%s|slug=%s|cat=%s|parent=%s|not=%s|sort=%s|fields=%s|limit=%d|draft=%t",
		q.Collection, q.Slug, q.CategoryID, q.ParentID, q.ExcludeID,
		q.Sort, strings.Join(q.Fields, ","), q.Limit, q.Draft)
}

// schema maps public field names to columns for one collection. order
// fixes the column order of SELECT lists.
type schema struct {
	table   string
	columns map[string]string
	order   []string
}

var postSchema = schema{
	table: "posts p",
	columns: map[string]string{
		"id":          "p.id",
		"title":       "p.title",
		"slug":        "p.slug",
		"_status":     "p.status",
		"categories":  "p.categories",
		"meta":        "p.meta_description",
		"content":     "p.content",
		"publishedAt": "p.published_at",
		"createdAt":   "p.created_at",
	},
	order: []string{"id", "title", "slug", "_status", "categories", "meta", "content", "publishedAt", "createdAt"},
}

var categorySchema = schema{
	table: "categories c",
	columns: map[string]string{
		"id":          "c.id",
		"title":       "c.title",
		"slug":        "c.slug",
		"description": "c.description",
		"icon":        "c.icon",
		"badge":       "c.badge",
		"featured":    "c.featured",
		"sortOrder":   "c.sort_order",
		"parent":      "c.parent_id",
		"createdAt":   "c.created_at",
	},
	order: []string{"id", "title", "slug", "description", "icon", "badge", "featured", "sortOrder", "parent"},
}

func schemaFor(c Collection) (schema, error) {
	switch c {
	case CollectionPosts:
		return postSchema, nil
	case CollectionCategories:
		return categorySchema, nil
	}
	return schema{}, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
}

// selected resolves the requested fields into ordered field names. The id
// is always selected.
func (s schema) selected(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return s.order, nil
	}
	want := map[string]bool{"id": true}
	for _, f := range fields {
		if _, ok := s.columns[f]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		want[f] = true
	}
	var out []string
	for _, f := range s.order {
		if want[f] {
			out = append(out, f)
		}
	}
	return out, nil
}

// psql builds Postgres-flavoured statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// build turns a Query into SQL. It returns the field names in SELECT order
// so the caller can scan into matching destinations.
func build(q Query) (string, []any, []string, error) {
	s, err := schemaFor(q.Collection)
	if err != nil {
		return "", nil, nil, err
	}
	fields, err := s.selected(q.Fields)
	if err != nil {
		return "", nil, nil, err
	}

	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = s.columns[f]
	}
	b := psql.Select(cols...).From(s.table)

	switch q.Collection {
	case CollectionPosts:
		if !q.Draft {
			b = b.Where(sq.Eq{"p.status": "published"})
		}
		if q.Slug != "" {
			b = b.Where(sq.Eq{"p.slug": q.Slug})
		}
		if q.CategoryID != "" {
			b = b.Where(sq.Expr(
				`EXISTS (SELECT 1 FROM jsonb_array_elements(COALESCE(p.categories, '[]'::jsonb)) AS ref
				 WHERE ref #>> '{}' = ? OR ref->>'id' = ?)`,
				q.CategoryID, q.CategoryID,
			))
		}
		if q.ExcludeID != "" {
			b = b.Where(sq.NotEq{"p.id::text": q.ExcludeID})
		}
	case CollectionCategories:
		if q.Slug != "" {
			b = b.Where(sq.Eq{"c.slug": q.Slug})
		}
		if q.ParentID != "" {
			b = b.Where(sq.Eq{"c.parent_id::text": q.ParentID})
		}
		if q.ExcludeID != "" {
			b = b.Where(sq.NotEq{"c.id::text": q.ExcludeID})
		}
	}

	if q.Sort != "" {
		field, desc := strings.TrimPrefix(q.Sort, "-"), strings.HasPrefix(q.Sort, "-")
		col, ok := s.columns[field]
		if !ok {
			return "", nil, nil, fmt.Errorf("%w: sort %q", ErrUnknownField, field)
		}
		if desc {
			b = b.OrderBy(col + " DESC NULLS LAST")
		} else {
			b = b.OrderBy(col + " ASC")
		}
	}
	if q.Limit > 0 {
		b = b.Limit(q.Limit)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, nil, fmt.Errorf("build %s query: %w", q.Collection, err)
	}
	return query, args, fields, nil
}
