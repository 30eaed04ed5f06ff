// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store is the read side of the content repository. It answers
// find queries against the posts and categories collections and offers a
// request-scoped cache so one render never asks the database the same
// question twice.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"writeups/internal/models"
)

// Source is anything that can answer content queries: the database-backed
// Repository, or a RequestCache in front of one.
type Source interface {
	Posts(ctx context.Context, q Query) ([]models.Post, error)
	Categories(ctx context.Context, q Query) ([]models.Category, error)
}

// Repository reads posts and categories from PostgreSQL.
type Repository struct {
	db *sql.DB
}

var _ Source = (*Repository)(nil)

// NewRepository returns a Repository over the given connection pool.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// timestampFormat is how timestamps are handed to the rest of the app.
const timestampFormat = time.RFC3339Nano

// postRow holds nullable column values for one posts row.
type postRow struct {
	id          string
	title       sql.NullString
	slug        sql.NullString
	status      sql.NullString
	categories  []byte
	meta        sql.NullString
	content     []byte
	publishedAt sql.NullTime
	createdAt   sql.NullTime
}

func (r *postRow) dest(field string) any {
	switch field {
	case "id":
		return &r.id
	case "title":
		return &r.title
	case "slug":
		return &r.slug
	case "_status":
		return &r.status
	case "categories":
		return &r.categories
	case "meta":
		return &r.meta
	case "content":
		return &r.content
	case "publishedAt":
		return &r.publishedAt
	case "createdAt":
		return &r.createdAt
	}
	return nil
}

func (r *postRow) model() models.Post {
	p := models.Post{
		ID:      r.id,
		Title:   r.title.String,
		Slug:    r.slug.String,
		Status:  models.PostStatus(r.status.String),
		Meta:    models.PostMeta{Description: r.meta.String},
		Content: json.RawMessage(r.content),
	}
	if len(r.categories) > 0 {
		if err := json.Unmarshal(r.categories, &p.Categories); err != nil {
			// A non-array value: the post simply has no usable categories.
			slog.Warn("post categories not an array", "id", r.id, "error", err)
			p.Categories = nil
		}
	}
	if r.publishedAt.Valid {
		p.PublishedAt = r.publishedAt.Time.UTC().Format(timestampFormat)
	}
	if r.createdAt.Valid {
		p.CreatedAt = r.createdAt.Time.UTC().Format(timestampFormat)
	}
	return p
}

// categoryRow holds nullable column values for one categories row.
type categoryRow struct {
	id          string
	title       sql.NullString
	slug        sql.NullString
	description sql.NullString
	icon        sql.NullString
	badge       sql.NullString
	featured    sql.NullBool
	sortOrder   sql.NullInt64
	parent      sql.NullString
}

func (r *categoryRow) dest(field string) any {
	switch field {
	case "id":
		return &r.id
	case "title":
		return &r.title
	case "slug":
		return &r.slug
	case "description":
		return &r.description
	case "icon":
		return &r.icon
	case "badge":
		return &r.badge
	case "featured":
		return &r.featured
	case "sortOrder":
		return &r.sortOrder
	case "parent":
		return &r.parent
	}
	return nil
}

func (r *categoryRow) model() models.Category {
	c := models.Category{
		ID:          r.id,
		Title:       r.title.String,
		Slug:        r.slug.String,
		Description: r.description.String,
		Icon:        models.Icon(r.icon.String).Normalize(),
		Badge:       r.badge.String,
		Featured:    r.featured.Bool,
		SortOrder:   models.DefaultSortOrder,
	}
	if r.sortOrder.Valid {
		c.SortOrder = int(r.sortOrder.Int64)
	}
	if r.parent.Valid && r.parent.String != "" {
		ref := models.IDRef(r.parent.String)
		c.Parent = &ref
	}
	return c
}

// Posts runs a find against the posts collection.
func (s *Repository) Posts(ctx context.Context, q Query) ([]models.Post, error) {
	q.Collection = CollectionPosts
	query, args, fields, err := build(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		var row postRow
		dest := make([]any, len(fields))
		for i, f := range fields {
			dest[i] = row.dest(f)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return items, nil
}

// Categories runs a find against the categories collection.
func (s *Repository) Categories(ctx context.Context, q Query) ([]models.Category, error) {
	q.Collection = CollectionCategories
	query, args, fields, err := build(q)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var row categoryRow
		dest := make([]any, len(fields))
		for i, f := range fields {
			dest[i] = row.dest(f)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, row.model())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return items, nil
}

// Result holds the records of one Find. Only the slice matching the
// queried collection is set.
type Result struct {
	Posts      []models.Post
	Categories []models.Category
}

// Find dispatches q to the collection it names.
func Find(ctx context.Context, src Source, q Query) (Result, error) {
	switch q.Collection {
	case CollectionPosts:
		posts, err := src.Posts(ctx, q)
		return Result{Posts: posts}, err
	case CollectionCategories:
		categories, err := src.Categories(ctx, q)
		return Result{Categories: categories}, err
	default:
		return Result{}, fmt.Errorf("find %q: %w", q.Collection, ErrUnknownCollection)
	}
}

// CategoryBySlug returns the category with the given slug, or nil if
// there is none.
func CategoryBySlug(ctx context.Context, src Source, slug string) (*models.Category, error) {
	items, err := src.Categories(ctx, Query{Slug: slug, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// PostBySlug returns the post with the given slug, or nil if there is none.
// Drafts are only visible when draft is set.
func PostBySlug(ctx context.Context, src Source, slug string, draft bool) (*models.Post, error) {
	items, err := src.Posts(ctx, Query{Slug: slug, Limit: 1, Draft: draft})
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}
