// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"log/slog"

	"writeups/internal/models"
)

// RequestCache memoizes the results of a Source for the lifetime of one
// request. Create one per request and pass it explicitly; it is not safe
// for concurrent use and must not outlive the request. Errors are never
// cached. Callers must treat returned slices as read-only.
type RequestCache struct {
	src        Source
	posts      map[string][]models.Post
	categories map[string][]models.Category
	hits       int
}

var _ Source = (*RequestCache)(nil)

// NewRequestCache wraps src in a fresh, empty cache.
func NewRequestCache(src Source) *RequestCache {
	return &RequestCache{
		src:        src,
		posts:      make(map[string][]models.Post),
		categories: make(map[string][]models.Category),
	}
}

// Posts returns the memoized result for q, querying src on first use.
func (c *RequestCache) Posts(ctx context.Context, q Query) ([]models.Post, error) {
	q.Collection = CollectionPosts
	key := q.Key()
	if items, ok := c.posts[key]; ok {
		c.hits++
		return items, nil
	}
	items, err := c.src.Posts(ctx, q)
	if err != nil {
		return nil, err
	}
	c.posts[key] = items
	return items, nil
}

// Categories returns the memoized result for q, querying src on first use.
func (c *RequestCache) Categories(ctx context.Context, q Query) ([]models.Category, error) {
	q.Collection = CollectionCategories
	key := q.Key()
	if items, ok := c.categories[key]; ok {
		c.hits++
		return items, nil
	}
	items, err := c.src.Categories(ctx, q)
	if err != nil {
		return nil, err
	}
	c.categories[key] = items
	return items, nil
}

// Hits returns how many queries were answered from the cache.
func (c *RequestCache) Hits() int {
	return c.hits
}

// Close logs the cache statistics for the request. The cache must not be
// used afterwards.
func (c *RequestCache) Close() {
	slog.Debug("request cache closed",
		"hits", c.hits,
		"post_queries", len(c.posts),
		"category_queries", len(c.categories),
	)
	c.posts, c.categories = nil, nil
}
