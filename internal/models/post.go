// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "encoding/json"

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// PostMeta holds the SEO fields attached to a post.
type PostMeta struct {
	Description string `json:"description,omitempty"`
}

// Post is the read-only projection of a post as delivered by the content
// repository. Timestamps are kept as the raw text the CMS stores so that a
// malformed value degrades at sort time instead of failing the fetch.
type Post struct {
	ID          string          `json:"id"`
	Title       string          `json:"title,omitempty"`
	Slug        string          `json:"slug,omitempty"`
	Status      PostStatus      `json:"_status,omitempty"`
	Categories  []Ref           `json:"categories,omitempty"`
	Meta        PostMeta        `json:"meta"`
	Content     json.RawMessage `json:"content,omitempty"`
	PublishedAt string          `json:"publishedAt,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PostSummary is the listing projection of a post. It drops the rich-text
// document and carries the read time derived from it instead.
type PostSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Categories  []Ref    `json:"categories,omitempty"`
	Meta        PostMeta `json:"meta"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	ReadTime    *int     `json:"readTime"` // minutes; nil when the post has no text
}
