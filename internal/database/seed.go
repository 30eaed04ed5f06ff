// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"writeups/internal/slug"
)

type seedCategory struct {
	title       string
	description string
	icon        string
	badge       string
	featured    bool
	sortOrder   int
	parent      string // title of the parent category
}

type seedPost struct {
	title      string
	categories []string // category titles
	embedded   bool     // store refs as {"id": ...} objects instead of bare ids
	paragraphs []string
	code       string
	language   string
	age        time.Duration
	draft      bool
}

var seedCategories = []seedCategory{
	{title: "Web Exploitation", description: "Injection, auth bypasses and **everything HTTP**.", icon: "network", badge: "Core", featured: true, sortOrder: 10},
	{title: "Binary Exploitation", description: "Stack smashing, heap feng shui and ROP.", icon: "binary", featured: true, sortOrder: 20},
	{title: "Reverse Engineering", description: "Reading other people's machine code.", icon: "bug", featured: true, sortOrder: 30},
	{title: "Cryptography", description: "Broken ciphers and the people who break them.", icon: "lock", sortOrder: 40},
	{title: "SQL Injection", description: "From `' OR 1=1` to out-of-band exfiltration.", icon: "database", parent: "Web Exploitation"},
	{title: "XSS", description: "Script where script should not be.", icon: "terminal", parent: "Web Exploitation"},
	{title: "Heap", description: "", icon: "shield", parent: "Binary Exploitation"},
	{title: "Notes", description: "Loose ends.", icon: "", sortOrder: 200},
}

var seedPosts = []seedPost{
	{
		title:      "Union-based SQLi on a legacy search form",
		categories: []string{"SQL Injection", "Web Exploitation"},
		paragraphs: []string{
			"The search endpoint concatenated the query string straight into a LIKE clause.",
			"Counting columns with ORDER BY and then pivoting to UNION SELECT gave us the users table.",
		},
		code:     "' UNION SELECT username, password FROM users--",
		language: "sql",
		age:      2 * 24 * time.Hour,
	},
	{
		title:      "Stored XSS through SVG uploads",
		categories: []string{"XSS"},
		embedded:   true,
		paragraphs: []string{"Image uploads were served from the main origin with the original content type."},
		code:       "<svg onload=alert(document.domain)>",
		language:   "html",
		age:        5 * 24 * time.Hour,
	},
	{
		title:      "ret2libc without a leak",
		categories: []string{"Binary Exploitation"},
		paragraphs: []string{
			"Partial overwrites of the saved return address let us brute force four bits of ASLR.",
		},
		code:     "payload = b'A' * 72 + p64(pop_rdi) + p64(bin_sh) + p64(system)",
		language: "py",
		age:      9 * 24 * time.Hour,
	},
	{
		title:      "House of Force in 2026",
		categories: []string{"Heap", "Binary Exploitation"},
		embedded:   true,
		paragraphs: []string{"Old glibc, old tricks. The top chunk size was ours to corrupt."},
		age:        12 * 24 * time.Hour,
	},
	{
		title:      "Patching a license check",
		categories: []string{"Reverse Engineering"},
		paragraphs: []string{"A single JNZ stood between us and the full version."},
		code:       "cmp eax, 0x1\njnz short loc_401020",
		language:   "asm",
		age:        20 * 24 * time.Hour,
	},
	{
		title:      "Padding oracle, step by step",
		categories: []string{"Cryptography"},
		draft:      true,
		paragraphs: []string{"Work in progress."},
		age:        1 * 24 * time.Hour,
	},
}

// Seed populates an empty database with development categories and posts.
// It does nothing when any category already exists.
func Seed(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	ids := make(map[string]uuid.UUID, len(seedCategories))
	for _, c := range seedCategories {
		id := uuid.New()
		ids[c.title] = id

		var parent *uuid.UUID
		if c.parent != "" {
			p, ok := ids[c.parent]
			if !ok {
				return fmt.Errorf("seed category %q: parent %q not seeded yet", c.title, c.parent)
			}
			parent = &p
		}
		sortOrder := c.sortOrder
		if sortOrder == 0 {
			sortOrder = 100
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, title, slug, description, icon, badge, featured, sort_order, parent_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, c.title, slug.Generate(c.title), c.description, c.icon, c.badge, c.featured, sortOrder, parent,
		)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.title, err)
		}
	}

	now := time.Now().UTC()
	for _, p := range seedPosts {
		refs := make([]any, 0, len(p.categories))
		for _, title := range p.categories {
			id, ok := ids[title]
			if !ok {
				return fmt.Errorf("seed post %q: unknown category %q", p.title, title)
			}
			if p.embedded {
				refs = append(refs, map[string]string{"id": id.String(), "title": title, "slug": slug.Generate(title)})
			} else {
				refs = append(refs, id.String())
			}
		}
		categories, err := json.Marshal(refs)
		if err != nil {
			return fmt.Errorf("seed marshal categories: %w", err)
		}
		content, err := json.Marshal(seedDocument(p))
		if err != nil {
			return fmt.Errorf("seed marshal content: %w", err)
		}

		status := "published"
		var publishedAt *time.Time
		if p.draft {
			status = "draft"
		} else {
			t := now.Add(-p.age)
			publishedAt = &t
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO posts (title, slug, status, categories, meta_description, content, published_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.title, slug.Generate(p.title), status, string(categories), p.paragraphs[0], string(content), publishedAt, now.Add(-p.age),
		)
		if err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development content",
		"categories", len(seedCategories),
		"posts", len(seedPosts),
	)
	return nil
}

// seedDocument builds a rich-text document in the shape the editor stores.
func seedDocument(p seedPost) map[string]any {
	children := make([]any, 0, len(p.paragraphs)+1)
	for _, text := range p.paragraphs {
		children = append(children, map[string]any{
			"type": "paragraph",
			"children": []any{
				map[string]any{"type": "text", "text": text, "format": 0},
			},
		})
	}
	if p.code != "" {
		children = append(children, map[string]any{
			"type": "block",
			"fields": map[string]any{
				"blockType": "code",
				"language":  p.language,
				"code":      p.code,
			},
		})
	}
	return map[string]any{
		"root": map[string]any{"type": "root", "children": children},
	}
}
