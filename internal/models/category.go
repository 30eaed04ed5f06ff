// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Icon is the glyph shown next to a category on listing pages.
type Icon string

const (
	IconFolder   Icon = "folder"
	IconTerminal Icon = "terminal"
	IconShield   Icon = "shield"
	IconBug      Icon = "bug"
	IconNetwork  Icon = "network"
	IconLock     Icon = "lock"
	IconBinary   Icon = "binary"
	IconDatabase Icon = "database"
)

// Icons lists every selectable icon in editor order.
var Icons = []Icon{
	IconFolder, IconTerminal, IconShield, IconBug,
	IconNetwork, IconLock, IconBinary, IconDatabase,
}

// Normalize maps unknown or empty values to the folder icon.
func (i Icon) Normalize() Icon {
	for _, known := range Icons {
		if i == known {
			return i
		}
	}
	return IconFolder
}

// DefaultSortOrder is applied when the editor left sortOrder empty.
const DefaultSortOrder = 100

// Category represents a topic that posts are filed under. A post can
// belong to any number of categories, and categories nest through Parent.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        Icon   `json:"icon"`
	Badge       string `json:"badge,omitempty"`
	Featured    bool   `json:"featured"`
	SortOrder   int    `json:"sortOrder"`
	Parent      *Ref   `json:"parent,omitempty"`

	// Derived by the aggregator, never stored.
	Count        int           `json:"count"`
	LatestPostAt time.Time     `json:"latestPostAt"`
	Posts        []PostSummary `json:"posts,omitempty"`
}

// ParentID returns the parent category identifier, if any.
func (c *Category) ParentID() (string, bool) {
	if c.Parent == nil {
		return "", false
	}
	return c.Parent.ID()
}

// Breadcrumb is one step of the parent trail shown above a category.
type Breadcrumb struct {
	Label string
	Href  string // empty for the current category
}
