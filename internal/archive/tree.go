// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package archive

import (
	"writeups/internal/models"
)

// CategoryPath returns the public URL of a category page.
func CategoryPath(slug string) string {
	return "/categories/" + slug
}

// Breadcrumbs walks the parent chain of c through all and returns the trail
// from the outermost ancestor down to c. Ancestors link to their pages; the
// last item (c itself) does not. Missing parents and cycles end the walk.
func Breadcrumbs(c models.Category, all []models.Category) []models.Breadcrumb {
	byID := make(map[string]models.Category, len(all))
	for _, cat := range all {
		byID[cat.ID] = cat
	}

	chain := []models.Category{c}
	seen := map[string]bool{c.ID: true}
	cur := c
	for {
		parentID, ok := cur.ParentID()
		if !ok || seen[parentID] {
			break
		}
		parent, ok := byID[parentID]
		if !ok {
			break
		}
		seen[parentID] = true
		chain = append(chain, parent)
		cur = parent
	}

	crumbs := make([]models.Breadcrumb, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		crumb := models.Breadcrumb{Label: label(chain[i])}
		if i > 0 && chain[i].Slug != "" {
			crumb.Href = CategoryPath(chain[i].Slug)
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}

// Related returns up to limit siblings of c: categories sharing its parent,
// excluding c. A category without a parent has no related categories.
func Related(c models.Category, all []models.Category, limit int) []models.Category {
	parentID, ok := c.ParentID()
	if !ok || limit <= 0 {
		return nil
	}

	var related []models.Category
	for _, cat := range all {
		if cat.ID == c.ID {
			continue
		}
		if pid, ok := cat.ParentID(); ok && pid == parentID {
			related = append(related, cat)
			if len(related) == limit {
				break
			}
		}
	}
	return related
}

func label(c models.Category) string {
	if c.Title != "" {
		return c.Title
	}
	if c.Slug != "" {
		return c.Slug
	}
	return UntitledCategory
}
