// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"writeups/internal/archive"
	"writeups/internal/explore"
	"writeups/internal/markdown"
	"writeups/internal/media"
	"writeups/internal/models"
)

// dateLayout matches "Mar 4, 2026".
const dateLayout = "Jan 2, 2006"

func funcMap(site Site) template.FuncMap {
	return template.FuncMap{
		"formatDate":     formatDate,
		"postAnchor":     explore.PostAnchor,
		"categoryAnchor": explore.CategoryAnchor,
		"categoryPath":   archive.CategoryPath,
		"postPath":       PostPath,
		"plural":         plural,
		"icon":           iconSVG,
		"plain":          markdown.Plain,
		"minutes":        minutes,
		"withParam":      withParam,
		"dict":           dict,
		"mediaURL": func(raw string) string {
			return media.URL(raw, site.AssetVersion, site.URL)
		},
		"orUntitled": func(s string) string {
			if s == "" {
				return "Untitled"
			}
			return s
		},
	}
}

// dict builds a map from alternating keys and values, for passing several
// arguments to a partial.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// PostPath returns the public URL of a post page.
func PostPath(slug string) string {
	return "/posts/" + slug
}

// formatDate formats publishedAt, or createdAt when publishedAt is absent.
// Unparseable values produce "".
func formatDate(publishedAt, createdAt string) string {
	value := publishedAt
	if value == "" {
		value = createdAt
	}
	t, ok := archive.ParseTimestamp(value)
	if !ok {
		return ""
	}
	return t.Format(dateLayout)
}

// plural returns "1 post", "2 posts".
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// minutes dereferences a read time; 0 means none.
func minutes(m *int) int {
	if m == nil {
		return 0
	}
	return *m
}

// withParam returns path with the explorer state of q encoded as query
// parameters, key overridden by value. Default values are left out.
func withParam(path string, q explore.Query, key, value string) string {
	v := url.Values{}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.Sort != "" {
		v.Set("sort", string(q.Sort))
	}
	if q.View != "" {
		v.Set("view", string(q.View))
	}
	if value == "" {
		v.Del(key)
	} else {
		v.Set(key, value)
	}
	if v.Get("view") == string(explore.ViewGrid) {
		v.Del("view")
	}
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// iconSVG returns the inline SVG for a category icon.
func iconSVG(i models.Icon) template.HTML {
	return template.HTML(`<svg class="icon" viewBox="0 0 24 24" width="16" height="16" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">` +
		iconPaths[i.Normalize()] + `</svg>`)
}

// iconPaths holds the SVG body of each icon.
var iconPaths = map[models.Icon]string{
	models.IconFolder:   `<path d="M4 20h16a2 2 0 0 0 2-2V8a2 2 0 0 0-2-2h-7.9a2 2 0 0 1-1.7-.9l-.8-1.2A2 2 0 0 0 7.9 3H4a2 2 0 0 0-2 2v13a2 2 0 0 0 2 2Z"/>`,
	models.IconTerminal: `<polyline points="4 17 10 11 4 5"/><line x1="12" x2="20" y1="19" y2="19"/>`,
	models.IconShield:   `<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10Z"/>`,
	models.IconBug:      `<rect width="8" height="14" x="8" y="6" rx="4"/><path d="m19 7-3 2M5 7l3 2M19 19l-3-2M5 19l3-2M20 13h-4M4 13h4M10 4l1 2M14 4l-1 2"/>`,
	models.IconNetwork:  `<rect x="16" y="16" width="6" height="6" rx="1"/><rect x="2" y="16" width="6" height="6" rx="1"/><rect x="9" y="2" width="6" height="6" rx="1"/><path d="M5 16v-3a1 1 0 0 1 1-1h12a1 1 0 0 1 1 1v3M12 12V8"/>`,
	models.IconLock:     `<rect width="18" height="11" x="3" y="11" rx="2" ry="2"/><path d="M7 11V7a5 5 0 0 1 10 0v4"/>`,
	models.IconBinary:   `<rect x="14" y="14" width="4" height="6" rx="2"/><rect x="6" y="4" width="4" height="6" rx="2"/><path d="M6 20h4M14 10h4M6 14h2v6M14 4h2v6"/>`,
	models.IconDatabase: `<ellipse cx="12" cy="5" rx="9" ry="3"/><path d="M3 5v14a9 3 0 0 0 18 0V5"/><path d="M3 12a9 3 0 0 0 18 0"/>`,
}
