// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package archive

import (
	"strings"
	"time"

	"writeups/internal/models"
)

// Epoch is the effective date of a post with no usable timestamp. It sorts
// after every real date under "newest".
var Epoch = time.UnixMilli(0).UTC()

// timestampLayouts are tried in order when parsing repository timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00", // Postgres text output
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// ParseTimestamp parses a stored timestamp. Naive values are read as UTC.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Date returns the effective date for a publishedAt/createdAt pair:
// publishedAt when present and valid, else createdAt, else Epoch.
func Date(publishedAt, createdAt string) time.Time {
	if t, ok := ParseTimestamp(publishedAt); ok {
		return t
	}
	if t, ok := ParseTimestamp(createdAt); ok {
		return t
	}
	return Epoch
}

// EffectiveDate returns the date a post sorts and displays by.
func EffectiveDate(p models.Post) time.Time {
	return Date(p.PublishedAt, p.CreatedAt)
}

// SummaryDate returns the effective date of a post summary.
func SummaryDate(s models.PostSummary) time.Time {
	return Date(s.PublishedAt, s.CreatedAt)
}
