// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Limits for user-supplied request input.
const (
	maxSlugLen  = 300
	maxQueryLen = 200
)

// validSlug reports whether s can name a post or category. Anything else
// is answered with 404 without touching the repository.
func validSlug(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > maxSlugLen {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00")
}

// slugParam decodes a slug path segment. Percent-encoded slugs are
// accepted; malformed escapes yield "".
func slugParam(raw string) string {
	s, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return s
}

// clampQuery trims search text to maxQueryLen runes.
func clampQuery(q string) string {
	if utf8.RuneCountInString(q) <= maxQueryLen {
		return q
	}
	runes := []rune(q)
	return string(runes[:maxQueryLen])
}
