// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media normalizes media resource URLs for use in rendered pages.
package media

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// doubledProtocol matches a scheme immediately followed by another one,
	// as in "https://https://cdn.example.com".
	doubledProtocol = regexp.MustCompile(`(?i)^https?://(https?://)`)
	hasProtocol     = regexp.MustCompile(`(?i)^https?://`)
)

// URL turns a stored media URL into one a browser can load.
//
// Absolute URLs are kept, protocol-relative ones get https, root-relative
// ones stay relative, and anything else is resolved against baseURL. A
// non-empty cacheTag is URL-encoded and appended as a query component.
// An empty raw URL yields "".
func URL(raw, cacheTag, baseURL string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	u = doubledProtocol.ReplaceAllString(u, "$1")

	switch {
	case hasProtocol.MatchString(u):
	case strings.HasPrefix(u, "//"):
		u = "https:" + u
	case strings.HasPrefix(u, "/"):
	default:
		u = strings.TrimRight(baseURL, "/") + "/" + u
	}

	if cacheTag == "" {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + url.QueryEscape(cacheTag)
}
