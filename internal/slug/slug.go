// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns post and category titles into URL path segments.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Generate creates a URL-friendly slug from the given string. Diacritics
// are folded to their base letters and every run of other characters
// becomes a single hyphen.
// Example: "Café: Réseau & Sécurité" → "cafe-reseau-securite"
func Generate(s string) string {
	folded, _, err := transform.String(foldMarks(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// Apostrophes join: "how's" → "hows".
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// foldMarks decomposes, drops combining marks and recomposes. A transformer
// chain is stateful, so each call builds its own.
func foldMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// OrID returns the slug of title, or id when the title yields nothing.
func OrID(title, id string) string {
	if s := Generate(title); s != "" {
		return s
	}
	return id
}
