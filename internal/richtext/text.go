// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package richtext

import (
	"encoding/json"
	"math"
	"strings"
)

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

// Text returns the plain text of a node tree: each node's own text followed
// by the text of its children, in document order, joined by single spaces.
func Text(n Node) string {
	var parts []string
	stack := []*Node{&n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.Text != "" {
			parts = append(parts, cur.Text)
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, &cur.Children[i])
		}
	}
	return strings.Join(parts, " ")
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// MinutesFor converts a word count into a read time in minutes, or nil for
// an empty text. Non-empty texts always read for at least a minute.
func MinutesFor(words int) *int {
	if words <= 0 {
		return nil
	}
	minutes := int(math.Round(float64(words) / WordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return &minutes
}

// ReadTime estimates the read time of a stored rich-text document.
func ReadTime(raw json.RawMessage) *int {
	return MinutesFor(WordCount(Text(Parse(raw))))
}
