// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package explore

import "writeups/internal/models"

// PostAnchor is the in-page id of a post card: post-<slug>, or post-<id>
// for posts without a slug. It depends only on the post, never on the
// current sort or filter.
func PostAnchor(p models.PostSummary) string {
	if p.Slug != "" {
		return "post-" + p.Slug
	}
	return "post-" + p.ID
}

// CategoryAnchor is the in-page id of a category section.
func CategoryAnchor(c models.Category) string {
	return "category-" + c.Slug
}

// State distinguishes the terminal states of a listing.
type State int

const (
	StateResults   State = iota // something to show
	StateNoMatches              // a search is active and filtered everything out
	StateEmpty                  // nothing to show and no search active
)

// Outcome classifies a listing after exploration.
func Outcome(shown int, q Query) State {
	switch {
	case shown > 0:
		return StateResults
	case q.Active():
		return StateNoMatches
	default:
		return StateEmpty
	}
}

// Message is the text shown for a listing state, or "" for results.
func (s State) Message(noun string) string {
	switch s {
	case StateNoMatches:
		return "No " + noun + " match your search."
	case StateEmpty:
		return "No " + noun + " found."
	}
	return ""
}
