// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
)

// RefKind tells how a relationship reference was delivered by the CMS.
type RefKind uint8

const (
	RefInvalid  RefKind = iota // null, number, object without an id, ...
	RefID                      // bare identifier string
	RefEmbedded                // populated document with an "id" field
)

// Ref is a pointer from one content record to another. Depending on the
// query depth the repository returns either the bare identifier or an
// embedded summary of the related document; both resolve to the same ID.
type Ref struct {
	Kind  RefKind
	Value string // identifier, for both RefID and RefEmbedded
	Title string // only set for RefEmbedded
	Slug  string // only set for RefEmbedded
}

// IDRef returns a bare identifier reference.
func IDRef(id string) Ref {
	return Ref{Kind: RefID, Value: id}
}

// ID returns the referenced identifier and whether the reference resolved.
func (r Ref) ID() (string, bool) {
	if r.Kind == RefInvalid || r.Value == "" {
		return "", false
	}
	return r.Value, true
}

// embeddedRef is the subset of an embedded document we care about.
type embeddedRef struct {
	ID    *string `json:"id"`
	Title string  `json:"title"`
	Slug  string  `json:"slug"`
}

// UnmarshalJSON accepts a bare string or an object exposing "id". Any other
// shape decodes to an invalid ref instead of failing the whole record.
func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return nil
		}
		*r = IDRef(id)
	case '{':
		var doc embeddedRef
		if err := json.Unmarshal(data, &doc); err != nil || doc.ID == nil {
			return nil
		}
		*r = Ref{Kind: RefEmbedded, Value: *doc.ID, Title: doc.Title, Slug: doc.Slug}
	}
	return nil
}

// MarshalJSON writes the reference back in the shape it was received.
func (r Ref) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefID:
		return json.Marshal(r.Value)
	case RefEmbedded:
		return json.Marshal(embeddedRef{ID: &r.Value, Title: r.Title, Slug: r.Slug})
	default:
		return []byte("null"), nil
	}
}
