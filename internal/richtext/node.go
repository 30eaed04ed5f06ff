// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package richtext understands the rich-text documents the CMS stores for
// post bodies: a JSON tree of nodes with "text" leaves and "children"
// arrays. It decodes the tree into a small variant type, extracts plain
// text for read-time estimation, and renders the tree to HTML.
package richtext

import (
	"encoding/json"
)

// Kind is the shape of a node as far as text extraction is concerned.
type Kind uint8

const (
	// KindOther covers every shape that carries no text: null, numbers,
	// objects without text or children (including embedded blocks).
	KindOther Kind = iota
	// KindText is a bare JSON string.
	KindText
	// KindElement is an object with a "text" value, a "children" array, or both.
	KindElement
	// KindList is a bare JSON array.
	KindList
)

// Node is one decoded element of a rich-text tree.
type Node struct {
	Kind     Kind
	Type     string // editor node type: "paragraph", "heading", "text", "block", ...
	Text     string
	Tag      string // heading level or list tag
	Format   int    // text format bitmask
	ListType string
	URL      string
	Fields   map[string]any // block payload, e.g. code blocks
	Children []Node
}

// Parse decodes a stored document. A top-level object with a non-null
// "root" key is unwrapped first. Malformed JSON yields a KindOther node,
// never an error: a broken body must not take the listing down with it.
func Parse(raw json.RawMessage) Node {
	if len(raw) == 0 {
		return Node{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Node{}
	}
	if doc, ok := v.(map[string]any); ok {
		if root, ok := doc["root"]; ok && root != nil {
			v = root
		}
	}
	return build(v)
}

// build converts a decoded JSON value into a Node tree with an explicit
// worklist, so deeply nested input cannot exhaust the goroutine stack.
func build(v any) Node {
	type pending struct {
		val any
		dst *Node
	}

	var root Node
	stack := []pending{{val: v, dst: &root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := shallow(p.val, p.dst)
		if len(children) == 0 {
			continue
		}
		p.dst.Children = make([]Node, len(children))
		for i := range children {
			stack = append(stack, pending{val: children[i], dst: &p.dst.Children[i]})
		}
	}
	return root
}

// shallow fills n from v without descending, and returns the child values.
func shallow(v any, n *Node) []any {
	switch val := v.(type) {
	case string:
		n.Kind = KindText
		n.Text = val
		return nil
	case []any:
		n.Kind = KindList
		return val
	case map[string]any:
		n.Type, _ = val["type"].(string)
		n.Tag, _ = val["tag"].(string)
		n.ListType, _ = val["listType"].(string)
		if f, ok := val["format"].(float64); ok {
			n.Format = int(f)
		}
		n.URL, _ = val["url"].(string)
		if fields, ok := val["fields"].(map[string]any); ok {
			n.Fields = fields
			if n.URL == "" {
				n.URL, _ = fields["url"].(string)
			}
		}

		text, hasText := val["text"].(string)
		children, hasChildren := val["children"].([]any)
		if hasText || hasChildren {
			n.Kind = KindElement
			n.Text = text
		}
		return children
	default:
		return nil
	}
}
