// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package richtext

import (
	"html"
	"html/template"
	"strings"

	"writeups/internal/codeblock"
)

// Text format bits as stored by the editor on text nodes.
const (
	FormatBold          = 1
	FormatItalic        = 1 << 1
	FormatStrikethrough = 1 << 2
	FormatUnderline     = 1 << 3
	FormatCode          = 1 << 4
)

// maxRenderDepth caps nesting when rendering. Deeper subtrees are dropped.
const maxRenderDepth = 128

// HTML renders a node tree to HTML. Text is always escaped; code blocks
// are highlighted through the codeblock package.
func HTML(n Node) template.HTML {
	var sb strings.Builder
	renderNode(&sb, n, 0)
	return template.HTML(sb.String())
}

func renderNode(sb *strings.Builder, n Node, depth int) {
	if depth > maxRenderDepth {
		return
	}

	switch n.Kind {
	case KindText:
		sb.WriteString(html.EscapeString(n.Text))
		return
	case KindList:
		renderChildren(sb, n, depth)
		return
	}

	switch n.Type {
	case "text":
		renderText(sb, n)
	case "linebreak":
		sb.WriteString("<br>")
	case "horizontalrule":
		sb.WriteString("<hr>")
	case "paragraph":
		wrap(sb, "p", n, depth)
	case "quote":
		wrap(sb, "blockquote", n, depth)
	case "heading":
		wrap(sb, headingTag(n.Tag), n, depth)
	case "list":
		tag := "ul"
		if n.ListType == "number" || n.Tag == "ol" {
			tag = "ol"
		}
		wrap(sb, tag, n, depth)
	case "listitem":
		wrap(sb, "li", n, depth)
	case "link", "autolink":
		sb.WriteString(`<a href="`)
		sb.WriteString(html.EscapeString(safeURL(n.URL)))
		sb.WriteString(`">`)
		renderChildren(sb, n, depth)
		sb.WriteString("</a>")
	case "block":
		renderBlock(sb, n)
	default:
		// root, unknown element types: render their content only.
		if n.Text != "" {
			sb.WriteString(html.EscapeString(n.Text))
		}
		renderChildren(sb, n, depth)
	}
}

func renderChildren(sb *strings.Builder, n Node, depth int) {
	for _, c := range n.Children {
		renderNode(sb, c, depth+1)
	}
}

func wrap(sb *strings.Builder, tag string, n Node, depth int) {
	sb.WriteString("<" + tag + ">")
	renderChildren(sb, n, depth)
	sb.WriteString("</" + tag + ">")
}

func renderText(sb *strings.Builder, n Node) {
	text := html.EscapeString(n.Text)
	if n.Format&FormatCode != 0 {
		text = "<code>" + text + "</code>"
	}
	if n.Format&FormatBold != 0 {
		text = "<strong>" + text + "</strong>"
	}
	if n.Format&FormatItalic != 0 {
		text = "<em>" + text + "</em>"
	}
	if n.Format&FormatUnderline != 0 {
		text = "<u>" + text + "</u>"
	}
	if n.Format&FormatStrikethrough != 0 {
		text = "<s>" + text + "</s>"
	}
	sb.WriteString(text)
}

func renderBlock(sb *strings.Builder, n Node) {
	blockType, _ := n.Fields["blockType"].(string)
	switch blockType {
	case "code":
		code, _ := n.Fields["code"].(string)
		lang, _ := n.Fields["language"].(string)
		sb.WriteString(string(codeblock.Render(code, lang)))
	}
}

func headingTag(tag string) string {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return tag
	}
	return "h2"
}

// safeURL drops javascript: and other non-navigational schemes.
func safeURL(u string) string {
	trimmed := strings.TrimSpace(u)
	lower := strings.ToLower(trimmed)
	if i := strings.IndexByte(lower, ':'); i > 0 && !strings.ContainsAny(lower[:i], "/?#") {
		switch lower[:i] {
		case "http", "https", "mailto":
			return trimmed
		}
		return "#"
	}
	return trimmed
}
