// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package codeblock renders the code blocks embedded in post bodies as
// syntax-highlighted HTML using chroma.
package codeblock

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainText is the language used when a block has none set.
const PlainText = "text"

// StyleName is the chroma style applied to every block.
const StyleName = "monokai"

// aliases maps the short names editors type into the block's language
// field onto the lexer names chroma knows.
var aliases = map[string]string{
	"bash":       "shell",
	"sh":         "shell",
	"shell":      "shell",
	"zsh":        "shell",
	"css":        "css",
	"js":         "javascript",
	"javascript": "javascript",
	"py":         "python",
	"python":     "python",
	"ts":         "typescript",
	"tsx":        "typescript",
	"typescript": "typescript",
	"ps1":        "powershell",
	"powershell": "powershell",
	"yml":        "yaml",
}

// Resolve normalizes a block's language field. Empty or non-text values
// resolve to PlainText.
func Resolve(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return PlainText
	}
	if alias, ok := aliases[lang]; ok {
		return alias
	}
	return lang
}

// formatter emits inline styles so the output needs no extra stylesheet.
var formatter = chromahtml.New(
	chromahtml.WithLineNumbers(false),
	chromahtml.TabWidth(4),
)

// lexerFor returns the lexer for a resolved language, falling back to
// plain text for anything chroma does not recognise.
func lexerFor(lang string) chroma.Lexer {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// Render highlights code and wraps it in a figure carrying the language
// and a copy button hook. Empty code renders nothing.
func Render(code, language string) template.HTML {
	if code == "" {
		return ""
	}
	lang := Resolve(language)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<figure class="code-block" data-language="%s">`, html.EscapeString(lang))

	if err := highlight(&buf, code, lang); err != nil {
		slog.Warn("code block highlight failed", "language", lang, "error", err)
		buf.Reset()
		fmt.Fprintf(&buf, `<figure class="code-block" data-language="%s">`, html.EscapeString(lang))
		fmt.Fprintf(&buf, `<pre><code>%s</code></pre>`, html.EscapeString(code))
	}

	buf.WriteString(`<button type="button" class="copy-button" data-copy>Copy</button></figure>`)
	return template.HTML(buf.String())
}

func highlight(buf *bytes.Buffer, code, lang string) error {
	iterator, err := lexerFor(lang).Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}
	style := styles.Get(StyleName)
	if style == nil {
		style = styles.Fallback
	}
	if err := formatter.Format(buf, style, iterator); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	return nil
}
