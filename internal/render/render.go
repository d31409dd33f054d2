// Package render converts note content to HTML for display.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// HTML renders a note body. Notes flagged as Markdown go through goldmark
// with GFM extensions; plain-text notes are escaped and wrapped in <pre>.
func HTML(content string, markdown bool) (string, error) {
	if !markdown {
		return "<pre>" + html.EscapeString(content) + "</pre>", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render: convert markdown: %w", err)
	}
	return buf.String(), nil
}
