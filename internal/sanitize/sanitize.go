// Package sanitize turns model output into plain text suitable for a
// Telegram message sent without a parse mode.
package sanitize

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	listItemTags = regexp.MustCompile(`<li>\s*`)
	blockTags    = regexp.MustCompile(`<br\s*/?>|</?p>|</?div>|</?pre>|</?h[1-6]>|</?[ou]l>|<hr\s*/?>`)
	extraNewline = regexp.MustCompile(`\n\s*\n+`)
)

// Policy strips HTML and markdown from text.
type Policy struct {
	policy   *bluemonday.Policy
	markdown goldmark.Markdown
}

// NewTelegramPolicy creates a Policy that keeps only text content.
func NewTelegramPolicy() *Policy {
	return &Policy{
		policy:   bluemonday.StrictPolicy(),
		markdown: goldmark.New(),
	}
}

// SanitizeText renders markdown, drops every tag and returns the remaining
// text with surrounding whitespace removed. List items keep a leading dash.
func (p *Policy) SanitizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(text), &buf); err != nil {
		return text
	}

	htmlText := listItemTags.ReplaceAllString(buf.String(), "- ")
	htmlText = blockTags.ReplaceAllString(htmlText, "\n")

	sanitized := p.policy.Sanitize(htmlText)
	sanitized = extraNewline.ReplaceAllString(sanitized, "\n\n")
	sanitized = html.UnescapeString(sanitized)

	return strings.TrimSpace(sanitized)
}
