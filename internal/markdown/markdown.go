// Package markdown renders model output that arrives formatted as markdown.
package markdown

import (
	"html"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML renders markdown to HTML with common extensions enabled.
func ToHTML(md string) string {
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
	})
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	return string(markdown.Render(doc, renderer))
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// ToPlainText renders md and drops all markup, leaving text suitable for
// pasting into another model's input box.
func ToPlainText(md string) string {
	text := html.UnescapeString(StripHTMLTags(ToHTML(md)))
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// StripHTMLTags removes anything between angle brackets.
func StripHTMLTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, ch := range s {
		switch {
		case ch == '<':
			inTag = true
		case ch == '>':
			inTag = false
		case !inTag:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
