package text

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var markdownPatterns = []*regexp.Regexp{
	// # Heading
	regexp.MustCompile(`(?m)^#{1,6}\s+.+$`),

	// ``` or ~~~
	regexp.MustCompile("(?m)^(```|~~~)"),

	// - item, * item, 1. item
	regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+.+$`),

	// [text](url), ![alt](url)
	regexp.MustCompile(`!?\[[^\]]+\]\([^)]+\)`),

	// > quote
	regexp.MustCompile(`(?m)^>\s+.+$`),

	// **bold**, __bold__
	regexp.MustCompile(`(\*\*|__)[^\s*_][^*_]*(\*\*|__)`),
}

// IsMarkdown reports whether text shows at least two different markdown features.
func IsMarkdown(text string) bool {
	indicators := 0

	for _, p := range markdownPatterns {
		if p.MatchString(text) {
			indicators++
		}
	}

	return indicators >= 2
}

// PlainText renders markdown to the text a listener should hear. Code blocks
// and raw HTML are dropped, link and image labels are kept.
func PlainText(markdown string) string {
	source := []byte(markdown)

	doc := goldmark.DefaultParser().Parse(gmtext.NewReader(source))

	var b strings.Builder

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(source))

				if node.SoftLineBreak() {
					b.WriteString(" ")
				}

				if node.HardLineBreak() {
					b.WriteString("\n")
				}
			}

		case *ast.String:
			if entering {
				b.Write(node.Value)
			}
		}

		if !entering && n.Type() == ast.TypeBlock && n.Kind() != ast.KindDocument {
			b.WriteString("\n\n")
		}

		return ast.WalkContinue, nil
	})

	return Normalize(b.String())
}
