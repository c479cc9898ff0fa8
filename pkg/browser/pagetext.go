package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ExtractVisibleText parses rawHTML and returns the text a user would see,
// with elements that never render (script, style, noscript, templates)
// removed and whitespace collapsed to single spaces.
func ExtractVisibleText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var builder strings.Builder
	collectText(doc, &builder)
	return builder.String(), nil
}

// collectText walks the node tree appending rendered text nodes.
func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}
	if n.Type == html.ElementNode && isNonRenderedElement(strings.ToLower(n.Data)) {
		return
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if builder.Len() > 0 {
				builder.WriteString(" ")
			}
			builder.WriteString(text)
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, builder)
	}
}

// isNonRenderedElement returns true for elements whose text content is
// never shown to the user.
func isNonRenderedElement(tagName string) bool {
	nonRendered := map[string]bool{
		"script":   true,
		"style":    true,
		"noscript": true,
		"template": true,
		"head":     true,
		"iframe":   true,
		"object":   true,
		"embed":    true,
	}
	return nonRendered[tagName]
}
