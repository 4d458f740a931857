package parser

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// ExtractText turns an HTML document or fragment into plain text. Full
// articles go through readability; fragments it cannot handle fall back to
// collecting every text node.
func ExtractText(htmlStr string) string {
	if strings.TrimSpace(htmlStr) == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return strings.TrimSpace(htmlStr)
	}

	if article, err := readability.FromDocument(doc, nil); err == nil {
		if text := normalize(article.TextContent); text != "" {
			return text
		}
	}
	return collectText(doc)
}

// collectText joins the non-empty text nodes of n, one per line. script and
// style contents are skipped.
func collectText(n *html.Node) string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				lines = append(lines, strings.Join(strings.Fields(text), " "))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(lines, "\n")
}

// normalize trims every line and drops blank ones.
func normalize(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
