package pypi

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/libscope/pkg/integrations"
)

// SearchHit is one result scraped from the PyPI search page.
type SearchHit struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// SearchPage scrapes one page of https://pypi.org/search/ results.
// PyPI has no JSON search API, so the rendered listing is parsed instead.
func (c *Client) SearchPage(ctx context.Context, query string, page int) ([]SearchHit, error) {
	if page < 1 {
		page = 1
	}
	url := fmt.Sprintf("%s/search/?q=%s&page=%d", c.baseURL, integrations.URLEncode(query), page)

	var hits []SearchHit
	err := c.Cached(ctx, fmt.Sprintf("search:%s:%d", strings.ToLower(query), page), false, &hits, func() error {
		body, err := c.GetText(ctx, url)
		if err != nil {
			return fmt.Errorf("search page: %w", err)
		}
		parsed, err := ParseSearchHTML(body)
		if err != nil {
			return err
		}
		hits = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// ParseSearchHTML extracts package snippets from a rendered search page.
func ParseSearchHTML(body string) ([]SearchHit, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var hits []SearchHit
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "package-snippet") {
			hit := SearchHit{
				Name:        textOf(findByClass(n, "span", "package-snippet__name")),
				Version:     textOf(findByClass(n, "span", "package-snippet__version")),
				Description: textOf(findByClass(n, "p", "package-snippet__description")),
			}
			if hit.Name != "" {
				hits = append(hits, hit)
			}
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)
	return hits, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findByClass(n *html.Node, tag, class string) *html.Node {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && ch.Data == tag && hasClass(ch, class) {
			return ch
		}
		if found := findByClass(ch, tag, class); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			collect(ch)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
