package dom

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// Decode wraps r so that Windows-1252 bytes come out as UTF-8.
func Decode(r io.Reader) io.Reader {
	return charmap.Windows1252.NewDecoder().Reader(r)
}

// Parse builds the document tree from decoded text.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ChildByTag returns the first direct child element of n with the given tag.
func ChildByTag(n *html.Node, tag string) (*html.Node, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c, true
		}
	}
	return nil, false
}

// ChildrenByTag returns all direct child elements of n with the given tag.
func ChildrenByTag(n *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// Attr returns the value of the named attribute on n.
func Attr(n *html.Node, name string) (string, bool) {
	if n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the content of the first text-node child of n.
func Text(n *html.Node) (string, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data, true
		}
	}
	return "", false
}

// TextNodes returns the contents of all text-node children of n, in order.
func TextNodes(n *html.Node) []string {
	var texts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			texts = append(texts, c.Data)
		}
	}
	return texts
}
