// Package extract scrapes post metadata out of rich-text editor HTML.
//
// Extraction is best effort: the first <h2> supplies a title and the first
// <img> supplies a media reference. Input that does not parse into either
// element yields empty Metadata, never an error.
package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Metadata struct {
	// Title is the text content of the first <h2>, nil when there is none.
	Title *string
	// Media is the src attribute of the first <img>, nil when there is none.
	Media *string
}

func Extract(content string) Metadata {
	var meta Metadata

	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return meta
	}

	for _, n := range nodes {
		if meta.Title == nil {
			if h := findFirst(n, atom.H2); h != nil {
				title := textContent(h)
				meta.Title = &title
			}
		}
		if meta.Media == nil {
			if img := findFirst(n, atom.Img); img != nil {
				src := attr(img, "src")
				meta.Media = &src
			}
		}
	}
	return meta
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
