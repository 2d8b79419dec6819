// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses OneNote XHTML page content into a markup tree. The tree is
// rooted at the document body when one is present, otherwise at the
// document root.
func Parse(content string) (*Node, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing page content: %w", err)
	}
	root := doc
	if body := findBody(doc); body != nil {
		root = body
	}
	return build(root), nil
}

// findBody locates the body element, which html.Parse synthesizes even for
// fragment input.
func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// build converts one html.Node subtree into a markup tree. Comments,
// doctypes, and other non-content nodes return nil.
func build(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return &Node{Kind: KindText, Text: n.Data}

	case html.ElementNode:
		node := classify(n)
		if node.Kind == KindIgnored {
			// Children are deliberately not walked.
			return node
		}
		appendChildren(node, n)
		return node

	case html.DocumentNode:
		node := &Node{Kind: KindGeneric}
		appendChildren(node, n)
		return node
	}
	return nil
}

func appendChildren(node *Node, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := build(c); child != nil {
			node.Children = append(node.Children, child)
		}
	}
}

// classify maps an HTML element to its node kind and captures the
// attributes the renderer consumes.
func classify(n *html.Node) *Node {
	switch n.DataAtom {
	case atom.P, atom.Div:
		return &Node{Kind: KindParagraph}
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return &Node{Kind: KindHeading, Level: int(n.Data[1] - '0')}
	case atom.Strong, atom.B:
		return &Node{Kind: KindBold}
	case atom.Em, atom.I:
		return &Node{Kind: KindItalic}
	case atom.Ul:
		return &Node{Kind: KindUnorderedList}
	case atom.Ol:
		return &Node{Kind: KindOrderedList}
	case atom.Li:
		return &Node{Kind: KindListItem}
	case atom.Code:
		return &Node{Kind: KindInlineCode}
	case atom.Pre:
		return &Node{Kind: KindCodeBlock}
	case atom.A:
		return &Node{Kind: KindLink, Attr: attrs(n, "href")}
	case atom.Img:
		return &Node{Kind: KindImage, Attr: attrs(n, "src", "alt")}
	case atom.Br:
		return &Node{Kind: KindLineBreak}
	case atom.Meta, atom.Style, atom.Script, atom.Head, atom.Title:
		return &Node{Kind: KindIgnored}
	}
	return &Node{Kind: KindGeneric}
}

// attrs extracts the named attributes from an element. Returns nil when
// none of them are present.
func attrs(n *html.Node, names ...string) map[string]string {
	var m map[string]string
	for _, a := range n.Attr {
		for _, name := range names {
			if a.Key == name {
				if m == nil {
					m = make(map[string]string, len(names))
				}
				m[name] = a.Val
			}
		}
	}
	return m
}
