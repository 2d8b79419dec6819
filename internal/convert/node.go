// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert transforms OneNote XHTML page content into Markdown.
// The page markup is parsed into a tree of typed nodes, then rendered by
// a structural walk with one rule per node kind.
package convert

// Kind identifies the structural role of a markup tree node.
type Kind int

const (
	// KindText is a text leaf; Text holds the literal payload.
	KindText Kind = iota
	// KindParagraph is a block of flowing content (p, div).
	KindParagraph
	// KindHeading is a heading; Level holds the depth (1-6).
	KindHeading
	// KindBold is strong emphasis (strong, b).
	KindBold
	// KindItalic is emphasis (em, i).
	KindItalic
	// KindUnorderedList is a bulleted list (ul).
	KindUnorderedList
	// KindOrderedList is a numbered list (ol).
	KindOrderedList
	// KindListItem is one list entry (li).
	KindListItem
	// KindInlineCode is an inline code span (code).
	KindInlineCode
	// KindCodeBlock is a preformatted block (pre).
	KindCodeBlock
	// KindLink is a hyperlink (a); Attr holds href.
	KindLink
	// KindImage is an image (img); Attr holds src and alt.
	KindImage
	// KindLineBreak is a hard line break (br).
	KindLineBreak
	// KindIgnored is markup that produces no output and whose children
	// are never visited (meta, style, script).
	KindIgnored
	// KindGeneric is any element with no rendering of its own; its
	// children render as if the wrapper were absent.
	KindGeneric
)

// Node is one node of a parsed markup tree. A node owns its children
// exclusively; trees are never shared or cyclic.
type Node struct {
	Kind Kind

	// Level is the heading depth (1-6) for KindHeading nodes.
	Level int

	// Text is the literal payload of KindText leaves.
	Text string

	// Attr holds element attributes the renderer consumes: href for
	// links, src and alt for images. Nil when the element carried none.
	Attr map[string]string

	Children []*Node
}
