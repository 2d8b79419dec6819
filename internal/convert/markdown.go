// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"
)

// ToMarkdown parses page content and renders it as Markdown, trimmed of
// leading and trailing whitespace. This is the one-call form used by the
// export driver.
func ToMarkdown(content string) (string, error) {
	root, err := Parse(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(Markdown(root)), nil
}

// Markdown renders a markup tree as Markdown text. Rendering is
// deterministic and side-effect free; every kind has a defined rule, and
// unknown kinds fall back to rendering children with no added markup.
func Markdown(n *Node) string {
	switch n.Kind {
	case KindText:
		return n.Text

	case KindParagraph:
		content := renderChildren(n)
		if strings.TrimSpace(content) == "" {
			return ""
		}
		return content + "\n\n"

	case KindHeading:
		level := n.Level
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + strings.TrimSpace(renderChildren(n)) + "\n\n"

	case KindBold:
		return "**" + renderChildren(n) + "**"

	case KindItalic:
		return "*" + renderChildren(n) + "*"

	case KindUnorderedList:
		// Only direct list-item children belong to this list; a nested
		// list inside an item renders during that item's own pass.
		var b strings.Builder
		for _, c := range n.Children {
			if c.Kind == KindListItem {
				b.WriteString(Markdown(c))
			}
		}
		return b.String()

	case KindOrderedList:
		var b strings.Builder
		num := 0
		for _, c := range n.Children {
			if c.Kind != KindListItem {
				continue
			}
			num++
			fmt.Fprintf(&b, "%d. %s\n", num, strings.TrimSpace(renderChildren(c)))
		}
		b.WriteString("\n")
		return b.String()

	case KindListItem:
		return "- " + strings.TrimSpace(renderChildren(n)) + "\n"

	case KindInlineCode:
		return "`" + renderChildren(n) + "`"

	case KindCodeBlock:
		return "```\n" + renderChildren(n) + "\n```\n\n"

	case KindLink:
		href := n.Attr["href"]
		if href == "" {
			href = "#"
		}
		return "[" + renderChildren(n) + "](" + href + ")"

	case KindImage:
		alt := n.Attr["alt"]
		if alt == "" {
			alt = "image"
		}
		return "![" + alt + "](" + n.Attr["src"] + ")"

	case KindLineBreak:
		return "\n"

	case KindIgnored:
		return ""

	case KindGeneric:
		return renderChildren(n)
	}
	return renderChildren(n)
}

// renderChildren concatenates the rendered children in document order.
func renderChildren(n *Node) string {
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(Markdown(c))
	}
	return b.String()
}
