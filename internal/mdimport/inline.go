package mdimport

import (
	"github.com/yuin/goldmark/ast"
	astx "github.com/yuin/goldmark/extension/ast"
)

// Attribute keys used inside a Delta insert's Attributes map.
const (
	AttrBold          = "bold"
	AttrItalic        = "italic"
	AttrStrikethrough = "strikethrough"
	AttrCode          = "code"
	AttrMathInline    = "math_inline"
	AttrLink          = "link"
)

const kindInlineMath = "InlineMath"

// isInlineNode reports whether node is one of the kinds the walker forwards
// straight to the inline folder without creating a block of its own: Text,
// InlineCode, InlineMath, Strong, Emphasis, Delete, Link (including
// autolinks), Break, plus inline raw HTML.
//
// goldmark has no distinct Strong node (ast.Emphasis carries both weights
// via Level) and no distinct Break node (breaks are flags on ast.Text), so
// those two kinds fold into the Text/Emphasis cases below rather than
// needing their own goldmark node type.
func isInlineNode(node ast.Node) bool {
	switch node.(type) {
	case *ast.Text, *ast.CodeSpan, *ast.Emphasis, *astx.Strikethrough, *ast.Link, *ast.AutoLink, *ast.RawHTML:
		return true
	}
	return node.Kind().String() == kindInlineMath
}

// attrSet is a small immutable-by-convention attribute set: callers copy
// before extending so sibling branches of the fold never alias one
// another's set.
type attrSet map[string]any

func (a attrSet) with(key string, value any) attrSet {
	next := make(attrSet, len(a)+1)
	for k, v := range a {
		next[k] = v
	}
	next[key] = value
	return next
}

// foldInline attributes the inline subtree rooted at node to parentBlockID's
// delta, applying attrs (already unioned from ancestors) to every leaf
// segment produced. It hangs off session rather than Importer because it
// reads the per-call source buffer; Importer itself is reused across
// concurrent calls and owns no per-call state.
func (s *session) foldInline(doc *DocumentData, node ast.Node, parentBlockID string, attrs attrSet) {
	switch n := node.(type) {
	case *ast.Text:
		value := string(n.Segment.Value(s.source))
		if value != "" {
			insertDelta(doc, parentBlockID, DeltaInsert{Insert: value, Attributes: attrsOrNil(attrs)})
		}
		if n.HardLineBreak() || n.SoftLineBreak() {
			insertDelta(doc, parentBlockID, DeltaInsert{Insert: "\n"})
		}

	case *ast.CodeSpan:
		value := codeSpanText(n, s.source)
		insertDelta(doc, parentBlockID, DeltaInsert{Insert: value, Attributes: attrsOrNil(attrs.with(AttrCode, true))})

	case *ast.Emphasis:
		key := AttrItalic
		if n.Level >= 2 {
			key = AttrBold
		}
		s.foldInlineChildren(doc, n, parentBlockID, attrs.with(key, true))

	case *astx.Strikethrough:
		s.foldInlineChildren(doc, n, parentBlockID, attrs.with(AttrStrikethrough, true))

	case *ast.Link:
		s.foldInlineChildren(doc, n, parentBlockID, attrs.with(AttrLink, string(n.Destination)))

	case *ast.AutoLink:
		label := string(n.Label(s.source))
		url := string(n.URL(s.source))
		insertDelta(doc, parentBlockID, DeltaInsert{Insert: label, Attributes: attrsOrNil(attrs.with(AttrLink, url))})

	case *ast.RawHTML:
		// Inline raw HTML (e.g. a stray <br> inside a paragraph) has no
		// Lines() of its own -- its content lives on Segments -- so it's
		// extracted with contentFromSegments and degraded the same way a
		// whole unrecognized HTML block is: tags stripped, <br> to newline.
		raw := string(contentFromSegments(n.Segments, s.source))
		if value := htmlFragmentTextRaw(raw); value != "" {
			insertDelta(doc, parentBlockID, DeltaInsert{Insert: value, Attributes: attrsOrNil(attrs)})
		}

	default:
		if node.Kind().String() == kindInlineMath {
			// goldmark-mathjax's InlineMath node type is unexported, so it's
			// addressed only by Kind().String() and its literal content
			// recovered through the same best-effort textual extraction used
			// for unhandled nodes rather than a type assertion to a concrete
			// type we can't name.
			value := renderNodeText(node, s.source)
			insertDelta(doc, parentBlockID, DeltaInsert{Insert: value, Attributes: attrsOrNil(attrs.with(AttrMathInline, true))})
			return
		}
		// Not classified as inline by isInlineNode but reached here via a
		// non-inline-only fold context (e.g. a callout/toggle re-parse):
		// conservatively serialize to a single plain segment.
		insertDelta(doc, parentBlockID, DeltaInsert{Insert: renderNodeText(node, s.source), Attributes: attrsOrNil(attrs)})
	}
}

func (s *session) foldInlineChildren(doc *DocumentData, node ast.Node, parentBlockID string, attrs attrSet) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		s.foldInline(doc, child, parentBlockID, attrs)
	}
}

// walkInlineChildren is the entry point used by the walker and by
// paragraph/heading handling: fold every inline child of node into
// parentBlockID's delta with an empty starting attribute set.
func (s *session) walkInlineChildren(doc *DocumentData, node ast.Node, parentBlockID string) {
	s.foldInlineChildren(doc, node, parentBlockID, attrSet{})
}

func attrsOrNil(a attrSet) map[string]any {
	if len(a) == 0 {
		return nil
	}
	return map[string]any(a)
}

// codeSpanText concatenates a CodeSpan's child Text segments. Unlike block
// nodes, CodeSpan has no Lines() of its own; its literal content lives on
// the Text/RawHTML children goldmark splits it into.
func codeSpanText(n *ast.CodeSpan, source []byte) string {
	var buf []byte
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf = append(buf, t.Segment.Value(source)...)
		}
	}
	return string(buf)
}
