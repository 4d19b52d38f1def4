package mdimport

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// linesHolder is satisfied by any goldmark block node that exposes its raw
// source via Lines() (code blocks, headings, paragraphs before inline
// children are attached, HTML blocks, ...).
type linesHolder interface {
	Lines() *text.Segments
}

// contentFromLines concatenates every line of a lines-holding node and trims
// surrounding whitespace.
func contentFromLines(v linesHolder, source []byte) []byte {
	lines := v.Lines()
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		buf.Write(lines.At(i).Value(source))
	}
	return bytes.TrimSpace(buf.Bytes())
}

// contentFromLinesRaw is like contentFromLines but preserves the trailing
// newline/whitespace, needed for Code blocks where literal whitespace is
// part of the value and no inline parsing ever applies.
func contentFromLinesRaw(v linesHolder, source []byte) []byte {
	lines := v.Lines()
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		buf.Write(lines.At(i).Value(source))
	}
	return buf.Bytes()
}

func contentFromSegments(segments *text.Segments, source []byte) []byte {
	var buf bytes.Buffer
	for i := 0; i < segments.Len(); i++ {
		buf.Write(segments.At(i).Value(source))
	}
	return buf.Bytes()
}

// renderNodeText recovers a best-effort textual rendering of an arbitrary
// AST node for the default-degradation branch. goldmark has no mdast-style
// to_string(); this substitutes Lines()-based extraction where available and
// otherwise names the node kind.
func renderNodeText(node ast.Node, source []byte) string {
	if t, ok := node.(*ast.Text); ok {
		return string(t.Segment.Value(source))
	}
	if lh, ok := node.(linesHolder); ok {
		return string(contentFromLines(lh, source))
	}
	if node.Type() == ast.TypeInline || node.HasChildren() {
		var buf bytes.Buffer
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			buf.WriteString(renderNodeText(child, source))
		}
		if buf.Len() > 0 {
			return buf.String()
		}
	}
	return "[unsupported: " + node.Kind().String() + "]"
}
