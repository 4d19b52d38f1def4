package mdimport

import (
	"log/slog"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// secondaryParseMode selects how a re-entrant parse's top-level children,
// other than Paragraph/Heading, are consumed.
type secondaryParseMode int

const (
	// secondaryParseInline is used when the caller is acting as an inline
	// context (a callout header, a toggle summary): non-paragraph/heading
	// children degrade to plain text rather than becoming child blocks.
	secondaryParseInline secondaryParseMode = iota
	// secondaryParseContainer is used when the caller is acting as a
	// container (a details body): non-paragraph/heading children recurse as
	// full child blocks under blockID.
	secondaryParseContainer
)

// secondaryParse re-invokes the same Markdown parser used for the outer
// document on substring, using the session's own goldmark instance so the
// same parser options apply throughout a call -- a fresh session wraps the
// substring's own source buffer, never the outer call's, so options are
// never aliased across calls.
//
// Paragraph/Heading children of the re-parsed root fold their inline
// descendants directly into blockID's delta. Other child kinds follow mode.
// A parse that yields no root at all (goldmark itself never rejects
// well-formed UTF-8 input, so this is effectively unreachable, but is
// handled regardless) falls back to inserting substring verbatim.
func (s *session) secondaryParse(doc *DocumentData, blockID, substring string, mode secondaryParseMode, lc listContext) {
	if substring == "" {
		return
	}

	inner := []byte(substring)
	root := s.md.Parser().Parse(text.NewReader(inner))
	if root == nil {
		slog.Warn("inner markdown re-parse produced no document, inserting verbatim", "block_id", blockID, "bytes", len(inner))
		insertDelta(doc, blockID, DeltaInsert{Insert: substring})
		return
	}

	innerSession := &session{md: s.md, source: inner, ids: s.ids}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.Heading:
			innerSession.foldInlineChildren(doc, child, blockID, attrSet{})
		default:
			if mode == secondaryParseContainer {
				innerSession.walk(doc, child, blockID, "", lc)
			} else {
				insertDelta(doc, blockID, DeltaInsert{Insert: renderNodeText(child, inner)})
			}
		}
	}
}
