package mdimport

import (
	"github.com/yuin/goldmark/ast"
	astx "github.com/yuin/goldmark/extension/ast"
)

// walk is the block walker's dispatch order: a sequence of checks, each
// either handling node completely or falling through to the next. parentID
// is the block this node's own emitted block (if any) attaches under;
// preassignedID, when non-empty, is used instead of allocating a fresh id --
// used exactly once, for the root page block.
func (s *session) walk(doc *DocumentData, node ast.Node, parentID, preassignedID string, lc listContext) {
	// An inline node reached directly. Paragraph/Heading handling below
	// calls foldInlineChildren instead of recursing through walk, so this
	// only fires if some caller hands walk an inline node directly.
	if isInlineNode(node) {
		s.foldInline(doc, node, parentID, attrSet{})
		return
	}

	// A closing HTML sentinel. The children-level rewriter already consumes
	// these; reaching one here means it was handled there.
	if html, ok := node.(*ast.HTMLBlock); ok {
		switch htmlBlockText(html, s.source) {
		case tagAsideClose, tagDetailsClose:
			return
		}
	}

	// List containers never get their own block.
	if list, ok := node.(*ast.List); ok {
		childLC := listContext{kind: listKindFor(list), start: orderedListStart(list)}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			s.walk(doc, item, parentID, "", childLC)
		}
		return
	}

	// Image promotion, checked before the generic Paragraph/Table branches.
	if img, ok := asImageOnlyParagraph(node); ok {
		s.promoteImage(doc, img, parentID)
		return
	}
	if img, ok := asBareImage(node); ok {
		s.promoteImage(doc, img, parentID)
		return
	}

	// The Notion columns recognizer is checked before the generic Table
	// branch.
	if table, ok := node.(*astx.Table); ok && s.isNotionColumnsTable(table) {
		s.rewriteColumns(doc, table, parentID)
		return
	}

	// Generic block emission, then recurse by node kind.
	id := preassignedID
	if id == "" {
		id = s.ids.fresh()
	}
	ty, data := buildBlock(node, lc, s.source)
	doc.Blocks[id] = newBlock(id, ty, data, parentID)
	ensureChildrenEntry(doc, id)
	linkChild(doc, parentID, id)

	switch n := node.(type) {
	case *ast.Document:
		s.walkChildren(doc, n, id, listContext{})

	case *ast.Paragraph:
		s.walkInlineChildren(doc, n, id)

	case *ast.TextBlock:
		s.walkInlineChildren(doc, n, id)

	case *ast.Heading:
		s.walkInlineChildren(doc, n, id)

	case *ast.Blockquote:
		s.walkHeadSplit(doc, n, id, lc)

	case *ast.ListItem:
		s.walkHeadSplit(doc, n, id, lc)

	case *ast.FencedCodeBlock:
		insertDelta(doc, id, DeltaInsert{Insert: string(contentFromLinesRaw(n, s.source))})

	case *ast.CodeBlock:
		insertDelta(doc, id, DeltaInsert{Insert: string(contentFromLinesRaw(n, s.source))})

	case *astx.Table:
		s.rewriteTable(doc, n, id)

	case *ast.HTMLBlock:
		degradeHTMLBlock(doc, id, htmlBlockText(n, s.source))

	default:
		insertDelta(doc, id, DeltaInsert{Insert: renderNodeText(n, s.source)})
	}
}

// walkHeadSplit implements the Blockquote/ListItem head-paragraph split: if
// the first child is a Paragraph -- or a TextBlock, which is what goldmark
// emits in its place for a *tight* list item's own text -- its inline
// content becomes id's own delta directly (rather than a nested paragraph
// block); the remaining siblings walk as id's children, preserving the
// caller's list context so a nested list inside a list item still sees the
// right kind/start.
func (s *session) walkHeadSplit(doc *DocumentData, node ast.Node, id string, lc listContext) {
	first := node.FirstChild()
	if first == nil {
		return
	}
	rest := first
	switch first.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		s.walkInlineChildren(doc, first, id)
		rest = first.NextSibling()
	}
	s.walkSiblings(doc, rest, id, lc)
}

// walkChildren walks node's children under parentID.
func (s *session) walkChildren(doc *DocumentData, node ast.Node, parentID string, lc listContext) {
	s.walkSiblings(doc, node.FirstChild(), parentID, lc)
}

// walkSiblings walks first and its following siblings under parentID,
// intercepting <aside>/<details> HTML fragment sequences via the
// children-level rewriter before falling through to ordinary per-child
// dispatch.
func (s *session) walkSiblings(doc *DocumentData, first ast.Node, parentID string, lc listContext) {
	child := first
	for child != nil {
		if html, ok := child.(*ast.HTMLBlock); ok {
			if next, handled := s.rewriteHTMLFragment(doc, html, parentID); handled {
				child = next
				continue
			}
		}
		next := child.NextSibling()
		s.walk(doc, child, parentID, "", lc)
		child = next
	}
}
