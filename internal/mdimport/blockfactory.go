package mdimport

import (
	"github.com/yuin/goldmark/ast"
	astx "github.com/yuin/goldmark/extension/ast"
)

// listKind identifies which of the three list block types a ListItem's
// enclosing list context maps to.
type listKind int

const (
	listKindNone listKind = iota
	listKindBulleted
	listKindNumbered
	listKindTodo
)

// listContext threads list kind and ordered-list start number through
// recursion as a plain argument, never a mutable global.
type listContext struct {
	kind  listKind
	start int
}

// buildBlock maps an AST node already decided to need its own block to a
// type tag and data bag. It does not allocate an id, register the block, or
// recurse into children — that is the walker's job.
func buildBlock(node ast.Node, lc listContext, source []byte) (BlockType, map[string]any) {
	switch n := node.(type) {
	case *ast.Document:
		return BlockTypePage, nil

	case *ast.Paragraph, *ast.TextBlock:
		return BlockTypeParagraph, nil

	case *ast.Heading:
		return BlockTypeHeading, map[string]any{DataLevel: n.Level}

	case *ast.ListItem:
		switch lc.kind {
		case listKindNumbered:
			return BlockTypeNumberedList, map[string]any{DataStart: lc.start}
		case listKindTodo:
			return BlockTypeTodoList, map[string]any{DataChecked: listItemChecked(n)}
		default:
			return BlockTypeBulletedList, nil
		}

	case *ast.Blockquote:
		return BlockTypeQuote, nil

	case *ast.FencedCodeBlock:
		return BlockTypeCode, map[string]any{DataLanguage: string(n.Language(source))}

	case *ast.CodeBlock:
		return BlockTypeCode, map[string]any{DataLanguage: ""}

	case *ast.ThematicBreak:
		return BlockTypeDivider, nil

	case *astx.Table:
		return BlockTypeSimpleTable, nil

	default:
		return BlockTypeText, nil
	}
}

// listKindFor decides the list context's kind for a list container node. A
// goldmark ast.List is a todo list when
// its items carry task checkboxes (extension.TaskList marks this via the
// astx.TaskCheckBox child on each ListItem's first paragraph) rather than via
// a distinct container node kind.
func listKindFor(list *ast.List) listKind {
	if list.IsOrdered() {
		return listKindNumbered
	}
	if listHasTaskItems(list) {
		return listKindTodo
	}
	return listKindBulleted
}

func listHasTaskItems(list *ast.List) bool {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if firstChildHasCheckbox(item) {
			return true
		}
	}
	return false
}

func firstChildHasCheckbox(item ast.Node) bool {
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		for grand := child.FirstChild(); grand != nil; grand = grand.NextSibling() {
			if _, ok := grand.(*astx.TaskCheckBox); ok {
				return true
			}
		}
	}
	return false
}

// listItemChecked reports a todo list item's checkbox state, defaulting to
// false when no checkbox is found (should not happen once listKindTodo has
// been selected, but malformed input must never panic).
func listItemChecked(item ast.Node) bool {
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		for grand := child.FirstChild(); grand != nil; grand = grand.NextSibling() {
			if box, ok := grand.(*astx.TaskCheckBox); ok {
				return box.IsChecked
			}
		}
	}
	return false
}

// orderedListStart extracts an OrderedList's starting number, defaulting to
// 1 when unset.
func orderedListStart(list *ast.List) int {
	if list.Start <= 0 {
		return 1
	}
	return list.Start
}

// columnAlign maps a goldmark table alignment constant onto the
// "left"|"center"|"right" string Data.align carries, defaulting to left.
func columnAlign(a astx.Alignment) string {
	switch a {
	case astx.AlignCenter:
		return AlignCenter
	case astx.AlignRight:
		return AlignRight
	default:
		return AlignLeft
	}
}
