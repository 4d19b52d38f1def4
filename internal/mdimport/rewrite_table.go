package mdimport

import (
	"github.com/yuin/goldmark/ast"
	astx "github.com/yuin/goldmark/extension/ast"
)

// rewriteTable emits a SimpleTableRow per row (header included), a
// SimpleTableCell per cell carrying row/col/align, and a Paragraph
// synthesized inside each cell to hold its folded inline content. The
// generic Table container block itself has already been emitted by the
// walker's default dispatch path before this is called.
func (s *session) rewriteTable(doc *DocumentData, table *astx.Table, tableID string) {
	header, bodyRows := tableRows(table)
	rows := bodyRows
	if header != nil {
		rows = append([]ast.Node{header}, bodyRows...)
	}

	for i, row := range rows {
		rowID := s.ids.fresh()
		rowBlock := newContainerBlock(rowID, BlockTypeSimpleTableRow, nil, tableID)
		doc.Blocks[rowID] = rowBlock
		ensureChildrenEntry(doc, rowID)
		linkChild(doc, tableID, rowID)

		for j, cell := range rowCells(row) {
			align := AlignLeft
			if tc, ok := cell.(*astx.TableCell); ok {
				align = columnAlign(tc.Alignment)
			}

			cellID := s.ids.fresh()
			cellBlock := newContainerBlock(cellID, BlockTypeSimpleTableCell, map[string]any{
				DataRow:   i,
				DataCol:   j,
				DataAlign: align,
			}, rowID)
			doc.Blocks[cellID] = cellBlock
			ensureChildrenEntry(doc, cellID)
			linkChild(doc, rowID, cellID)

			pID := s.ids.fresh()
			p := newBlock(pID, BlockTypeParagraph, nil, cellID)
			doc.Blocks[pID] = p
			ensureChildrenEntry(doc, pID)
			linkChild(doc, cellID, pID)
			s.foldInlineChildren(doc, cell, pID, attrSet{})
		}
	}
}
