package mdimport

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	astx "github.com/yuin/goldmark/extension/ast"
)

// tableRows splits a Table node's children into its header row (nil if
// absent) and its body rows, in document order.
func tableRows(table *astx.Table) (header ast.Node, rows []ast.Node) {
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case astx.KindTableHeader:
			header = child
		case astx.KindTableRow:
			rows = append(rows, child)
		}
	}
	return header, rows
}

func rowCells(row ast.Node) []ast.Node {
	var cells []ast.Node
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cells = append(cells, child)
	}
	return cells
}

// isTableCellEmpty reports whether a cell's textual content, after inline
// extraction and trimming, is empty -- the primitive both thresholds in
// isNotionColumnsTable are built from.
func (s *session) isTableCellEmpty(cell ast.Node) bool {
	return strings.TrimSpace(collectCellText(cell, s.source)) == ""
}

func collectCellText(node ast.Node, source []byte) string {
	var buf strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		buf.WriteString(renderNodeText(child, source))
	}
	return buf.String()
}

// isNotionColumnsTable recognizes a table shape produced by exporters that
// encode a multi-column layout as an all-empty-header table rather than
// tabular data. The thresholds (an all-empty body with at least 6 columns,
// or at least one non-empty body cell with at most 5 columns and at most 3
// body rows) are heuristic and kept exact rather than
// tuned, since they exist to match a specific known exporter's output shape.
func (s *session) isNotionColumnsTable(table *astx.Table) bool {
	header, rows := tableRows(table)
	if header == nil || len(rows) == 0 {
		return false
	}

	headerCells := rowCells(header)
	if len(headerCells) < 2 {
		return false
	}
	for _, cell := range headerCells {
		if !s.isTableCellEmpty(cell) {
			return false
		}
	}

	colCount := len(headerCells)
	for _, row := range rows {
		if len(rowCells(row)) != colCount {
			return false
		}
	}

	allBodyEmpty, anyBodyNonEmpty := true, false
	for _, row := range rows {
		for _, cell := range rowCells(row) {
			if s.isTableCellEmpty(cell) {
				continue
			}
			allBodyEmpty = false
			anyBodyNonEmpty = true
		}
	}

	if allBodyEmpty && colCount >= 6 {
		return true
	}
	return anyBodyNonEmpty && colCount <= 5 && len(rows) <= 3
}

// rewriteColumns rewrites a recognized columns table: one SimpleColumns
// block under parentID, one SimpleColumn child per column index, and for
// each non-empty body cell a fresh Paragraph synthesized under that column
// with the cell's inline children folded into it. Empty cells contribute
// nothing.
func (s *session) rewriteColumns(doc *DocumentData, table *astx.Table, parentID string) {
	_, rows := tableRows(table)

	columnsID := s.ids.fresh()
	columns := newBlock(columnsID, BlockTypeSimpleColumns, nil, parentID)
	doc.Blocks[columnsID] = columns
	ensureChildrenEntry(doc, columnsID)
	linkChild(doc, parentID, columnsID)

	colCount := 0
	if len(rows) > 0 {
		colCount = len(rowCells(rows[0]))
	}

	columnIDs := make([]string, colCount)
	for c := 0; c < colCount; c++ {
		id := s.ids.fresh()
		block := newBlock(id, BlockTypeSimpleColumn, nil, columnsID)
		doc.Blocks[id] = block
		ensureChildrenEntry(doc, id)
		linkChild(doc, columnsID, id)
		columnIDs[c] = id
	}

	for _, row := range rows {
		for c, cell := range rowCells(row) {
			if c >= colCount || s.isTableCellEmpty(cell) {
				continue
			}
			pID := s.ids.fresh()
			p := newBlock(pID, BlockTypeParagraph, nil, columnIDs[c])
			doc.Blocks[pID] = p
			ensureChildrenEntry(doc, pID)
			linkChild(doc, columnIDs[c], pID)
			s.foldInlineChildren(doc, cell, pID, attrSet{})
		}
	}
}
