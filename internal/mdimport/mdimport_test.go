package mdimport_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amberpixels/docblocks/internal/mdimport"
	"github.com/amberpixels/docblocks/internal/testhelpers"
)

var importer = mdimport.NewImporter(mdimport.DefaultOptions())

// assertDocumentInvariants checks the structural properties every produced
// snapshot must hold, regardless of the input that produced it.
func assertDocumentInvariants(t *testing.T, doc *mdimport.DocumentData) {
	t.Helper()

	seen := map[string]int{}
	for parent, children := range doc.Meta.ChildrenMap {
		if parent != doc.PageID {
			_, ok := doc.Blocks[parent]
			assert.Truef(t, ok, "children_map key %q has no matching block", parent)
		}
		for _, child := range children {
			_, ok := doc.Blocks[child]
			assert.Truef(t, ok, "children_map value %q has no matching block", child)
			seen[child]++
		}
	}
	for id, count := range seen {
		assert.Equalf(t, 1, count, "id %q appears %d times across children lists, want exactly 1", id, count)
	}

	for id, block := range doc.Blocks {
		if block.Parent == "" {
			continue
		}
		children, ok := doc.Meta.ChildrenMap[block.Parent]
		assert.Truef(t, ok, "block %q's parent %q has no children_map entry", id, block.Parent)
		assert.Containsf(t, children, id, "block %q not listed under its own parent %q in children_map", id, block.Parent)
	}

	for id := range doc.Meta.TextMap {
		_, ok := doc.Blocks[id]
		assert.Truef(t, ok, "text_map key %q has no matching block", id)
	}

	for parentID, children := range doc.Meta.ChildrenMap {
		parent, ok := doc.Blocks[parentID]
		if !ok || parent.Type != mdimport.BlockTypeParagraph {
			continue
		}
		if len(children) != 1 {
			continue
		}
		only, ok := doc.Blocks[children[0]]
		assert.Falsef(t, ok && only.Type == mdimport.BlockTypeImage, "paragraph block %q has a sole image child; images must be promoted", parentID)
	}
}

// normalizeIDs renumbers every generated id in doc, in children-map traversal
// order from the root, so two snapshots of the same input can be compared
// for structural equality despite carrying independently generated ids.
func normalizeIDs(doc *mdimport.DocumentData) *mdimport.DocumentData {
	idMap := map[string]string{doc.PageID: doc.PageID}
	counter := 0

	var walk func(id string)
	walk = func(id string) {
		for _, child := range doc.Meta.ChildrenMap[id] {
			if _, ok := idMap[child]; !ok {
				idMap[child] = fmt.Sprintf("b%d", counter)
				counter++
				walk(child)
			}
		}
	}
	walk(doc.PageID)

	mapID := func(id string) string {
		if id == "" {
			return ""
		}
		if mapped, ok := idMap[id]; ok {
			return mapped
		}
		return id
	}

	out := &mdimport.DocumentData{
		PageID: doc.PageID,
		Blocks: make(map[string]mdimport.Block, len(doc.Blocks)),
		Meta: mdimport.DocumentMeta{
			ChildrenMap: make(map[string][]string, len(doc.Meta.ChildrenMap)),
			TextMap:     make(map[string]mdimport.Delta, len(doc.Meta.TextMap)),
		},
	}
	for id, block := range doc.Blocks {
		nb := block
		nb.ID = mapID(id)
		nb.Parent = mapID(block.Parent)
		nb.Children = mapID(block.Children)
		if block.ExternalID != nil {
			v := mapID(*block.ExternalID)
			nb.ExternalID = &v
		}
		out.Blocks[nb.ID] = nb
	}
	for parent, children := range doc.Meta.ChildrenMap {
		newChildren := make([]string, len(children))
		for i, c := range children {
			newChildren[i] = mapID(c)
		}
		out.Meta.ChildrenMap[mapID(parent)] = newChildren
	}
	for id, delta := range doc.Meta.TextMap {
		out.Meta.TextMap[mapID(id)] = delta
	}
	return out
}

func TestImport_TitleAndBoldParagraph(t *testing.T) {
	doc, err := importer.Import("P", "# Title\n\nHello **world**")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	children := doc.Meta.ChildrenMap["P"]
	require.Len(t, children, 2)
	headingID, paragraphID := children[0], children[1]

	heading := doc.Blocks[headingID]
	assert.Equal(t, mdimport.BlockTypeHeading, heading.Type)
	assert.Equal(t, 1, heading.Data[mdimport.DataLevel])
	assert.Equal(t, mdimport.Delta{{Insert: "Title"}}, doc.Meta.TextMap[headingID])

	paragraph := doc.Blocks[paragraphID]
	assert.Equal(t, mdimport.BlockTypeParagraph, paragraph.Type)
	assert.Equal(t, mdimport.Delta{
		{Insert: "Hello "},
		{Insert: "world", Attributes: map[string]any{mdimport.AttrBold: true}},
	}, doc.Meta.TextMap[paragraphID])
}

func TestImport_ImagePromotion(t *testing.T) {
	doc, err := importer.Import("P", "![](http://x/y.png)")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	children := doc.Meta.ChildrenMap["P"]
	require.Len(t, children, 1)

	img := doc.Blocks[children[0]]
	assert.Equal(t, mdimport.BlockTypeImage, img.Type)
	assert.Equal(t, "http://x/y.png", img.Data[mdimport.DataURL])
	assert.Equal(t, mdimport.ImageTypeExternal, img.Data[mdimport.DataImageType])
	assert.Empty(t, img.Children)
}

func TestImport_SimpleTable(t *testing.T) {
	doc, err := importer.Import("P", "| Col1 | Col2 |\n|------|------|\n| a    | b    |\n")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	pageChildren := doc.Meta.ChildrenMap["P"]
	require.Len(t, pageChildren, 1)
	table := doc.Blocks[pageChildren[0]]
	assert.Equal(t, mdimport.BlockTypeSimpleTable, table.Type)

	rows := doc.Meta.ChildrenMap[table.ID]
	require.Len(t, rows, 2)

	bodyRow := doc.Blocks[rows[1]]
	assert.Equal(t, mdimport.BlockTypeSimpleTableRow, bodyRow.Type)

	cells := doc.Meta.ChildrenMap[bodyRow.ID]
	require.Len(t, cells, 2)

	for col, cellID := range cells {
		cell := doc.Blocks[cellID]
		assert.Equal(t, mdimport.BlockTypeSimpleTableCell, cell.Type)
		assert.Equal(t, 1, cell.Data[mdimport.DataRow])
		assert.Equal(t, col, cell.Data[mdimport.DataCol])
		assert.Equal(t, mdimport.AlignLeft, cell.Data[mdimport.DataAlign])

		paragraphChildren := doc.Meta.ChildrenMap[cell.ID]
		require.Len(t, paragraphChildren, 1)
		paragraph := doc.Blocks[paragraphChildren[0]]
		assert.Equal(t, mdimport.BlockTypeParagraph, paragraph.Type)
	}

	aCell := doc.Blocks[cells[0]]
	paragraphA := doc.Meta.ChildrenMap[aCell.ID][0]
	assert.Equal(t, mdimport.Delta{{Insert: "a"}}, doc.Meta.TextMap[paragraphA])
}

func TestImport_NotionColumnsTable(t *testing.T) {
	source := "|  |  |  |  |  |  |\n" +
		"|--|--|--|--|--|--|\n" +
		"|  |  |  |  |  |  |\n"
	doc, err := importer.Import("P", source)
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	pageChildren := doc.Meta.ChildrenMap["P"]
	require.Len(t, pageChildren, 1)
	columns := doc.Blocks[pageChildren[0]]
	assert.Equal(t, mdimport.BlockTypeSimpleColumns, columns.Type)

	columnIDs := doc.Meta.ChildrenMap[columns.ID]
	require.Len(t, columnIDs, 6)
	for _, colID := range columnIDs {
		col := doc.Blocks[colID]
		assert.Equal(t, mdimport.BlockTypeSimpleColumn, col.Type)
		assert.Empty(t, doc.Meta.ChildrenMap[colID], "empty columns table must not synthesize any paragraphs")
	}
}

func TestImport_BlockquoteWithTwoParagraphs(t *testing.T) {
	doc, err := importer.Import("P", "> quote text\n>\n> nested")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	pageChildren := doc.Meta.ChildrenMap["P"]
	require.Len(t, pageChildren, 1)
	quote := doc.Blocks[pageChildren[0]]
	assert.Equal(t, mdimport.BlockTypeQuote, quote.Type)
	assert.Equal(t, mdimport.Delta{{Insert: "quote text"}}, doc.Meta.TextMap[quote.ID])

	quoteChildren := doc.Meta.ChildrenMap[quote.ID]
	require.Len(t, quoteChildren, 1)
	nested := doc.Blocks[quoteChildren[0]]
	assert.Equal(t, mdimport.BlockTypeParagraph, nested.Type)
	assert.Equal(t, mdimport.Delta{{Insert: "nested"}}, doc.Meta.TextMap[nested.ID])
}

func TestImport_AsideBecomesCallout(t *testing.T) {
	doc, err := importer.Import("P", "<aside>\U0001F4A1 Be careful</aside>")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	pageChildren := doc.Meta.ChildrenMap["P"]
	require.Len(t, pageChildren, 1)
	callout := doc.Blocks[pageChildren[0]]
	assert.Equal(t, mdimport.BlockTypeCallout, callout.Type)
	assert.Equal(t, "\U0001F4A1", callout.Data[mdimport.DataIcon])
	assert.Equal(t, mdimport.Delta{{Insert: "Be careful"}}, doc.Meta.TextMap[callout.ID])
}

func TestImport_DetailsBecomesToggleWithSummary(t *testing.T) {
	doc, err := importer.Import("P", "<details><summary>More info</summary>hidden body</details>")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	pageChildren := doc.Meta.ChildrenMap["P"]
	require.Len(t, pageChildren, 1)
	toggle := doc.Blocks[pageChildren[0]]
	assert.Equal(t, mdimport.BlockTypeToggleList, toggle.Type)
	assert.Equal(t, mdimport.Delta{{Insert: "More info"}, {Insert: "hidden body"}}, doc.Meta.TextMap[toggle.ID])
}

func TestImport_TodoList(t *testing.T) {
	doc, err := importer.Import("P", "- [ ] Item 1\n- [x] Item 2\n")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	children := doc.Meta.ChildrenMap["P"]
	require.Len(t, children, 2)

	first := doc.Blocks[children[0]]
	assert.Equal(t, mdimport.BlockTypeTodoList, first.Type)
	assert.Equal(t, false, first.Data[mdimport.DataChecked])

	second := doc.Blocks[children[1]]
	assert.Equal(t, mdimport.BlockTypeTodoList, second.Type)
	assert.Equal(t, true, second.Data[mdimport.DataChecked])
}

func TestImport_NestedEmphasisComposesAttributes(t *testing.T) {
	doc, err := importer.Import("P", "***both***")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	children := doc.Meta.ChildrenMap["P"]
	require.Len(t, children, 1)
	delta := doc.Meta.TextMap[children[0]]
	require.Len(t, delta, 1)
	assert.Equal(t, "both", delta[0].Insert)
	assert.Equal(t, true, delta[0].Attributes[mdimport.AttrBold])
	assert.Equal(t, true, delta[0].Attributes[mdimport.AttrItalic])
}

func TestImport_Idempotent(t *testing.T) {
	const source = `# Title

Hello **world**

- item 1
- item 2

> quote

| a | b |
|---|---|
| 1 | 2 |
`
	doc1, err := importer.Import("P", source)
	require.NoError(t, err)
	doc2, err := importer.Import("P", source)
	require.NoError(t, err)

	assertDocumentInvariants(t, doc1)
	assertDocumentInvariants(t, doc2)

	assert.Equal(t, normalizeIDs(doc1), normalizeIDs(doc2))
}

func TestImport_BlockScenarios(t *testing.T) {
	type AssertFunc = func(t *testing.T, source string, check func(t *testing.T, doc *mdimport.DocumentData))
	type TestFunc = func(name string, source string, check func(t *testing.T, doc *mdimport.DocumentData))

	f, ff, xf, run := testhelpers.GenerateCases[TestFunc, AssertFunc](t, func(t *testing.T, source string, check func(t *testing.T, doc *mdimport.DocumentData)) {
		doc, err := importer.Import("P", source)
		require.NoError(t, err)
		assertDocumentInvariants(t, doc)
		check(t, doc)
	})
	_, _, _ = f, ff, xf

	f("Divider", "---", func(t *testing.T, doc *mdimport.DocumentData) {
		children := doc.Meta.ChildrenMap["P"]
		require.Len(t, children, 1)
		assert.Equal(t, mdimport.BlockTypeDivider, doc.Blocks[children[0]].Type)
	})

	f("Fenced code block carries language", "```go\nfmt.Println(1)\n```", func(t *testing.T, doc *mdimport.DocumentData) {
		children := doc.Meta.ChildrenMap["P"]
		require.Len(t, children, 1)
		code := doc.Blocks[children[0]]
		assert.Equal(t, mdimport.BlockTypeCode, code.Type)
		assert.Equal(t, "go", code.Data[mdimport.DataLanguage])
		assert.Equal(t, mdimport.Delta{{Insert: "fmt.Println(1)"}}, doc.Meta.TextMap[code.ID])
	})

	f("Strikethrough", "~~gone~~", func(t *testing.T, doc *mdimport.DocumentData) {
		children := doc.Meta.ChildrenMap["P"]
		require.Len(t, children, 1)
		delta := doc.Meta.TextMap[children[0]]
		require.Len(t, delta, 1)
		assert.Equal(t, true, delta[0].Attributes[mdimport.AttrStrikethrough])
	})

	f("Inline code", "Run `go build`", func(t *testing.T, doc *mdimport.DocumentData) {
		children := doc.Meta.ChildrenMap["P"]
		require.Len(t, children, 1)
		delta := doc.Meta.TextMap[children[0]]
		require.Len(t, delta, 2)
		assert.Equal(t, "go build", delta[1].Insert)
		assert.Equal(t, true, delta[1].Attributes[mdimport.AttrCode])
	})

	f("Markdown link", "[OpenAI](https://openai.com)", func(t *testing.T, doc *mdimport.DocumentData) {
		children := doc.Meta.ChildrenMap["P"]
		require.Len(t, children, 1)
		delta := doc.Meta.TextMap[children[0]]
		require.Len(t, delta, 1)
		assert.Equal(t, "OpenAI", delta[0].Insert)
		assert.Equal(t, "https://openai.com", delta[0].Attributes[mdimport.AttrLink])
	})

	f("Bare autolink", "https://openai.com", func(t *testing.T, doc *mdimport.DocumentData) {
		children := doc.Meta.ChildrenMap["P"]
		require.Len(t, children, 1)
		delta := doc.Meta.TextMap[children[0]]
		require.Len(t, delta, 1)
		assert.Equal(t, "https://openai.com", delta[0].Insert)
		assert.Equal(t, "https://openai.com", delta[0].Attributes[mdimport.AttrLink])
	})

	f("Nested bulleted list", "- Item 1\n  - Sub 1.1\n- Item 2\n", func(t *testing.T, doc *mdimport.DocumentData) {
		children := doc.Meta.ChildrenMap["P"]
		require.Len(t, children, 2)
		item1 := doc.Blocks[children[0]]
		assert.Equal(t, mdimport.BlockTypeBulletedList, item1.Type)
		subChildren := doc.Meta.ChildrenMap[item1.ID]
		require.Len(t, subChildren, 1)
		assert.Equal(t, mdimport.BlockTypeBulletedList, doc.Blocks[subChildren[0]].Type)
	})

	f("Ordered list carries start number", "5. Item 1\n6. Item 2\n", func(t *testing.T, doc *mdimport.DocumentData) {
		children := doc.Meta.ChildrenMap["P"]
		require.Len(t, children, 2)
		item1 := doc.Blocks[children[0]]
		assert.Equal(t, mdimport.BlockTypeNumberedList, item1.Type)
		assert.Equal(t, 5, item1.Data[mdimport.DataStart])
	})

	run()
}

func TestImport_RejectsInvalidUTF8(t *testing.T) {
	_, err := importer.Import("P", string([]byte{0xff, 0xfe, 0xfd}))
	require.Error(t, err)
	assert.ErrorIs(t, err, mdimport.ErrParseMarkdown)
}

func TestImport_UnrecognizedHTMLDegradesToText(t *testing.T) {
	doc, err := importer.Import("P", "<center>\nHello<br>World\n</center>")
	require.NoError(t, err)
	assertDocumentInvariants(t, doc)

	children := doc.Meta.ChildrenMap["P"]
	require.Len(t, children, 1)
	block := doc.Blocks[children[0]]
	delta := doc.Meta.TextMap[block.ID]
	require.Len(t, delta, 1)
	assert.Equal(t, "Hello\nWorld", delta[0].Insert)
}
