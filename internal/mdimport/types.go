// Package mdimport converts Markdown source into the collaborative editor's
// Block Document Model: a block table, a parent->children adjacency map, and a
// text-run map, all keyed by block id.
package mdimport

// BlockType is one of the closed set of block type tags a Block may carry.
// The string values are part of the wire contract and must not change
// independently of downstream consumers.
type BlockType string

const (
	BlockTypePage            BlockType = "page"
	BlockTypeParagraph       BlockType = "paragraph"
	BlockTypeHeading         BlockType = "heading"
	BlockTypeBulletedList    BlockType = "bulleted_list"
	BlockTypeNumberedList    BlockType = "numbered_list"
	BlockTypeTodoList        BlockType = "todo_list"
	BlockTypeQuote           BlockType = "quote"
	BlockTypeCode            BlockType = "code"
	BlockTypeDivider         BlockType = "divider"
	BlockTypeImage           BlockType = "image"
	BlockTypeSimpleColumns   BlockType = "simple_columns"
	BlockTypeSimpleColumn    BlockType = "simple_column"
	BlockTypeSimpleTable     BlockType = "simple_table"
	BlockTypeSimpleTableRow  BlockType = "simple_table_row"
	BlockTypeSimpleTableCell BlockType = "simple_table_cell"
	BlockTypeCallout         BlockType = "callout"
	BlockTypeToggleList      BlockType = "toggle_list"
	BlockTypeText            BlockType = "text"
)

// Attribute keys recognized in Block.Data.
const (
	DataLevel     = "level"
	DataStart     = "start"
	DataChecked   = "checked"
	DataLanguage  = "language"
	DataURL       = "url"
	DataImageType = "image_type"
	DataRow       = "row"
	DataCol       = "col"
	DataAlign     = "align"
	DataIcon      = "icon"
)

const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

const ImageTypeExternal = "external"

const externalTypeText = "text"

// Block is a single node of the document tree.
type Block struct {
	ID           string         `json:"id"`
	Type         BlockType      `json:"ty"`
	Data         map[string]any `json:"data"`
	Parent       string         `json:"parent"`
	Children     string         `json:"children"`
	ExternalID   *string        `json:"external_id,omitempty"`
	ExternalType *string        `json:"external_type,omitempty"`
}

// DocumentMeta carries the adjacency and text-run maps alongside the blocks.
type DocumentMeta struct {
	ChildrenMap map[string][]string `json:"children_map"`
	TextMap     map[string]Delta    `json:"text_map"`
}

// DocumentData is the full snapshot produced by Import.
type DocumentData struct {
	PageID string           `json:"page_id"`
	Blocks map[string]Block `json:"blocks"`
	Meta   DocumentMeta     `json:"meta"`
}

// DeltaInsert is a single rich-text run: a literal text value plus the set of
// formatting attributes that apply to it.
type DeltaInsert struct {
	Insert     string         `json:"insert"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Delta is an ordered sequence of DeltaInsert runs.
type Delta []DeltaInsert

// newBlock builds a block along the generic path: children equals id, and
// external_id/external_type point at the block's own text payload. This is
// the path used for every block type except the raw image/simple-table-row/
// simple-table-cell blocks synthesized directly by the structural rewriters
// (see newContainerBlock, newImageBlock below) -- every ordinary node goes
// through it regardless of whether that node type ends up carrying text.
func newBlock(id string, ty BlockType, data map[string]any, parentID string) Block {
	if data == nil {
		data = map[string]any{}
	}
	extID, extType := id, externalTypeText
	return Block{
		ID:           id,
		Type:         ty,
		Data:         data,
		Parent:       parentID,
		Children:     id,
		ExternalID:   &extID,
		ExternalType: &extType,
	}
}

// newContainerBlock builds a pure-container block with no external text
// payload: simple_table_row and simple_table_cell. children still equals id.
func newContainerBlock(id string, ty BlockType, data map[string]any, parentID string) Block {
	if data == nil {
		data = map[string]any{}
	}
	return Block{
		ID:       id,
		Type:     ty,
		Data:     data,
		Parent:   parentID,
		Children: id,
	}
}

// newImageBlock builds an image block: no children (the image never has
// children of its own) and no external text payload.
func newImageBlock(id string, url string, parentID string) Block {
	return Block{
		ID:   id,
		Type: BlockTypeImage,
		Data: map[string]any{
			DataURL:       url,
			DataImageType: ImageTypeExternal,
		},
		Parent:   parentID,
		Children: "",
	}
}
