package mdimport

import "github.com/yuin/goldmark/ast"

// asBareImage reports whether node is an Image, returning it if so.
func asBareImage(node ast.Node) (*ast.Image, bool) {
	img, ok := node.(*ast.Image)
	return img, ok
}

// asImageOnlyParagraph reports whether node is a Paragraph -- or a
// TextBlock, goldmark's equivalent wrapper for a tight list item's own text
// -- whose sole child is an Image.
func asImageOnlyParagraph(node ast.Node) (*ast.Image, bool) {
	switch node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
	default:
		return nil, false
	}
	if node.FirstChild() == nil || node.FirstChild() != node.LastChild() {
		return nil, false
	}
	return asBareImage(node.FirstChild())
}

// promoteImage synthesizes an Image block directly under parentID. The
// wrapping Paragraph, if any, is never itself emitted -- no empty paragraph
// block is left behind.
func (s *session) promoteImage(doc *DocumentData, img *ast.Image, parentID string) {
	id := s.ids.fresh()
	block := newImageBlock(id, string(img.Destination), parentID)
	doc.Blocks[id] = block
	ensureChildrenEntry(doc, id)
	linkChild(doc, parentID, id)
}
