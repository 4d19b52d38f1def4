package mdimport

import (
	"fmt"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

// Importer translates Markdown source into the Block Document Model: a block
// table, a parent->children adjacency map, and a text-run map. Construction
// fixes the Markdown dialect once; Import itself opens its own session per
// call, so an Importer is safe for concurrent use by independent callers.
type Importer struct {
	md goldmark.Markdown
}

// NewImporter builds an Importer from opts, or DefaultOptions() when opts is
// nil.
func NewImporter(opts *Options) *Importer {
	if opts == nil {
		opts = DefaultOptions()
	}
	resolved := *opts
	return &Importer{md: buildMarkdown(&resolved)}
}

// session is the exclusively-owned, single-call state threaded through the
// walker, inline folder, and structural rewriters: the source buffer being
// parsed and the id allocator. Importer itself carries none of this, so two
// concurrent Import calls never share mutable state; the in-progress
// DocumentData is passed by exclusive reference and never aliased.
type session struct {
	md     goldmark.Markdown
	source []byte
	ids    *idAllocator
}

// Import translates markdown into a DocumentData snapshot rooted at pageID.
func (im *Importer) Import(pageID, markdown string) (*DocumentData, error) {
	source := []byte(markdown)
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%w: source is not valid UTF-8", ErrParseMarkdown)
	}

	root := im.md.Parser().Parse(text.NewReader(source))
	if root == nil {
		return nil, fmt.Errorf("%w: parser produced no document", ErrParseMarkdown)
	}

	doc := &DocumentData{
		PageID: pageID,
		Blocks: map[string]Block{},
		Meta: DocumentMeta{
			ChildrenMap: map[string][]string{},
			TextMap:     map[string]Delta{},
		},
	}

	s := &session{md: im.md, source: source, ids: newIDAllocator()}
	s.walk(doc, root, "", pageID, listContext{})

	return doc, nil
}
