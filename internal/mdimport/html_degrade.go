package mdimport

import (
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// htmlFragmentText degrades a raw HTML fragment to its text content: tags
// are stripped via golang.org/x/net/html, and a <br> becomes a newline so a
// stray line break in embedded HTML still shows up in the resulting delta.
// Surrounding whitespace is trimmed, since this is used for whole HTML
// blocks where leading/trailing blank lines carry no meaning.
// Used for HTML fragments the <aside>/<details> rewriter does not recognize.
func htmlFragmentText(raw string) string {
	return strings.TrimSpace(htmlFragmentTextRaw(raw))
}

// htmlFragmentTextRaw is htmlFragmentText without the trim, for a single
// inline RawHTML node (e.g. a lone <br> in the middle of a paragraph) where
// the produced "\n" is itself the whole payload, not surrounding noise.
func htmlFragmentTextRaw(raw string) string {
	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return buf.String()
		case html.TextToken:
			buf.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				buf.WriteString("\n")
			}
		}
	}
}

// degradeHTMLBlock logs and converts an unrecognized HTML block's raw markup
// into a single plain-text delta segment for blockID.
func degradeHTMLBlock(doc *DocumentData, blockID, raw string) {
	slog.Debug("degraded unrecognized HTML fragment to plain text", "block_id", blockID, "bytes", len(raw))
	insertDelta(doc, blockID, DeltaInsert{Insert: htmlFragmentText(raw)})
}
