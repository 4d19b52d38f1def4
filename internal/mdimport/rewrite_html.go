package mdimport

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
)

const (
	tagAsideOpen    = "<aside>"
	tagAsideClose   = "</aside>"
	tagDetailsOpen  = "<details>"
	tagDetailsClose = "</details>"
	tagSummaryOpen  = "<summary>"
	tagSummaryClose = "</summary>"
)

// htmlBlockText returns an HTMLBlock's trimmed raw content, the form every
// sentinel and tag comparison in this file operates on: literal string
// matching, never DOM parsing.
func htmlBlockText(html *ast.HTMLBlock, source []byte) string {
	return string(contentFromLines(html, source))
}

// rewriteHTMLFragment is the children-level rewriter's entry point: called
// by walkSiblings before it would otherwise dispatch html through the
// ordinary block walker. Returns the sibling to resume iteration from and
// whether it recognized (and so fully consumed) the fragment.
func (s *session) rewriteHTMLFragment(doc *DocumentData, html *ast.HTMLBlock, parentID string) (ast.Node, bool) {
	text := htmlBlockText(html, s.source)
	switch {
	case strings.HasPrefix(text, tagAsideOpen):
		return s.rewriteAside(doc, html, parentID), true
	case strings.HasPrefix(text, tagDetailsOpen):
		return s.rewriteDetails(doc, html, parentID), true
	default:
		return nil, false
	}
}

// rewriteAside turns an <aside>...</aside> fragment into a Callout block.
func (s *session) rewriteAside(doc *DocumentData, html *ast.HTMLBlock, parentID string) ast.Node {
	raw := htmlBlockText(html, s.source)
	inner := strings.TrimPrefix(raw, tagAsideOpen)

	closedInline := strings.HasSuffix(inner, tagAsideClose)
	if closedInline {
		inner = strings.TrimSuffix(inner, tagAsideClose)
	}

	icon, body := extractLeadingIcon(inner)

	data := map[string]any{}
	if icon != "" {
		data[DataIcon] = icon
	}

	id := s.ids.fresh()
	block := newBlock(id, BlockTypeCallout, data, parentID)
	doc.Blocks[id] = block
	ensureChildrenEntry(doc, id)
	linkChild(doc, parentID, id)

	s.secondaryParse(doc, id, strings.TrimSpace(body), secondaryParseInline, listContext{})

	next := html.NextSibling()
	if closedInline {
		return next
	}
	return s.consumeSiblingsAsChildren(doc, next, id, tagAsideClose)
}

// extractLeadingIcon strips a single leading non-alphanumeric rune from s
// and returns it as the icon, along with the remainder. This strips one
// *character* (rune), not a full grapheme cluster, so a multi-codepoint
// emoji may be split -- preserved for compatibility rather than "fixed".
func extractLeadingIcon(s string) (icon, rest string) {
	if s == "" {
		return "", ""
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return "", s
	}
	return string(r), s[size:]
}

// rewriteDetails turns a <details>...</details> fragment into a ToggleList
// block.
func (s *session) rewriteDetails(doc *DocumentData, html *ast.HTMLBlock, parentID string) ast.Node {
	id := s.ids.fresh()
	block := newBlock(id, BlockTypeToggleList, nil, parentID)
	doc.Blocks[id] = block
	ensureChildrenEntry(doc, id)
	linkChild(doc, parentID, id)

	raw := htmlBlockText(html, s.source)
	inner := strings.TrimPrefix(raw, tagDetailsOpen)

	closedInline := strings.HasSuffix(inner, tagDetailsClose)
	if closedInline {
		inner = strings.TrimSuffix(inner, tagDetailsClose)
	}

	next := html.NextSibling()
	summaryConsumed := false

	if summary, body, ok := extractInlineSummary(inner); ok {
		s.secondaryParse(doc, id, strings.TrimSpace(summary), secondaryParseInline, listContext{})
		summaryConsumed = true
		if strings.TrimSpace(body) != "" {
			s.secondaryParse(doc, id, strings.TrimSpace(body), secondaryParseContainer, listContext{})
		}
	}

	if !summaryConsumed {
		if sibling, ok := next.(*ast.HTMLBlock); ok {
			sibText := htmlBlockText(sibling, s.source)
			if strings.HasPrefix(sibText, tagSummaryOpen) {
				summary := extractStandaloneSummary(sibText)
				s.secondaryParse(doc, id, strings.TrimSpace(summary), secondaryParseInline, listContext{})
				summaryConsumed = true
				next = sibling.NextSibling()
			}
		}
	}
	// Only the first <summary> is ever consumed; a later <summary> sibling
	// falls through to consumeSiblingsAsChildren below and walks as an
	// ordinary child.

	if closedInline {
		return next
	}
	return s.consumeSiblingsAsChildren(doc, next, id, tagDetailsClose)
}

// extractInlineSummary looks for a <summary>...</summary> pair within a
// single details opening fragment. rest is whatever followed the closing
// </summary> tag within that same fragment -- the details body text that
// gets re-parsed in container mode: paragraph/heading content joins the
// toggle's own delta, other blocks become its children.
func extractInlineSummary(inner string) (summary, rest string, ok bool) {
	start := strings.Index(inner, tagSummaryOpen)
	if start == -1 {
		return "", inner, false
	}
	afterOpen := inner[start+len(tagSummaryOpen):]
	end := strings.Index(afterOpen, tagSummaryClose)
	if end == -1 {
		return "", inner, false
	}
	return afterOpen[:end], afterOpen[end+len(tagSummaryClose):], true
}

func extractStandaloneSummary(text string) string {
	inner := strings.TrimPrefix(text, tagSummaryOpen)
	return strings.TrimSuffix(inner, tagSummaryClose)
}

// consumeSiblingsAsChildren walks start and its following siblings as
// children of parentID -- honoring further nested aside/details fragments --
// until an HTMLBlock whose trimmed text equals closeTag is reached (which is
// itself consumed, not walked as a block). Returns the sibling following the
// consumed closing tag, or nil if the closing tag was never found: this is
// best-effort, the blocks synthesized so far are kept and nothing past the
// unterminated fragment is reached from this call.
func (s *session) consumeSiblingsAsChildren(doc *DocumentData, start ast.Node, parentID, closeTag string) ast.Node {
	child := start
	for child != nil {
		if html, ok := child.(*ast.HTMLBlock); ok {
			if htmlBlockText(html, s.source) == closeTag {
				return child.NextSibling()
			}
			if next, handled := s.rewriteHTMLFragment(doc, html, parentID); handled {
				child = next
				continue
			}
		}
		next := child.NextSibling()
		s.walk(doc, child, parentID, "", listContext{})
		child = next
	}
	return nil
}
