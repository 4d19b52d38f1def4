package mdimport

import (
	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Options configures the Markdown dialect the Importer understands. The zero
// value is not valid; use DefaultOptions or NewImporter(nil) to get the
// GFM-plus-all-constructs default.
type Options struct {
	GFM                      bool
	StrikethroughSingleTilde bool
	MathText                 bool
	MathFlow                 bool
	Autolink                 bool
}

// DefaultOptions returns GFM plus math text/flow, autolink, and single-tilde
// strikethrough all enabled.
func DefaultOptions() *Options {
	return &Options{
		GFM:                      true,
		StrikethroughSingleTilde: true,
		MathText:                 true,
		MathFlow:                 true,
		Autolink:                 true,
	}
}

// buildMarkdown constructs the goldmark.Markdown instance matching opts. The
// same configuration must be used for the outer parse and every re-entrant
// parse of inner HTML content, so that content is interpreted with the
// identical dialect as the surrounding document.
func buildMarkdown(opts *Options) goldmark.Markdown {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.Table, extension.Strikethrough, extension.TaskList)
		// goldmark's strikethrough extension always matches GFM's double-tilde
		// form; it has no single-tilde toggle to wire StrikethroughSingleTilde
		// into, so the field is accepted but currently has no effect on
		// parsing (see DESIGN.md).
	}
	if opts.Autolink {
		exts = append(exts, extension.Linkify)
	}
	if opts.MathText || opts.MathFlow {
		exts = append(exts, mathjax.MathJax)
	}

	return goldmark.New(goldmark.WithExtensions(exts...))
}
