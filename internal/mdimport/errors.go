package mdimport

import "errors"

// ErrParseMarkdown is returned when the underlying Markdown parser rejects
// the input. It is the only call-level error Import ever surfaces; every
// other degenerate case (unknown node kinds, malformed embedded HTML,
// inner-parse failures on callout/toggle content) is handled internally by
// the degradation paths elsewhere in this package.
var ErrParseMarkdown = errors.New("mdimport: could not parse markdown source")
