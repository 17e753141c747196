package render

import "errors"

// ErrMaxDepth indicates the document nests deeper than MaxDepth.
var ErrMaxDepth = errors.New("document nesting exceeds maximum depth")
