// Package render turns normalized document nodes into Keitaro landing-page
// markup.
//
// Structural nodes (section, column, container) become wrapper elements whose
// children are rendered depth-first in their original order. Widgets are
// dispatched on their widget kind; unknown kinds degrade to a labeled
// placeholder, unknown node kinds to a plain container. Neither is an error.
//
// Text settings are emitted as-is: the document is trusted input and may carry
// markup of its own. Attribute values are quote-escaped so they cannot break
// out of their attribute.
package render
