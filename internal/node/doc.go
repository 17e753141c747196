// Package node models the page-builder document tree.
//
// A document is a sequence of nodes. Each node has a kind (section, column,
// container or widget), an open settings bag and, for non-widget kinds, an
// ordered list of children:
//
//	section
//	└── column
//	    ├── widget (heading)
//	    └── widget (image)
//
// Three document shapes are accepted and tried in order: an object with a
// "content" array, a bare array, and an object with an "elements" array.
// Anything else normalizes to an empty sequence.
//
// Settings are decoded into a closed set of value variants (string, number,
// boolean, nested mapping, absent). Renderers read only the keys they know
// and apply their own defaults.
package node
