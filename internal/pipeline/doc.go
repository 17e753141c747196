// Package pipeline implements the stages that turn rendered page content
// into deliverable files.
//
// Stages:
//   - Document shell: wraps rendered sections in the landing-page document
//     (meta tags, stylesheet link, tracking stubs)
//   - Error page: the document substituted when a conversion fails
//   - Inlining: folds the stylesheet and fetched images into one HTML file
//   - Minification: optional HTML/CSS size reduction
//
// Rendering of the node tree itself lives in internal/render. This package
// only sees HTML strings and the asset map.
package pipeline
