// Package media discovers, fetches and names the remote images referenced by a
// document tree.
//
// Resolution runs in three steps:
//
//  1. Discover walks the tree and returns each distinct image URL once.
//  2. Resolver.Resolve fetches every URL concurrently and waits for all of them.
//  3. FileName derives the local file name from the URL's last path segment.
//
// A failed fetch is logged and left out of the resulting Map. Renderers fall
// back to the original URL for anything missing from the Map.
package media
