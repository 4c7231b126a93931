// Package loader reads and writes property documents.
//
// A document is YAML whose tagged nodes ("!constant", "!table",
// "!function", "!array", "!numexpr", "!lambda") are dispatched through a
// tag registry to handler functions; the loader itself owns only node
// traversal and the top-level document shape. Construction failures on
// any node abort that document's load.
//
// Loading is single-threaded per document; a returned Document and every
// property inside it are immutable.
package loader
