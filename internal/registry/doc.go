// Package registry provides the central "glue" between document tags and
// Go construction code.
//
// The Registry is responsible for storing mappings between the tag
// identifiers used in property documents (e.g., "!constant", "!table")
// and the handler functions that construct the corresponding domain
// objects and represent them back for serialization. The document loader
// dispatches every tagged node through this table rather than deciding
// types itself.
//
// During application startup the registry is populated once and treated
// as read-only afterwards; duplicate registration is a programming error
// and panics.
package registry
