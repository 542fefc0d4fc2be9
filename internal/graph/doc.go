// Package graph turns a raw tree into a graph of resources.
//
// Raw nodes that share an identity key ("$uri" first, then "$id") resolve
// to one *Resource, so a subtree that refers back to an ancestor produces a
// true reference cycle. Nodes with neither key are never indexed and never
// merged.
//
// A Lens controls how resources are allocated, merged, and annotated with
// via back-references, and how literal values are cast. Three lenses are
// provided:
//
//	Basic      shallow copy, overwrite merge, identity cast
//	Localized  Basic plus language mappings resolved to one string
//	Plain      Localized plus resource_uri and uri_term fields
//
// The identity index belongs to one Builder. Reusing a Builder across
// unrelated trees accumulates index state; use NewBuilder per build for
// isolation. Builders are not safe for concurrent use.
package graph
