package graph

import (
	"strings"

	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/ir"
)

// Field keys written by the lenses.
const (
	ViaKey        = "$via"
	PlainViaKey   = "ref_via"
	ExposedURIKey = "resource_uri"
	URITermKey    = "uri_term"
)

// Lens controls resource allocation, merging, via tracking and literal
// casting during a build.
type Lens interface {
	// NewResource allocates a resource from the shallow contents of a raw node.
	NewResource(raw ir.Object) *Resource

	// MergeResources copies the fields of source onto target.
	MergeResources(source, target *Resource)

	// UpdateVia records that from reached res through field key.
	UpdateVia(res *Resource, key string, from *Resource)

	// CastLiteral converts a non-resource value.
	CastLiteral(v ir.Value) any

	// Complete runs once after the build over every indexed resource.
	Complete(resources []*Resource)
}

// BasicLens keeps raw values as they are and stores via references under
// "$via".
type BasicLens struct{}

var _ Lens = BasicLens{}

// NewResource returns a shallow copy of raw.
func (BasicLens) NewResource(raw ir.Object) *Resource {
	res := NewResource()
	for k, v := range raw {
		res.Set(k, v)
	}
	return res
}

// MergeResources overwrites target's fields with source's.
func (BasicLens) MergeResources(source, target *Resource) {
	for k, v := range source.fields {
		target.Set(k, v)
	}
}

// UpdateVia appends from to the "$via" list for key.
func (BasicLens) UpdateVia(res *Resource, key string, from *Resource) {
	appendVia(res, ViaKey, key, from)
}

// CastLiteral returns v unchanged.
func (BasicLens) CastLiteral(v ir.Value) any {
	return v
}

// Complete does nothing.
func (BasicLens) Complete([]*Resource) {}

func appendVia(res *Resource, field, key string, from *Resource) {
	via := res.Via(field)
	if via == nil {
		via = Via{}
		res.Set(field, via)
	}
	via[key] = append(via[key], from)
}

// LocalizedLens resolves language mappings to a single string.
type LocalizedLens struct {
	BasicLens

	// Locale is the preferred language tag, e.g. "en".
	Locale string
}

var _ Lens = LocalizedLens{}

// CastLiteral resolves language mappings and leaves other values alone.
func (l LocalizedLens) CastLiteral(v ir.Value) any {
	if autotree.IsLangNode(v) {
		return Localize(v.(ir.Object), l.Locale)
	}
	return l.BasicLens.CastLiteral(v)
}

// Localize picks one variant from a language mapping: the locale's variant
// when it is set and non-empty, else the first variant in key order, else
// null.
func Localize(obj ir.Object, locale string) ir.Value {
	if len(obj) == 0 {
		return ir.Null{}
	}
	if v, ok := obj[autotree.LangKey(locale)]; ok && ir.Truthy(v) {
		return v
	}
	return obj[obj.SortedKeys()[0]]
}

// PlainLens is LocalizedLens with the URI exposed under "resource_uri", its
// leaf under "uri_term", and via references under "ref_via".
type PlainLens struct {
	LocalizedLens
}

var _ Lens = PlainLens{}

// NewPlainLens returns a PlainLens for locale.
func NewPlainLens(locale string) PlainLens {
	return PlainLens{LocalizedLens{Locale: locale}}
}

// NewResource copies raw and adds the URI aliases.
func (l PlainLens) NewResource(raw ir.Object) *Resource {
	res := l.LocalizedLens.NewResource(raw)
	ExposeURI(res)
	return res
}

// UpdateVia appends from to the "ref_via" list for key.
func (PlainLens) UpdateVia(res *Resource, key string, from *Resource) {
	appendVia(res, PlainViaKey, key, from)
}

// ExposeURI sets "resource_uri" and "uri_term" when res has a non-empty URI.
func ExposeURI(res *Resource) {
	uri, ok := res.URI()
	if !ok || uri == "" {
		return
	}
	res.Set(ExposedURIKey, ir.String(uri))
	res.Set(URITermKey, ir.String(URITerm(uri)))
}

// URITerm returns the part of uri after the last "#", or after the last "/"
// when there is no "#".
func URITerm(uri string) string {
	if i := strings.LastIndexByte(uri, '#'); i >= 0 {
		return uri[i+1:]
	}
	return uri[strings.LastIndexByte(uri, '/')+1:]
}
