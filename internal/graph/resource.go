package graph

import (
	"slices"

	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/ir"
)

// Via maps a field key to the resources that reached a resource through it,
// in the order they were recorded.
type Via map[string][]*Resource

// List is a resolved list field. Elements are ir.Value, *Resource or List.
type List []any

// Resource is a node of the built graph.
//
// Field values are one of ir.Value (literals), *Resource, List, Via, or any
// value a Lens's CastLiteral returns. Resources are shared by pointer, so a
// change made after construction is visible through every holder.
type Resource struct {
	fields map[string]any
}

// NewResource returns an empty resource.
func NewResource() *Resource {
	return &Resource{fields: make(map[string]any)}
}

// Get returns the value of a field and whether it is set.
func (r *Resource) Get(key string) (any, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Field returns the value of a field, or nil.
func (r *Resource) Field(key string) any {
	return r.fields[key]
}

// Set assigns a field.
func (r *Resource) Set(key string, v any) {
	r.fields[key] = v
}

// Delete removes a field.
func (r *Resource) Delete(key string) {
	delete(r.fields, key)
}

// Keys returns the field keys in sorted order.
func (r *Resource) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of fields.
func (r *Resource) Len() int {
	return len(r.fields)
}

// URI returns the "$uri" field if it is a string.
func (r *Resource) URI() (string, bool) {
	return r.stringField(autotree.URIKey)
}

// ID returns the "$id" field if it is a string.
func (r *Resource) ID() (string, bool) {
	return r.stringField(autotree.BNodeKey)
}

func (r *Resource) stringField(key string) (string, bool) {
	s, ok := r.fields[key].(ir.String)
	return string(s), ok
}

// Via returns the back-reference map stored under key, or nil.
func (r *Resource) Via(key string) Via {
	v, _ := r.fields[key].(Via)
	return v
}

// Resource returns the field as a resource, or nil.
func (r *Resource) Resource(key string) *Resource {
	child, _ := r.fields[key].(*Resource)
	return child
}

// List returns the field as a list, or nil.
func (r *Resource) List(key string) List {
	l, _ := r.fields[key].(List)
	return l
}
