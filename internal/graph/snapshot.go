package graph

import (
	"fmt"

	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/ir"
)

// Snapshot renders a graph as a raw value tree that can be marshaled and
// compared. Each resource is expanded at its first occurrence in sorted key
// order; later occurrences, and every entry of a via map, render as an
// identity stub ({"$uri": ...} or {"$id": ...}).
func Snapshot(root *Resource) ir.Object {
	s := &snapshotter{seen: make(map[*Resource]bool)}
	return s.resource(root)
}

// GraphDigest is the content digest of a graph's snapshot.
func GraphDigest(root *Resource) (string, error) {
	return ir.Digest(ir.DomainGraph, Snapshot(root))
}

// SnapshotValue renders one field value the way Snapshot does, expanding
// every resource it reaches once.
func SnapshotValue(v any) ir.Value {
	s := &snapshotter{seen: make(map[*Resource]bool)}
	return s.value(v)
}

type snapshotter struct {
	seen map[*Resource]bool
}

func (s *snapshotter) resource(r *Resource) ir.Object {
	if s.seen[r] {
		return Stub(r)
	}
	s.seen[r] = true

	out := make(ir.Object, r.Len())
	for _, k := range r.Keys() {
		out[k] = s.value(r.fields[k])
	}
	return out
}

func (s *snapshotter) value(v any) ir.Value {
	switch val := v.(type) {
	case *Resource:
		return s.resource(val)
	case List:
		arr := make(ir.Array, len(val))
		for i, elem := range val {
			arr[i] = s.value(elem)
		}
		return arr
	case Via:
		out := make(ir.Object, len(val))
		for k, froms := range val {
			stubs := make(ir.Array, len(froms))
			for i, from := range froms {
				stubs[i] = Stub(from)
			}
			out[k] = stubs
		}
		return out
	case ir.Value:
		return val
	default:
		if conv, err := ir.FromAny(v); err == nil {
			return conv
		}
		return ir.String(fmt.Sprint(v))
	}
}

// Stub returns the identity of r as an object. An anonymous resource
// renders as an empty object.
func Stub(r *Resource) ir.Object {
	if uri, ok := r.Get(autotree.URIKey); ok {
		return ir.Object{autotree.URIKey: toValue(uri)}
	}
	if id, ok := r.Get(autotree.BNodeKey); ok {
		return ir.Object{autotree.BNodeKey: toValue(id)}
	}
	return ir.Object{}
}

func toValue(v any) ir.Value {
	if iv, ok := v.(ir.Value); ok {
		return iv
	}
	return ir.String(fmt.Sprint(v))
}
