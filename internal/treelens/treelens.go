// Package treelens is a single-pass alternative to graph.Builder.
//
// Nodes are constructed eagerly: each raw node casts its fields, recursing
// into child resources, and then indexes itself. A node whose identity key
// is already indexed copies its fields and via references onto the indexed
// instance and is discarded; parents substitute the indexed instance so
// only one instance per identity key is observable.
//
// Because a node indexes itself after its children, the first instance of a
// key to finish construction becomes canonical. Build returns the canonical
// instance of the root.
package treelens

import (
	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/graph"
	"github.com/roach88/oort/internal/ir"
)

// Config selects the lens behaviour.
type Config struct {
	// Locale picks the variant of language mappings, e.g. "en".
	Locale string

	// Plain exposes "resource_uri", "uri_term" and, on every node,
	// "ref_via". Otherwise via references appear under "$via" on nodes
	// that have any.
	Plain bool
}

// Lens builds graphs with a shared identity index. It is not safe for
// concurrent use, and reusing it across builds accumulates index state.
type Lens struct {
	cfg   Config
	index *graph.Index
	vias  map[*graph.Resource]graph.Via
}

var _ graph.Strategy = (*Lens)(nil)

// New returns a tree lens with a fresh index.
func New(cfg Config) *Lens {
	return &Lens{
		cfg:   cfg,
		index: graph.NewIndex(),
		vias:  make(map[*graph.Resource]graph.Via),
	}
}

// Build builds tree with a fresh tree lens.
func Build(tree ir.Object, cfg Config) *graph.Resource {
	return New(cfg).Build(tree)
}

// Index returns the lens's identity index.
func (l *Lens) Index() *graph.Index {
	return l.index
}

// Build constructs tree and returns the canonical instance of its root.
func (l *Lens) Build(tree ir.Object) *graph.Resource {
	root := l.construct(tree, nil)
	l.exposeVias()
	return l.index.Canonical(root)
}

func (l *Lens) construct(raw ir.Object, via graph.Via) *graph.Resource {
	if via == nil {
		via = graph.Via{}
	}

	res := graph.NewResource()
	for k, v := range raw {
		res.Set(k, v)
	}
	l.vias[res] = via

	for _, key := range raw.SortedKeys() {
		res.Set(key, l.cast(raw[key], key, res))
	}

	l.indexNode(res)
	if l.cfg.Plain {
		graph.ExposeURI(res)
	}
	return res
}

func (l *Lens) cast(v ir.Value, key string, self *graph.Resource) any {
	switch val := v.(type) {
	case ir.Object:
		if autotree.IsLangNode(val) {
			return graph.Localize(val, l.cfg.Locale)
		}
		if autotree.IsResource(val) {
			return l.index.Canonical(l.child(val, key, self))
		}
	case ir.Array:
		list := make(graph.List, len(val))
		for i, elem := range val {
			if obj, ok := elem.(ir.Object); ok && autotree.IsResource(obj) {
				list[i] = l.index.Canonical(l.child(obj, key, self))
			} else {
				list[i] = elem
			}
		}
		return list
	}
	return v
}

// child constructs a node reached from self through key. The via reference
// points at self's canonical instance when one is already indexed.
func (l *Lens) child(raw ir.Object, key string, self *graph.Resource) *graph.Resource {
	from := l.index.Canonical(self)
	return l.construct(raw, graph.Via{key: {from}})
}

func (l *Lens) indexNode(res *graph.Resource) {
	existing, ok := l.index.Lookup(res)
	if !ok {
		l.index.Add(res)
		return
	}
	if existing == res {
		return
	}

	for _, k := range res.Keys() {
		existing.Set(k, res.Field(k))
	}

	canonical := l.vias[existing]
	for k, refs := range l.vias[res] {
		canonical[k] = append(canonical[k], refs...)
	}
	delete(l.vias, res)
}

// exposeVias stores each node's via map on it. References recorded before
// their target was indexed are redirected to the canonical instance.
func (l *Lens) exposeVias() {
	for res, via := range l.vias {
		for _, refs := range via {
			for i, ref := range refs {
				refs[i] = l.index.Canonical(ref)
			}
		}
		switch {
		case l.cfg.Plain:
			res.Set(graph.PlainViaKey, via)
		case len(via) > 0:
			res.Set(graph.ViaKey, via)
		}
	}
}
