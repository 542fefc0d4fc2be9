package graph

import (
	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/ir"
)

// Strategy builds a resource graph from a raw tree.
type Strategy interface {
	Build(tree ir.Object) *Resource
}

// Builder is the two-pass graph builder: a depth-first walk that indexes
// and merges resources, followed by the lens's Complete hook.
type Builder struct {
	lens  Lens
	index *Index
}

var _ Strategy = (*Builder)(nil)

// NewBuilder returns a builder with a fresh index. A nil lens means BasicLens.
func NewBuilder(lens Lens) *Builder {
	if lens == nil {
		lens = BasicLens{}
	}
	return &Builder{lens: lens, index: NewIndex()}
}

// Index returns the builder's identity index.
func (b *Builder) Index() *Index {
	return b.index
}

// Build resolves tree into a resource. The root is usually anonymous and
// so not indexed itself.
func (b *Builder) Build(tree ir.Object) *Resource {
	root := b.makeResource(tree, "", nil)
	b.lens.Complete(b.index.Resources())
	return root
}

// BuildGraph builds tree with a fresh Builder.
func BuildGraph(tree ir.Object, lens Lens) *Resource {
	return NewBuilder(lens).Build(tree)
}

func (b *Builder) makeResource(raw ir.Object, viaKey string, from *Resource) *Resource {
	res := b.toIndexed(b.lens.NewResource(raw))
	if from != nil {
		b.lens.UpdateVia(res, viaKey, from)
	}
	for _, key := range raw.SortedKeys() {
		res.Set(key, b.process(raw[key], key, res))
	}
	return res
}

// toIndexed registers res, or merges it into the resource already holding
// its identity key and returns that one instead.
func (b *Builder) toIndexed(res *Resource) *Resource {
	existing, ok := b.index.Lookup(res)
	if !ok {
		b.index.Add(res)
		return res
	}
	b.lens.MergeResources(res, existing)
	return existing
}

func (b *Builder) process(v ir.Value, key string, parent *Resource) any {
	switch val := v.(type) {
	case ir.Object:
		if autotree.IsResource(val) {
			return b.makeResource(val, key, parent)
		}
	case ir.Array:
		list := make(List, len(val))
		for i, elem := range val {
			list[i] = b.process(elem, key, parent)
		}
		return list
	}
	return b.lens.CastLiteral(v)
}
