package autotree

import (
	"slices"
	"strings"
)

// VarNode is one level of the naming tree.
type VarNode struct {
	// Singular is set when the segment carried the singular prefix.
	Singular bool

	// Var is the full variable name whose terms feed this level. When
	// several variables share a prefix, the first in sorted order wins.
	Var string

	// Children holds nested segments.
	Children VarModel
}

// VarModel maps a segment key to its naming node.
type VarModel map[string]*VarNode

// Keys returns the segment keys in sorted order.
func (m VarModel) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ParseVarModel builds the naming tree for a set of variable names.
// Names are processed in sorted order so the result does not depend on
// projection order. Malformed names degrade to single-segment paths.
func ParseVarModel(vars []string, opts Options) VarModel {
	opts = opts.withDefaults()

	sorted := slices.Clone(vars)
	slices.Sort(sorted)

	model := VarModel{}
	for _, name := range sorted {
		level := model
		for _, key := range strings.Split(name, opts.Separator) {
			singular := false
			if strings.HasPrefix(key, opts.SingularPrefix) {
				singular = true
				key = key[len(opts.SingularPrefix):]
			}
			node, ok := level[key]
			if !ok {
				node = &VarNode{Singular: singular, Var: name, Children: VarModel{}}
				level[key] = node
			}
			level = node.Children
		}
	}
	return model
}
