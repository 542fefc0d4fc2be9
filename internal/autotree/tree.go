package autotree

import (
	"errors"

	"github.com/roach88/oort/internal/ir"
	"github.com/roach88/oort/internal/sparql"
)

// Default naming conventions.
const (
	DefaultSeparator      = "__"
	DefaultSingularPrefix = "1_"
)

// Options configures tree building.
type Options struct {
	// Separator splits variable names into path segments. Default "__".
	Separator string

	// SingularPrefix marks a segment as single-valued. Default "1_".
	SingularPrefix string

	// Strict makes singular fields with several values fail with a
	// CardinalityError instead of keeping the first value.
	Strict bool
}

// DefaultOptions returns the lax default configuration.
func DefaultOptions() Options {
	return Options{
		Separator:      DefaultSeparator,
		SingularPrefix: DefaultSingularPrefix,
	}
}

func (o Options) withDefaults() Options {
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	if o.SingularPrefix == "" {
		o.SingularPrefix = DefaultSingularPrefix
	}
	return o
}

// Treeify builds a raw tree from a parsed SPARQL result.
func Treeify(res *sparql.Result, opts Options) (ir.Object, error) {
	root := ir.Object{}
	if err := Fill(root, res.Vars(), res.Bindings(), opts); err != nil {
		return nil, err
	}
	return root, nil
}

// Fill populates root with one field per top-level naming segment.
// Existing fields of root with the same keys are replaced.
func Fill(root ir.Object, vars []string, bindings []sparql.Binding, opts Options) error {
	opts = opts.withDefaults()
	return fillNodes(ParseVarModel(vars, opts), root, bindings, opts.Strict)
}

func fillNodes(model VarModel, tree ir.Object, bindings []sparql.Binding, strict bool) error {
	for _, key := range model.Keys() {
		vn := model[key]

		var nodes []ir.Value
		for _, group := range groupConsecutive(bindings, vn.Var) {
			if group.term.IsZero() {
				continue
			}

			node, err := Classify(group.term)
			if err != nil {
				var ce *ClassificationError
				if errors.As(err, &ce) {
					ce.Var = vn.Var
				}
				return err
			}

			if containsEquivalent(nodes, node) {
				continue
			}
			nodes = append(nodes, node)

			// Literal nodes have nowhere to put children.
			if obj, ok := node.(ir.Object); ok && len(vn.Children) > 0 {
				if err := fillNodes(vn.Children, obj, group.rows, strict); err != nil {
					return err
				}
			}
		}

		if vn.Singular {
			one, err := oneify(nodes, strict)
			if err != nil {
				var ce *CardinalityError
				if errors.As(err, &ce) {
					ce.Key, ce.Var = key, vn.Var
				}
				return err
			}
			tree[key] = one
		} else {
			tree[key] = append(ir.Array{}, nodes...)
		}
	}
	return nil
}

// bindingGroup is a contiguous run of rows sharing one term for a variable.
type bindingGroup struct {
	term sparql.Term
	rows []sparql.Binding
}

// groupConsecutive splits rows into contiguous runs keyed by the term bound
// to varName. Equal terms separated by a different term form separate runs.
func groupConsecutive(bindings []sparql.Binding, varName string) []bindingGroup {
	var groups []bindingGroup
	start := 0
	for i := 1; i <= len(bindings); i++ {
		if i < len(bindings) && bindings[i][varName] == bindings[start][varName] {
			continue
		}
		groups = append(groups, bindingGroup{term: bindings[start][varName], rows: bindings[start:i]})
		start = i
	}
	return groups
}

// containsEquivalent is the duplicate check described in the package docs.
func containsEquivalent(nodes []ir.Value, node ir.Value) bool {
	obj, isObj := node.(ir.Object)
	for _, n := range nodes {
		if ir.Equal(n, node) {
			return true
		}
		if existing, ok := n.(ir.Object); ok && isObj && valuesPresentIn(obj, existing) {
			return true
		}
	}
	return false
}

// valuesPresentIn reports whether every key of sub reads back an equal value
// from super. A missing key reads as null.
func valuesPresentIn(sub, super ir.Object) bool {
	for k, v := range sub {
		got, ok := super[k]
		if !ok {
			got = ir.Null{}
		}
		if !ir.Equal(got, v) {
			return false
		}
	}
	return true
}

// Oneify collapses a field's values to a single value.
//
//   - no values: null
//   - language mappings: every variant merged into one mapping
//   - otherwise the first value; in strict mode more than one value is a
//     CardinalityError
func Oneify(nodes []ir.Value, strict bool) (ir.Value, error) {
	return oneify(nodes, strict)
}

func oneify(nodes []ir.Value, strict bool) (ir.Value, error) {
	if len(nodes) == 0 {
		return ir.Null{}, nil
	}

	first := nodes[0]
	if IsLangNode(first) {
		merged := ir.Object{}
		for _, n := range nodes {
			if !ir.Truthy(n) {
				continue
			}
			if obj, ok := n.(ir.Object); ok {
				k := obj.SortedKeys()[0]
				merged[k] = obj[k]
			} else {
				// A plain value among language variants has no tag.
				merged[""] = n
			}
		}
		return merged, nil
	}

	if strict && len(nodes) > 1 {
		return nil, &CardinalityError{Values: nodes}
	}
	return first, nil
}
