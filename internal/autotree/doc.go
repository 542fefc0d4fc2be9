// Package autotree turns flat SPARQL result rows into a nested raw tree.
//
// The shape of the tree is driven entirely by variable naming. Variable
// names are split on a separator (default "__") into paths, so
//
//	?person ?person__name ?person__1_homepage
//
// yields a "person" list whose elements carry a "name" list and a single
// "homepage" value. A segment starting with the singular prefix (default
// "1_") collapses its list to one value.
//
// Bound terms are classified into tree values:
//
//	uri            {"$uri": value}
//	bnode          {"$id": value}
//	literal        value, or {"@lang": value} when language-tagged
//	typed-literal  a coerced scalar for xsd:boolean, xsd:integer and
//	               xsd:float, otherwise {"$value": value, "$datatype": dt}
//
// PRECONDITION: rows must arrive sorted consistently with the variable
// hierarchy. Grouping only merges contiguous runs of equal terms (like a
// streaming group-by), so a row order that interleaves parents splits them
// into separate nodes, which the duplicate check below only partly repairs.
//
// Duplicate check: before a new node is appended to a field, it is dropped
// when an equal node already exists, or when an already added mapping holds
// every key of the new mapping with an equal value. This is a known
// approximation, not an exact multiset diff.
package autotree
