package autotree

import (
	"math"
	"strconv"
	"strings"

	"github.com/roach88/oort/internal/ir"
	"github.com/roach88/oort/internal/sparql"
)

// XSD datatype URIs with deterministic scalar coercion.
const (
	XSD        = "http://www.w3.org/2001/XMLSchema#"
	XSDBoolean = XSD + "boolean"
	XSDInteger = XSD + "integer"
	XSDFloat   = XSD + "float"
)

// coercion converts a lexical form; ok=false falls back to a datatype mapping.
type coercion func(lexical string) (v ir.Value, ok bool)

// coercions is the fixed table of deterministic conversions. Nothing else
// is coerced.
var coercions = map[string]coercion{
	// Exactly "true" is true. Every other string, including "True" and
	// "1", is false.
	XSDBoolean: func(s string) (ir.Value, bool) {
		return ir.Bool(s == "true"), true
	},
	XSDInteger: func(s string) (ir.Value, bool) {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, false
		}
		return ir.Int(n), true
	},
	XSDFloat: func(s string) (ir.Value, bool) {
		// INF and NaN have no JSON form and stay wrapped.
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, false
		}
		return ir.Float(f), true
	},
}

// Coerces reports whether typed literals of datatype are turned into scalars.
func Coerces(datatype string) bool {
	_, ok := coercions[datatype]
	return ok
}

// Classify turns a bound term into a raw tree value.
func Classify(term sparql.Term) (ir.Value, error) {
	switch term.Type {
	case sparql.TypeURI:
		return ir.Object{URIKey: ir.String(term.Value)}, nil

	case sparql.TypeBNode:
		return ir.Object{BNodeKey: ir.String(term.Value)}, nil

	case sparql.TypeLiteral:
		if term.Lang != "" {
			return ir.Object{LangKey(term.Lang): ir.String(term.Value)}, nil
		}
		return ir.String(term.Value), nil

	case sparql.TypeTypedLiteral:
		if coerce, ok := coercions[term.Datatype]; ok {
			if v, ok := coerce(term.Value); ok {
				return v, nil
			}
		}
		var datatype ir.Value = ir.Null{}
		if term.Datatype != "" {
			datatype = ir.String(term.Datatype)
		}
		return ir.Object{
			ValueKey:    ir.String(term.Value),
			DatatypeKey: datatype,
		}, nil

	default:
		return nil, &ClassificationError{Term: term}
	}
}
