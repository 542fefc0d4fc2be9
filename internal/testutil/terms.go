// Package testutil provides builders for SPARQL terms and result rows so
// tests can state inputs compactly.
package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/oort/internal/sparql"
)

// URI returns a uri term.
func URI(value string) sparql.Term {
	return sparql.Term{Type: sparql.TypeURI, Value: value}
}

// BNode returns a blank node term.
func BNode(id string) sparql.Term {
	return sparql.Term{Type: sparql.TypeBNode, Value: id}
}

// Literal returns a plain literal term.
func Literal(value string) sparql.Term {
	return sparql.Term{Type: sparql.TypeLiteral, Value: value}
}

// LangLiteral returns a language-tagged literal term.
func LangLiteral(value, lang string) sparql.Term {
	return sparql.Term{Type: sparql.TypeLiteral, Value: value, Lang: lang}
}

// TypedLiteral returns a typed-literal term.
func TypedLiteral(value, datatype string) sparql.Term {
	return sparql.Term{Type: sparql.TypeTypedLiteral, Value: value, Datatype: datatype}
}

// BindingPair is one variable binding for Row.
type BindingPair struct {
	Var  string
	Term sparql.Term
}

// B is a shorthand for BindingPair.
// Example: Row(B("person", URI("http://x/1")), B("person__name", Literal("Ann")))
func B(name string, term sparql.Term) BindingPair {
	return BindingPair{Var: name, Term: term}
}

// Row builds one result row.
func Row(pairs ...BindingPair) sparql.Binding {
	row := make(sparql.Binding, len(pairs))
	for _, p := range pairs {
		row[p.Var] = p.Term
	}
	return row
}

// Result builds a SELECT result from variable names and rows.
func Result(vars []string, rows ...sparql.Binding) *sparql.Result {
	return &sparql.Result{
		Head:    sparql.Head{Vars: vars},
		Results: sparql.Results{Bindings: rows},
	}
}

// LoadResult reads and decodes a SPARQL JSON result file, failing the test on error.
func LoadResult(t *testing.T, path string) *sparql.Result {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "read %s", path)

	res, err := sparql.Parse(data)
	require.NoError(t, err, "parse %s", path)
	return res
}
