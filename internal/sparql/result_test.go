package sparql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const personResult = `{
  "head": {"vars": ["person", "person__name", "person__comment"]},
  "results": {"bindings": [
    {
      "person": {"type": "uri", "value": "http://x/1"},
      "person__name": {"type": "literal", "value": "Ann"},
      "person__comment": {"type": "literal", "value": "Hej", "xml:lang": "sv"}
    },
    {
      "person": {"type": "bnode", "value": "b0"},
      "person__name": {"type": "typed-literal", "value": "42", "datatype": "http://www.w3.org/2001/XMLSchema#integer"}
    }
  ]}
}`

func TestParse(t *testing.T) {
	res, err := Parse([]byte(personResult))
	require.NoError(t, err)

	assert.Equal(t, []string{"person", "person__name", "person__comment"}, res.Vars())
	require.Len(t, res.Bindings(), 2)

	first := res.Bindings()[0]
	assert.Equal(t, Term{Type: TypeURI, Value: "http://x/1"}, first["person"])
	assert.Equal(t, Term{Type: TypeLiteral, Value: "Hej", Lang: "sv"}, first["person__comment"])

	second := res.Bindings()[1]
	assert.Equal(t, TypeBNode, second["person"].Type)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer", second["person__name"].Datatype)
	assert.True(t, second["person__comment"].IsZero(), "unbound variable reads as zero term")
}

func TestParseAskResult(t *testing.T) {
	res, err := Parse([]byte(`{"head": {}, "boolean": true}`))
	require.NoError(t, err)

	require.NotNil(t, res.Boolean)
	assert.True(t, *res.Boolean)
	assert.Empty(t, res.Bindings())
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"head": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode SPARQL JSON result")
}

func TestTermComparable(t *testing.T) {
	a := Term{Type: TypeLiteral, Value: "x", Lang: "en"}
	b := Term{Type: TypeLiteral, Value: "x", Lang: "en"}
	c := Term{Type: TypeLiteral, Value: "x", Lang: "sv"}

	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestResultYAMLTags(t *testing.T) {
	doc := `
head:
  vars: [person]
results:
  bindings:
    - person: {type: literal, value: Ann, "xml:lang": en}
`
	var res Result
	require.NoError(t, yaml.Unmarshal([]byte(doc), &res))

	require.Len(t, res.Bindings(), 1)
	assert.Equal(t, Term{Type: TypeLiteral, Value: "Ann", Lang: "en"}, res.Bindings()[0]["person"])
}
