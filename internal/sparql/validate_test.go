package sparql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedResult(t *testing.T) {
	errs := Validate("person.json", []byte(personResult))
	assert.Empty(t, errs)
}

func TestValidateAcceptsAskResult(t *testing.T) {
	errs := Validate("ask.json", []byte(`{"head": {"vars": []}, "boolean": false}`))
	assert.Empty(t, errs)
}

func TestValidateRejectsUnknownTermType(t *testing.T) {
	doc := `{
  "head": {"vars": ["x"]},
  "results": {"bindings": [{"x": {"type": "triple", "value": "?"}}]}
}`
	errs := Validate("bad.json", []byte(doc))
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrCodeSchema, errs[0].Code)
}

func TestValidateRejectsNonStringVars(t *testing.T) {
	errs := Validate("bad.json", []byte(`{"head": {"vars": [1, 2]}}`))
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrCodeSchema, errs[0].Code)
}

func TestValidateRejectsMissingValue(t *testing.T) {
	doc := `{
  "head": {"vars": ["x"]},
  "results": {"bindings": [{"x": {"type": "uri"}}]}
}`
	errs := Validate("bad.json", []byte(doc))
	assert.NotEmpty(t, errs)
}

func TestValidateRejectsSyntaxError(t *testing.T) {
	errs := Validate("broken.json", []byte(`{"head": `))
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrCodeSyntax, errs[0].Code)
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Code: ErrCodeSchema, Message: "conflict", Line: 3, Column: 7}
	assert.Equal(t, "[E202] line 3:7: conflict", e.Error())

	e = ValidationError{Code: ErrCodeSyntax, Message: "unexpected EOF"}
	assert.Equal(t, "[E201] unexpected EOF", e.Error())
}
