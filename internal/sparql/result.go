// Package sparql holds the SPARQL 1.1 Query Results JSON Format types that
// the tree builder consumes.
//
// See https://www.w3.org/TR/sparql11-results-json/. Only decoding is
// provided; transport to an endpoint is the caller's concern.
package sparql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Term type tags.
const (
	TypeURI          = "uri"
	TypeBNode        = "bnode"
	TypeLiteral      = "literal"
	TypeTypedLiteral = "typed-literal"
)

// Result is a parsed SPARQL JSON result document.
type Result struct {
	Head    Head    `json:"head" yaml:"head"`
	Results Results `json:"results" yaml:"results"`
	Boolean *bool   `json:"boolean,omitempty" yaml:"boolean,omitempty"`
}

// Head carries the projected variable names.
type Head struct {
	Vars []string `json:"vars" yaml:"vars"`
	Link []string `json:"link,omitempty" yaml:"link,omitempty"`
}

// Results wraps the solution sequence.
type Results struct {
	Bindings []Binding `json:"bindings" yaml:"bindings"`
}

// Binding is one solution row: variable name to bound term.
// Unbound variables are absent from the map.
type Binding map[string]Term

// Term is a typed value descriptor for one bound variable.
// Term is comparable, so rows can be grouped by term equality.
type Term struct {
	Type     string `json:"type" yaml:"type"`
	Value    string `json:"value" yaml:"value"`
	Lang     string `json:"xml:lang,omitempty" yaml:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
}

// IsZero reports whether t is the zero Term, i.e. an unbound variable.
func (t Term) IsZero() bool {
	return t == Term{}
}

// Vars returns the projected variable names.
func (r *Result) Vars() []string {
	return r.Head.Vars
}

// Bindings returns the solution rows.
func (r *Result) Bindings() []Binding {
	return r.Results.Bindings
}

// Parse decodes a SPARQL JSON result document.
func Parse(data []byte) (*Result, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a SPARQL JSON result document from r.
func Decode(r io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode SPARQL JSON result: %w", err)
	}
	return &res, nil
}
