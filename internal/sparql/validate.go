package sparql

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

// Error codes for schema validation.
const (
	ErrCodeSyntax = "E201" // document is not valid JSON
	ErrCodeSchema = "E202" // document violates the results schema
)

// schemaSource is the CUE schema of the SPARQL JSON results format,
// restricted to the term types the tree builder understands.
const schemaSource = `
#Term: {
	type:        "uri" | "bnode" | "literal" | "typed-literal"
	value:       string
	"xml:lang"?: string
	datatype?:   string
}

#Result: {
	head: {
		vars:  [...string]
		link?: [...string]
	}
	results?: {
		bindings: [...{[string]: #Term}]
	}
	boolean?: bool
	...
}
`

// ValidationError describes one schema violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d:%d: %s", e.Code, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a SPARQL JSON result document against the results schema.
// It returns every violation found; an empty slice means the document is valid.
// filename is only used in positions.
func Validate(filename string, data []byte) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Result"))
	if err := schema.Err(); err != nil {
		// The schema is a constant; failing here is a programming error.
		panic(fmt.Sprintf("sparql: invalid results schema: %v", err))
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return convertCUEErrors(ErrCodeSyntax, err)
	}

	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return convertCUEErrors(ErrCodeSyntax, err)
	}

	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return convertCUEErrors(ErrCodeSchema, err)
	}
	return nil
}

// convertCUEErrors flattens a CUE error list into ValidationErrors.
func convertCUEErrors(code string, err error) []ValidationError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return []ValidationError{{Code: code, Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(errs))
	for _, e := range errs {
		ve := ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: e.Error(),
			Code:    code,
		}
		if positions := cueerrors.Positions(e); len(positions) > 0 {
			ve.Line = positions[0].Line()
			ve.Column = positions[0].Column()
		}
		out = append(out, ve)
	}
	return out
}
