package harness

import (
	"github.com/roach88/oort/internal/graph"
	"github.com/roach88/oort/internal/ir"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool `json:"pass"`

	// Tree is the built raw tree. Nil when tree building failed.
	Tree ir.Object `json:"tree,omitempty"`

	// Graph is the root of the built graph. Nil when tree building failed.
	Graph *graph.Resource `json:"-"`

	// Index is the identity index of the graph build.
	Index *graph.Index `json:"-"`

	// BuildError is the tree building error, if any.
	BuildError error `json:"-"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
