package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/graph"
	"github.com/roach88/oort/internal/ir"
	"github.com/roach88/oort/internal/treelens"
)

// IndexedStrategy is a graph strategy that exposes its identity index.
// Both graph.Builder and treelens.Lens satisfy it.
type IndexedStrategy interface {
	graph.Strategy
	Index() *graph.Index
}

// Harness runs scenarios.
type Harness struct {
	logger *slog.Logger
}

// New returns a harness logging to logger. A nil logger discards.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario with a discarding logger.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Build the raw tree from scenario.Result
//  2. Check expect_error, or compare expect_tree
//  3. Build the graph with the configured strategy
//  4. Evaluate assertions against the graph
//
// A returned error means the scenario could not be executed at all; failed
// expectations are reported in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	result := NewResult()

	tree, err := autotree.Treeify(&scenario.Result, scenario.Options.autotree())
	if scenario.ExpectError != "" {
		checkExpectedError(result, scenario.ExpectError, err)
		h.logger.Info("scenario completed",
			"scenario", scenario.Name,
			"expect_error", scenario.ExpectError,
			"pass", result.Pass,
		)
		return result, nil
	}
	if err != nil {
		result.BuildError = err
		result.AddError(fmt.Sprintf("tree building failed: %v", err))
		return result, nil
	}
	result.Tree = tree

	if scenario.ExpectTree != nil {
		if err := compareTree(scenario.ExpectTree, tree); err != nil {
			result.AddError(err.Error())
		}
	}

	strategy, err := NewStrategy(scenario.Graph)
	if err != nil {
		return nil, err
	}
	result.Graph = strategy.Build(tree)
	result.Index = strategy.Index()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"resources", result.Index.Len(),
		"assertions", len(scenario.Assertions),
		"pass", result.Pass,
	)
	return result, nil
}

// NewStrategy returns a fresh graph strategy for opts. Nil opts means the
// two-pass builder with the basic lens.
func NewStrategy(opts *GraphOptions) (IndexedStrategy, error) {
	if opts == nil {
		opts = &GraphOptions{}
	}

	switch opts.Strategy {
	case "", StrategyBuilder:
		lens, err := NewLens(opts.Lens, opts.Locale)
		if err != nil {
			return nil, err
		}
		return graph.NewBuilder(lens), nil
	case StrategyTreeLens:
		switch opts.Lens {
		case "", LensBasic, LensLocalized, LensPlain:
		default:
			return nil, fmt.Errorf("unknown lens %q", opts.Lens)
		}
		return treelens.New(treelens.Config{
			Locale: opts.Locale,
			Plain:  opts.Lens == LensPlain,
		}), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}
}

// NewLens returns the graph lens called name.
func NewLens(name, locale string) (graph.Lens, error) {
	switch name {
	case "", LensBasic:
		return graph.BasicLens{}, nil
	case LensLocalized:
		return graph.LocalizedLens{Locale: locale}, nil
	case LensPlain:
		return graph.NewPlainLens(locale), nil
	default:
		return nil, fmt.Errorf("unknown lens %q", name)
	}
}

func (o TreeOptions) autotree() autotree.Options {
	return autotree.Options{
		Separator:      o.Separator,
		SingularPrefix: o.SingularPrefix,
		Strict:         o.Strict,
	}
}

func checkExpectedError(result *Result, want string, err error) {
	result.BuildError = err
	if err == nil {
		result.AddError(fmt.Sprintf("expected %s error, tree building succeeded", want))
		return
	}

	var ok bool
	switch want {
	case ErrorCardinality:
		ok = autotree.IsCardinalityError(err)
	case ErrorClassification:
		ok = autotree.IsClassificationError(err)
	}
	if !ok {
		result.AddError(fmt.Sprintf("expected %s error, got: %v", want, err))
	}
}

func compareTree(expected map[string]any, tree ir.Object) error {
	want, err := ir.FromAny(expected)
	if err != nil {
		return fmt.Errorf("expect_tree: %w", err)
	}
	if ir.Equal(want, tree) {
		return nil
	}

	wantJSON, _ := ir.MarshalCanonical(want)
	gotJSON, _ := ir.MarshalCanonical(tree)
	return &AssertionError{
		Type:     "expect_tree",
		Expected: string(wantJSON),
		Actual:   string(gotJSON),
	}
}
