package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/graph"
	"github.com/roach88/oort/internal/ir"
)

// Snapshot captures the outcome of a scenario for golden comparison:
//
//	{"scenario_name": ..., "tree": ..., "graph": ..., "error": ...}
//
// "tree" and "graph" are present when tree building succeeded, "error"
// holds the error code when it failed.
func Snapshot(scenario *Scenario, result *Result) ir.Object {
	snap := ir.Object{"scenario_name": ir.String(scenario.Name)}
	if result.Tree != nil {
		snap["tree"] = result.Tree
	}
	if result.Graph != nil {
		snap["graph"] = graph.Snapshot(result.Graph)
	}
	if result.BuildError != nil {
		snap["error"] = ir.String(errorCode(result.BuildError))
	}
	return snap
}

// MarshalSnapshot returns the canonical JSON of Snapshot(scenario, result).
func MarshalSnapshot(scenario *Scenario, result *Result) ([]byte, error) {
	return ir.MarshalCanonical(Snapshot(scenario, result))
}

func errorCode(err error) string {
	switch {
	case autotree.IsCardinalityError(err):
		return string(autotree.ErrCodeCardinality)
	case autotree.IsClassificationError(err):
		return string(autotree.ErrCodeClassification)
	default:
		return err.Error()
	}
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can inspect assertion failures; the golden
// mismatch itself fails t through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
