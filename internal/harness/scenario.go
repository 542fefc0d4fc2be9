package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/oort/internal/sparql"
)

// Scenario defines a conformance scenario: a SPARQL result, how to build it,
// and what the outcome must look like.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Options configures tree building.
	Options TreeOptions `yaml:"options,omitempty"`

	// Graph configures graph building. A nil Graph builds with the basic
	// lens of the two-pass builder.
	Graph *GraphOptions `yaml:"graph,omitempty"`

	// Result is the SPARQL JSON result to build from.
	Result sparql.Result `yaml:"result"`

	// ExpectTree is compared with the built tree when set.
	ExpectTree map[string]any `yaml:"expect_tree,omitempty"`

	// ExpectError names the tree building error the scenario must produce:
	// "cardinality" or "classification".
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions are evaluated against the built graph.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// TreeOptions mirrors autotree.Options.
type TreeOptions struct {
	Separator      string `yaml:"separator,omitempty"`
	SingularPrefix string `yaml:"singular_prefix,omitempty"`
	Strict         bool   `yaml:"strict,omitempty"`
}

// GraphOptions selects the graph strategy and lens.
type GraphOptions struct {
	// Strategy is "builder" (default) or "treelens".
	Strategy string `yaml:"strategy,omitempty"`

	// Lens is "basic" (default), "localized" or "plain". The tree lens
	// always localizes; "plain" switches on its plain variant.
	Lens string `yaml:"lens,omitempty"`

	// Locale is the preferred language tag.
	Locale string `yaml:"locale,omitempty"`
}

// Strategy and lens names.
const (
	StrategyBuilder  = "builder"
	StrategyTreeLens = "treelens"

	LensBasic     = "basic"
	LensLocalized = "localized"
	LensPlain     = "plain"
)

// Expected error names.
const (
	ErrorCardinality    = "cardinality"
	ErrorClassification = "classification"
)

// Assertion validates the built graph.
type Assertion struct {
	// Type is one of field_equals, same_resource, via_contains,
	// resource_count.
	Type string `yaml:"type"`

	// Path locates the value under test (field_equals, via_contains).
	Path string `yaml:"path,omitempty"`

	// Value is the expected value (field_equals).
	Value any `yaml:"value,omitempty"`

	// Paths must all resolve to one resource (same_resource).
	Paths []string `yaml:"paths,omitempty"`

	// Key is the via key (via_contains).
	Key string `yaml:"key,omitempty"`

	// From locates the referencing resource (via_contains).
	From string `yaml:"from,omitempty"`

	// Count is the expected number of indexed resources (resource_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertFieldEquals   = "field_equals"
	AssertSameResource  = "same_resource"
	AssertViaContains   = "via_contains"
	AssertResourceCount = "resource_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields so "assertion:" vs "assertions:" typos fail loudly.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted. A
// non-empty filter is a glob matched against the file name without
// extension.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := filepath.Base(path)
			name = name[:len(name)-len(ext)]
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Result.Head.Vars) == 0 {
		return fmt.Errorf("result.head.vars is required and must be non-empty")
	}

	if s.Graph != nil {
		switch s.Graph.Strategy {
		case "", StrategyBuilder, StrategyTreeLens:
		default:
			return fmt.Errorf("graph.strategy: unknown strategy %q", s.Graph.Strategy)
		}
		switch s.Graph.Lens {
		case "", LensBasic, LensLocalized, LensPlain:
		default:
			return fmt.Errorf("graph.lens: unknown lens %q", s.Graph.Lens)
		}
	}

	switch s.ExpectError {
	case "":
	case ErrorCardinality, ErrorClassification:
		if s.ExpectTree != nil || len(s.Assertions) > 0 {
			return fmt.Errorf("expect_error cannot be combined with expect_tree or assertions")
		}
		return nil
	default:
		return fmt.Errorf("expect_error: unknown error %q", s.ExpectError)
	}

	if s.ExpectTree == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("one of expect_tree, expect_error or assertions is required")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFieldEquals:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for field_equals", index)
		}
	case AssertSameResource:
		if len(a.Paths) < 2 {
			return fmt.Errorf("assertions[%d]: at least two paths are required for same_resource", index)
		}
	case AssertViaContains:
		if a.Path == "" || a.Key == "" {
			return fmt.Errorf("assertions[%d]: path and key are required for via_contains", index)
		}
	case AssertResourceCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for resource_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
