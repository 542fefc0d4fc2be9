package harness

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/oort/internal/graph"
	"github.com/roach88/oort/internal/ir"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Path     string // Path under test, if any
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Path != "" {
		fmt.Fprintf(&buf, " at %s", e.Path)
	}
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	return buf.String()
}

// pathSegment matches one path segment: a field key and optional indexes.
var pathSegment = regexp.MustCompile(`^([^\[\]]*)((?:\[\d+\])*)$`)

var pathIndex = regexp.MustCompile(`\[(\d+)\]`)

// Resolve walks path from root. See the package docs for the path syntax.
func Resolve(root *graph.Resource, path string) (any, error) {
	var cur any = root
	if path == "" {
		return cur, nil
	}

	for _, seg := range strings.Split(path, ".") {
		m := pathSegment.FindStringSubmatch(seg)
		if m == nil {
			return nil, fmt.Errorf("invalid path segment %q", seg)
		}

		if m[1] != "" {
			res, ok := cur.(*graph.Resource)
			if !ok {
				return nil, fmt.Errorf("%q: not a resource (%T)", seg, cur)
			}
			v, ok := res.Get(m[1])
			if !ok {
				return nil, fmt.Errorf("%q: no field %q", seg, m[1])
			}
			cur = v
		}

		for _, idx := range pathIndex.FindAllStringSubmatch(m[2], -1) {
			i, _ := strconv.Atoi(idx[1])
			list, ok := cur.(graph.List)
			if !ok {
				return nil, fmt.Errorf("%q: not a list (%T)", seg, cur)
			}
			if i >= len(list) {
				return nil, fmt.Errorf("%q: index %d out of range (len %d)", seg, i, len(list))
			}
			cur = list[i]
		}
	}
	return cur, nil
}

func resolveResource(root *graph.Resource, path string) (*graph.Resource, error) {
	v, err := Resolve(root, path)
	if err != nil {
		return nil, err
	}
	res, ok := v.(*graph.Resource)
	if !ok {
		return nil, fmt.Errorf("%q: not a resource (%T)", path, v)
	}
	return res, nil
}

func describe(v any) string {
	data, err := ir.MarshalCanonical(graph.SnapshotValue(v))
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// assertFieldEquals compares the snapshot rendering of the value at path
// with the expected value.
func assertFieldEquals(root *graph.Resource, assertion Assertion) error {
	got, err := Resolve(root, assertion.Path)
	if err != nil {
		return &AssertionError{Type: AssertFieldEquals, Path: assertion.Path, Expected: "path to resolve", Actual: err.Error()}
	}

	want, err := ir.FromAny(assertion.Value)
	if err != nil {
		return fmt.Errorf("field_equals %s: %w", assertion.Path, err)
	}

	if !ir.Equal(want, graph.SnapshotValue(got)) {
		wantJSON, _ := ir.MarshalCanonical(want)
		return &AssertionError{
			Type:     AssertFieldEquals,
			Path:     assertion.Path,
			Expected: string(wantJSON),
			Actual:   describe(got),
		}
	}
	return nil
}

// assertSameResource checks that every path resolves to one instance.
func assertSameResource(root *graph.Resource, assertion Assertion) error {
	first, err := resolveResource(root, assertion.Paths[0])
	if err != nil {
		return &AssertionError{Type: AssertSameResource, Path: assertion.Paths[0], Expected: "a resource", Actual: err.Error()}
	}

	for _, path := range assertion.Paths[1:] {
		other, err := resolveResource(root, path)
		if err != nil {
			return &AssertionError{Type: AssertSameResource, Path: path, Expected: "a resource", Actual: err.Error()}
		}
		if other != first {
			return &AssertionError{
				Type:     AssertSameResource,
				Path:     path,
				Expected: fmt.Sprintf("same instance as %s %s", assertion.Paths[0], describe(graph.Stub(first))),
				Actual:   fmt.Sprintf("different instance %s", describe(graph.Stub(other))),
			}
		}
	}
	return nil
}

// assertViaContains checks the via references of the resource at path.
// Both the "$via" and "ref_via" fields are consulted.
func assertViaContains(root *graph.Resource, assertion Assertion) error {
	res, err := resolveResource(root, assertion.Path)
	if err != nil {
		return &AssertionError{Type: AssertViaContains, Path: assertion.Path, Expected: "a resource", Actual: err.Error()}
	}
	from, err := resolveResource(root, assertion.From)
	if err != nil {
		return &AssertionError{Type: AssertViaContains, Path: assertion.From, Expected: "a resource", Actual: err.Error()}
	}

	refs := slices.Concat(res.Via(graph.ViaKey)[assertion.Key], res.Via(graph.PlainViaKey)[assertion.Key])
	if slices.Contains(refs, from) {
		return nil
	}

	stubs := make(ir.Array, len(refs))
	for i, ref := range refs {
		stubs[i] = graph.Stub(ref)
	}
	return &AssertionError{
		Type:     AssertViaContains,
		Path:     assertion.Path,
		Expected: fmt.Sprintf("via %q to contain %s %s", assertion.Key, assertion.From, describe(graph.Stub(from))),
		Actual:   describe(stubs),
	}
}

// assertResourceCount checks the size of the identity index.
func assertResourceCount(index *graph.Index, assertion Assertion) error {
	if index.Len() != assertion.Count {
		return &AssertionError{
			Type:     AssertResourceCount,
			Expected: fmt.Sprintf("%d indexed resources", assertion.Count),
			Actual:   fmt.Sprintf("%d indexed resources", index.Len()),
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result's graph.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch {
		case result.Graph == nil:
			err = fmt.Errorf("assertion[%d]: no graph was built", i)
		case assertion.Type == AssertFieldEquals:
			err = assertFieldEquals(result.Graph, assertion)
		case assertion.Type == AssertSameResource:
			err = assertSameResource(result.Graph, assertion)
		case assertion.Type == AssertViaContains:
			err = assertViaContains(result.Graph, assertion)
		case assertion.Type == AssertResourceCount:
			if result.Index == nil {
				err = fmt.Errorf("assertion[%d]: resource_count requires an index", i)
			} else {
				err = assertResourceCount(result.Index, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
