package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: knows
description: two people who know each other
options: {}
result:
  head: {vars: [person, person__1_name, person__knows]}
  results:
    bindings:
      - person: {type: uri, value: "http://example.org/ann"}
        person__1_name: {type: literal, value: Ann}
        person__knows: {type: uri, value: "http://example.org/bob"}
      - person: {type: uri, value: "http://example.org/bob"}
        person__1_name: {type: literal, value: Bob}
        person__knows: {type: uri, value: "http://example.org/ann"}
assertions:
  - {type: field_equals, path: "person[0].name", value: Ann}
  - {type: same_resource, paths: ["person[0].knows[0].knows[0]", "person[0]"]}
  - {type: resource_count, count: 2}
`

const failingScenario = `name: wrong-count
description: asserts a resource count that does not hold
result:
  head: {vars: [person]}
  results:
    bindings:
      - person: {type: uri, value: "http://example.org/ann"}
assertions:
  - {type: resource_count, count: 5}
`

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTestCommandMissingArgs(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "text"})

	_, _, err := executeCommand(t, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "text"})

	_, _, err := executeCommand(t, cmd, "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "text"})

	stdout, _, err := executeCommand(t, cmd, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "json"})

	stdout, _, err := executeCommand(t, cmd, t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandRepositoryScenarios(t *testing.T) {
	scenariosDir := filepath.Join("..", "..", "testdata", "scenarios")

	cmd := NewTestCommand(&RootOptions{Format: "text"})
	stdout, _, err := executeCommand(t, cmd, scenariosDir)
	require.NoError(t, err, stdout)
	assert.Contains(t, stdout, "✓ All scenarios passed")
	assert.Contains(t, stdout, "✓ end_to_end")
}

func TestTestCommandPassAndFail(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "knows.yaml", passingScenario)
	writeScenario(t, dir, "wrong-count.yaml", failingScenario)

	cmd := NewTestCommand(&RootOptions{Format: "text"})
	stdout, _, err := executeCommand(t, cmd, dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✓ knows")
	assert.Contains(t, stdout, "✗ wrong-count")
	assert.Contains(t, stdout, "resource_count")
	assert.Contains(t, stdout, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "knows.yaml", passingScenario)
	writeScenario(t, dir, "wrong-count.yaml", failingScenario)

	cmd := NewTestCommand(&RootOptions{Format: "json"})
	stdout, _, err := executeCommand(t, cmd, dir)
	require.Error(t, err)

	var response struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, 2, response.Data.Total)
	assert.Equal(t, 1, response.Data.Passed)
	assert.Equal(t, 1, response.Data.Failed)
	require.NotNil(t, response.Error)
	assert.Equal(t, "E_TEST_FAILED", response.Error.Code)
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "knows.yaml", passingScenario)
	writeScenario(t, dir, "wrong-count.yaml", failingScenario)

	cmd := NewTestCommand(&RootOptions{Format: "text"})
	stdout, _, err := executeCommand(t, cmd, dir, "--filter", "kn*")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "typo.yaml", "name: typo\nresult: {head: {vars: []}}\nassertion: []\n")

	cmd := NewTestCommand(&RootOptions{Format: "text"})
	stdout, _, err := executeCommand(t, cmd, dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "✗ typo.yaml")
	assert.Contains(t, stdout, "failed to load scenario")
}

func TestTestCommandGoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := writeScenario(t, dir, "knows.yaml", passingScenario)
	goldenPath := goldenFilePath(scenarioPath)

	// Write the golden file
	cmd := NewTestCommand(&RootOptions{Format: "text"})
	stdout, _, err := executeCommand(t, cmd, dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ knows (golden updated)")

	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name":"knows"`)
	assert.Contains(t, string(golden), `"graph":`)

	// Matches on the next run
	cmd = NewTestCommand(&RootOptions{Format: "text"})
	stdout, _, err = executeCommand(t, cmd, dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ knows")

	// A tampered golden file fails
	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"knows"}`), 0644))
	cmd = NewTestCommand(&RootOptions{Format: "text"})
	stdout, _, err = executeCommand(t, cmd, dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "does not match golden file")
}

func TestTestHelpText(t *testing.T) {
	cmd := NewTestCommand(&RootOptions{Format: "text"})

	stdout, _, err := executeCommand(t, cmd, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "conformance")
	assert.Contains(t, stdout, "--update")
	assert.Contains(t, stdout, "--filter")
	assert.Contains(t, stdout, "scenarios-dir")
}

func TestGoldenFilePath(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"/path/to/scenario.yaml", "/path/to/golden/scenario.golden"},
		{"/path/to/scenario.yml", "/path/to/golden/scenario.golden"},
		{"scenarios/test.yaml", "scenarios/golden/test.golden"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, goldenFilePath(tc.input))
	}
}
