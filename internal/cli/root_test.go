package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/oort/internal/testutil"
)

// executeCommand runs cmd with args and returns what it wrote to stdout
// and stderr.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// compactJSON strips insignificant whitespace so indented output can be
// compared with a literal.
func compactJSON(t *testing.T, data []byte) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.Compact(&buf, bytes.TrimSpace(data)))
	return buf.String()
}

func testdataPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "oort", cmd.Use)
	assert.Contains(t, cmd.Long, "SPARQL")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"tree", "graph", "validate", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestTreeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	treeCmd, _, err := cmd.Find([]string{"tree"})
	require.NoError(t, err)

	outputFlag := treeCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	tests := map[string]string{
		"separator":       "__",
		"singular-prefix": "1_",
		"strict":          "false",
		"raw":             "false",
		"digest":          "false",
		"time":            "false",
	}
	for name, def := range tests {
		flag := treeCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag --%s", name)
		assert.Equal(t, def, flag.DefValue, "flag --%s", name)
	}
}

func TestGraphCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	graphCmd, _, err := cmd.Find([]string{"graph"})
	require.NoError(t, err)

	tests := map[string]string{
		"strategy": "builder",
		"lens":     "basic",
		"locale":   "",
		"digest":   "false",
		"strict":   "false",
	}
	for name, def := range tests {
		flag := graphCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag --%s", name)
		assert.Equal(t, def, flag.DefValue, "flag --%s", name)
	}
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	filterFlag := testCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
	assert.Equal(t, "", filterFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, NewRootCommand(), "--format", "xml", "tree", testdataPath("knows.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		format string
		want   bool
	}{
		{"json", true},
		{"text", true},
		{"xml", false},
		{"", false},
		{"JSON", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, isValidFormat(tt.format))
		})
	}
}

func TestRootCommand_TraceIDInResponse(t *testing.T) {
	cmd := newRootCommand(&RootOptions{TraceIDs: testutil.NewFixedTraceIDGenerator("trace-42")})

	stdout, _, err := executeCommand(t, cmd, "--format", "json", "tree", testdataPath("knows.json"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-42", resp.TraceID)
}

func TestRootCommand_TraceIDInLogs(t *testing.T) {
	cmd := newRootCommand(&RootOptions{TraceIDs: testutil.NewFixedTraceIDGenerator("trace-42")})

	_, stderr, err := executeCommand(t, cmd, "--verbose", "tree", testdataPath("knows.json"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "trace_id=trace-42")
	assert.Contains(t, stderr, "stage=treeify")
}
