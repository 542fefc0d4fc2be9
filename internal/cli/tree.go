package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/oort/internal/ir"
	"github.com/roach88/oort/internal/sparql"
)

// TreeOptions holds flags for the tree command.
type TreeOptions struct {
	*RootOptions
	TreeFlags
	Raw    bool   // print the decoded result without building a tree
	Digest bool   // print the tree digest instead of the tree
	Output string // output file path
}

// TreeResult is the JSON payload of the tree command.
type TreeResult struct {
	Tree   json.RawMessage `json:"tree,omitempty"`
	Digest string          `json:"digest,omitempty"`
	Output string          `json:"output,omitempty"`
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TreeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tree <result.json|->",
		Short: "Build the raw tree of a SPARQL JSON result",
		Long: `Build the raw tree of a SPARQL JSON result.

Variable names describe the tree shape: "person__name" nests a name list
under each person, "person__1_name" makes it single-valued. Values are
classified into resource nodes ($uri/$id), language mappings (@lang),
datatype wrappers ($datatype/$value) and native literals.

Use "-" to read the result from stdin.

Examples:
  oort tree people.json
  oort tree people.json --strict
  oort tree people.json --digest
  curl -s "$ENDPOINT?query=..." | oort tree - --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(opts, args[0], cmd)
		},
	}

	opts.TreeFlags.register(cmd)
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "print the decoded result without building a tree")
	cmd.Flags().BoolVar(&opts.Digest, "digest", false, "print the tree content digest")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the tree to a file")

	return cmd
}

func runTree(opts *TreeOptions, path string, cmd *cobra.Command) error {
	inv := newInvocation(opts.RootOptions, cmd, opts.Time)

	res, err := inv.load(path)
	if err != nil {
		return inv.fail(err)
	}

	if opts.Raw {
		return outputRaw(inv.formatter, res)
	}

	tree, err := inv.treeify(res, opts.TreeFlags)
	if err != nil {
		return inv.fail(err)
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeTreeToFile(tree, opts.Output); err != nil {
			return inv.fail(&LoadError{Code: ErrCodeWriteFailed, Message: fmt.Sprintf("writing output file: %v", err), Err: err})
		}
		inv.formatter.VerboseLog("Wrote tree to %s", opts.Output)
	}

	if opts.Digest {
		digest, err := ir.TreeDigest(tree)
		if err != nil {
			return inv.fail(err)
		}
		return outputTreeSuccess(inv.formatter, TreeResult{Digest: digest, Output: opts.Output})
	}

	data, err := canonicalJSON(tree, true)
	if err != nil {
		return inv.fail(err)
	}
	return outputTreeSuccess(inv.formatter, TreeResult{Tree: data, Output: opts.Output})
}

// outputRaw prints the decoded result document.
func outputRaw(formatter *OutputFormatter, res *sparql.Result) error {
	if formatter.Format == "json" {
		return formatter.Success(res)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(formatter.Writer, string(data))
	return nil
}

// outputTreeSuccess prints the tree or its digest.
func outputTreeSuccess(formatter *OutputFormatter, result TreeResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if result.Digest != "" {
		fmt.Fprintln(formatter.Writer, result.Digest)
		return nil
	}
	fmt.Fprintln(formatter.Writer, string(result.Tree))
	return nil
}

// writeTreeToFile writes the tree to a file as indented canonical JSON.
func writeTreeToFile(tree ir.Object, filename string) error {
	data, err := canonicalJSON(tree, true)
	if err != nil {
		return fmt.Errorf("marshaling tree: %w", err)
	}

	if err := os.WriteFile(filename, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
