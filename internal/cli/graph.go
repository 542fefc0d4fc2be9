package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/roach88/oort/internal/graph"
	"github.com/roach88/oort/internal/harness"
)

// ValidStrategies and ValidLenses define the allowed graph flag values.
var (
	ValidStrategies = []string{harness.StrategyBuilder, harness.StrategyTreeLens}
	ValidLenses     = []string{harness.LensBasic, harness.LensLocalized, harness.LensPlain}
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
	TreeFlags
	Strategy string
	Lens     string
	Locale   string
	Digest   bool
}

// GraphResult is the JSON payload of the graph command.
type GraphResult struct {
	Graph     json.RawMessage `json:"graph,omitempty"`
	Digest    string          `json:"digest,omitempty"`
	Resources int             `json:"resources"`
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graph <result.json|->",
		Short: "Build a resource graph from a SPARQL JSON result",
		Long: `Build a resource graph from a SPARQL JSON result.

The raw tree is turned into a graph where every resource with the same
$uri (or $id) is one node, so shared resources and cycles are preserved.
Each node records where it was referenced from in its via map.

Strategies:
  builder   two-pass graph builder driven by a lens
  treelens  single-pass tree lens; always collapses language mappings
            to --locale, so basic and localized behave the same

Lenses:
  basic      keep literals as they are (builder only), via under "$via"
  localized  collapse language mappings to --locale
  plain      localized, plus resource_uri, uri_term and via under "ref_via"

Repeated occurrences of a resource are printed as {"$uri": ...} stubs.

Examples:
  oort graph people.json
  oort graph people.json --lens localized --locale sv
  oort graph people.json --strategy treelens --lens plain --locale en`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts, args[0], cmd)
		},
	}

	opts.TreeFlags.register(cmd)
	cmd.Flags().StringVar(&opts.Strategy, "strategy", harness.StrategyBuilder, "graph strategy (builder|treelens)")
	cmd.Flags().StringVar(&opts.Lens, "lens", harness.LensBasic, "node lens (basic|localized|plain)")
	cmd.Flags().StringVar(&opts.Locale, "locale", "", "BCP 47 language tag for localized lenses")
	cmd.Flags().BoolVar(&opts.Digest, "digest", false, "print the graph content digest")

	return cmd
}

func runGraph(opts *GraphOptions, path string, cmd *cobra.Command) error {
	inv := newInvocation(opts.RootOptions, cmd, opts.Time)

	if err := validateGraphFlags(opts); err != nil {
		return inv.fail(err)
	}

	strategy, err := harness.NewStrategy(&harness.GraphOptions{
		Strategy: opts.Strategy,
		Lens:     opts.Lens,
		Locale:   opts.Locale,
	})
	if err != nil {
		return inv.fail(err)
	}

	res, err := inv.load(path)
	if err != nil {
		return inv.fail(err)
	}

	tree, err := inv.treeify(res, opts.TreeFlags)
	if err != nil {
		return inv.fail(err)
	}

	var root *graph.Resource
	inv.step("graph", func() {
		root = strategy.Build(tree)
	})
	inv.logger.Debug("graph built",
		"strategy", opts.Strategy,
		"lens", opts.Lens,
		"resources", strategy.Index().Len(),
	)

	result := GraphResult{Resources: strategy.Index().Len()}
	if opts.Digest {
		result.Digest, err = graph.GraphDigest(root)
	} else {
		result.Graph, err = canonicalJSON(graph.Snapshot(root), true)
	}
	if err != nil {
		return inv.fail(err)
	}

	return outputGraphSuccess(inv.formatter, result)
}

// validateGraphFlags rejects unknown strategies, lenses and malformed locales.
func validateGraphFlags(opts *GraphOptions) error {
	if !slices.Contains(ValidStrategies, opts.Strategy) {
		return invalidFlag("strategy", opts.Strategy, fmt.Errorf("must be one of %v", ValidStrategies))
	}
	if !slices.Contains(ValidLenses, opts.Lens) {
		return invalidFlag("lens", opts.Lens, fmt.Errorf("must be one of %v", ValidLenses))
	}
	if opts.Locale != "" {
		// The tag is only checked; matching uses the raw string.
		if _, err := language.Parse(opts.Locale); err != nil {
			return invalidFlag("locale", opts.Locale, err)
		}
	}
	return nil
}

// outputGraphSuccess prints the graph snapshot or its digest.
func outputGraphSuccess(formatter *OutputFormatter, result GraphResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if result.Digest != "" {
		fmt.Fprintln(formatter.Writer, result.Digest)
		return nil
	}
	fmt.Fprintln(formatter.Writer, string(result.Graph))
	formatter.VerboseLog("%d resource(s)", result.Resources)
	return nil
}
