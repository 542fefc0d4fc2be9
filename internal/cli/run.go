package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/ir"
	"github.com/roach88/oort/internal/sparql"
)

// TreeFlags holds the tree building flags shared by tree and graph.
type TreeFlags struct {
	Separator      string
	SingularPrefix string
	Strict         bool
	Time           bool // log stage durations
}

func (f *TreeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Separator, "separator", autotree.DefaultSeparator, "variable name path separator")
	cmd.Flags().StringVar(&f.SingularPrefix, "singular-prefix", autotree.DefaultSingularPrefix, "prefix marking single-valued segments")
	cmd.Flags().BoolVar(&f.Strict, "strict", false, "fail when a singular field has several values")
	cmd.Flags().BoolVar(&f.Time, "time", false, "log stage durations")
}

func (f TreeFlags) options() autotree.Options {
	return autotree.Options{
		Separator:      f.Separator,
		SingularPrefix: f.SingularPrefix,
		Strict:         f.Strict,
	}
}

// invocation carries the state of one pipeline command run.
type invocation struct {
	formatter *OutputFormatter
	logger    *slog.Logger
	stdin     io.Reader
	timed     bool
}

func newInvocation(opts *RootOptions, cmd *cobra.Command, timed bool) *invocation {
	traceID := opts.traceIDs().Generate()
	return &invocation{
		formatter: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(), // Logs go to stderr to avoid corrupting JSON
			Verbose:   opts.Verbose,
			TraceID:   traceID,
		},
		logger: newLogger(cmd.ErrOrStderr(), opts.Verbose).With("trace_id", traceID),
		stdin:  cmd.InOrStdin(),
		timed:  timed,
	}
}

// newLogger configures logging based on the verbose flag.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}

// stage runs one pipeline step. Completion is logged at debug level, or at
// info level with the elapsed time when timing is on.
func (inv *invocation) stage(name string, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		inv.logger.Debug("stage failed", "stage", name, "error", err)
		return err
	}
	inv.complete(name, start)
	return nil
}

// step is stage for steps that cannot fail.
func (inv *invocation) step(name string, fn func()) {
	start := time.Now()
	fn()
	inv.complete(name, start)
}

func (inv *invocation) complete(name string, start time.Time) {
	if inv.timed {
		inv.logger.Info("stage complete", "stage", name, "elapsed", time.Since(start))
	} else {
		inv.logger.Debug("stage complete", "stage", name)
	}
}

// load decodes the result at path.
func (inv *invocation) load(path string) (*sparql.Result, error) {
	var res *sparql.Result
	err := inv.stage("decode", func() error {
		var err error
		res, err = LoadResult(path, inv.stdin)
		return err
	})
	if err != nil {
		return nil, err
	}

	inv.logger.Debug("result decoded",
		"source", displayPath(path),
		"vars", len(res.Vars()),
		"rows", len(res.Bindings()),
	)
	return res, nil
}

// treeify builds the raw tree of res.
func (inv *invocation) treeify(res *sparql.Result, flags TreeFlags) (ir.Object, error) {
	var tree ir.Object
	err := inv.stage("treeify", func() error {
		var err error
		tree, err = autotree.Treeify(res, flags.options())
		return err
	})
	if err != nil {
		return nil, err
	}

	inv.logger.Debug("tree built", "fields", len(tree))
	return tree, nil
}

// fail reports err in the configured format and returns the matching
// ExitError. Load errors are command errors, build errors are failures.
func (inv *invocation) fail(err error) error {
	code := errorCode(err)
	message := err.Error()
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		message = loadErr.Message
	}

	_ = inv.formatter.Error(code, message, nil)

	exitCode := ExitFailure
	if loadErr != nil || code == ErrCodeInvalidFlag {
		exitCode = ExitCommandError
	}
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}

// invalidFlag builds the error for a rejected flag value.
func invalidFlag(name, value string, err error) error {
	msg := fmt.Sprintf("invalid --%s %q", name, value)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &flagError{msg: msg}
}

type flagError struct{ msg string }

func (e *flagError) Error() string { return e.msg }
