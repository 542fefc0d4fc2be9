package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/oort/internal/sparql"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []sparql.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <result.json|->",
		Short: "Validate a SPARQL JSON result document",
		Long: `Validate a document against the SPARQL 1.1 JSON results schema.

Checks that head.vars is a list of strings and that every bound term has a
type of uri, bnode, literal or typed-literal and a string value. Faster
feedback than a failed tree build when a result comes from an unfamiliar
endpoint.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	inv := newInvocation(opts, cmd, false)

	data, err := ReadInput(path, inv.stdin)
	if err != nil {
		return inv.fail(err)
	}
	inv.formatter.VerboseLog("Validating %s (%d bytes)", displayPath(path), len(data))

	var validationErrors []sparql.ValidationError
	_ = inv.stage("validate", func() error {
		validationErrors = sparql.Validate(displayPath(path), data)
		return nil
	})

	if len(validationErrors) > 0 {
		return outputValidationErrors(inv.formatter, validationErrors)
	}

	return outputValidateSuccess(inv.formatter)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true}
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Result valid")
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []sparql.ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Errors: errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := formatter.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d:%d\n", err.Line, err.Column)
		}
		if err.Path != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s (at %s)\n\n", err.Code, err.Message, err.Path)
		} else {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
		}
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
