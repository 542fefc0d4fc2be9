package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/roach88/oort/internal/autotree"
	"github.com/roach88/oort/internal/sparql"
)

// StdinPath names standard input as a result source.
const StdinPath = "-"

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeInvalidFlag  = "E003" // Flag value rejected
	ErrCodeReadFailed   = "E004" // Input could not be read
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeDecodeFailed = "E006" // Input is not a SPARQL JSON result
	ErrCodeWriteFailed  = "E007" // File write error

	// Tree building errors
	ErrCodeClassification = "E301" // Unknown term type
	ErrCodeCardinality    = "E302" // Several values for a strict singular field
)

// LoadError represents an error that occurred while loading a result.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ReadInput reads the raw bytes of path, or of stdin when path is "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading stdin: %v", err), Err: err}
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("result file not found: %s", path), Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s: %v", path, err), Err: err}
	}
	return data, nil
}

// LoadResult reads and decodes a SPARQL JSON result from path or stdin.
func LoadResult(path string, stdin io.Reader) (*sparql.Result, error) {
	data, err := ReadInput(path, stdin)
	if err != nil {
		return nil, err
	}

	res, err := sparql.Parse(data)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("decoding %s: %v", displayPath(path), err), Err: err}
	}
	return res, nil
}

// MapBuildErrorToCode maps a tree building error to an error code.
func MapBuildErrorToCode(err error) string {
	switch {
	case autotree.IsClassificationError(err):
		return ErrCodeClassification
	case autotree.IsCardinalityError(err):
		return ErrCodeCardinality
	default:
		return ErrCodeGeneric
	}
}

// errorCode extracts the CLI error code of err.
func errorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	var flagErr *flagError
	if errors.As(err, &flagErr) {
		return ErrCodeInvalidFlag
	}
	return MapBuildErrorToCode(err)
}

func displayPath(path string) string {
	if path == StdinPath {
		return "stdin"
	}
	return path
}
