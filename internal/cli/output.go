package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Numerical failure (no convergence, zero derivative, etc.)
	ExitCommandError = 2 // Command error (bad formula, invalid flags, etc.)
)

// Error codes reported in CLIError.Code.
const (
	ErrCodeParse     = "E001" // formula does not parse
	ErrCodeEval      = "E002" // formula cannot be evaluated (unbound symbol, etc.)
	ErrCodeNumerical = "E003" // iteration failed
	ErrCodeArgs      = "E004" // invalid flag value
	ErrCodeServe     = "E005" // server failed
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	reported bool // already written by an OutputFormatter
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter renders results as text, JSON or YAML.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

func newFormatter(opts *RootOptions, w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: w}
}

// CLIResponse is the standard JSON and YAML response format.
type CLIResponse struct {
	Status string      `json:"status" yaml:"status"`                   // "ok" or "error"
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty"`   // success payload
	Error  *CLIError   `json:"error,omitempty" yaml:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`       // "E001", "E002", etc.
	Message string `json:"message" yaml:"message"` // human-readable message
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	if f.Format == "yaml" {
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	}
	return json.NewEncoder(f.Writer).Encode(resp)
}

// Success outputs data in the structured formats and text otherwise.
func (f *OutputFormatter) Success(data interface{}, text string) error {
	if f.Format == "text" {
		_, err := fmt.Fprintln(f.Writer, text)
		return err
	}
	return f.encode(CLIResponse{Status: "ok", Data: data})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "text" {
		_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
		return err
	}
	return f.encode(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: message}})
}

// fail reports err on the formatter and returns it as an ExitError.
func (f *OutputFormatter) fail(exitCode int, code string, err error) error {
	_ = f.Error(code, err.Error())
	exitErr := WrapExitError(exitCode, code, err)
	exitErr.reported = true
	return exitErr
}
