// Package errors defines the coded failure modes of a harness run. Every
// failure is fatal to the current scenario and carries the captured output of
// the relevant process (or the specific text/filename involved) so a human
// can diagnose without rerunning.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a harness failure kind.
type Code string

const (
	CodeMissingFixtureDir    Code = "MISSING_FIXTURE_DIR"
	CodeReplacementNotFound  Code = "REPLACEMENT_TEXT_NOT_FOUND"
	CodePackageInstall       Code = "PACKAGE_INSTALL_FAILED"
	CodeAutoloadRegen        Code = "AUTOLOAD_REGEN_FAILED"
	CodeProcessTimeout       Code = "PROCESS_TIMEOUT"
	CodeProcessNonZeroExit   Code = "PROCESS_NON_ZERO_EXIT"
	CodeMissingSuccessMarker Code = "MISSING_SUCCESS_MARKER"
	CodeStyleCheck           Code = "STYLE_CHECK_FAILED"
	CodePostCommand          Code = "POST_COMMAND_FAILED"
	CodeGeneratedTests       Code = "GENERATED_TESTS_FAILED"
)

// HarnessError is a structured scenario failure.
type HarnessError struct {
	Code    Code
	Message string
	Stdout  string
	Stderr  string
	Cause   error
}

// Error implements the error interface.
func (e *HarnessError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	if out := strings.TrimSpace(e.Stdout); out != "" {
		fmt.Fprintf(&b, "\n--- stdout ---\n%s", out)
	}
	if errOut := strings.TrimSpace(e.Stderr); errOut != "" {
		fmt.Fprintf(&b, "\n--- stderr ---\n%s", errOut)
	}
	return b.String()
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *HarnessError) Unwrap() error {
	return e.Cause
}

// New creates a HarnessError with a formatted message.
func New(code Code, format string, args ...interface{}) *HarnessError {
	return &HarnessError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a HarnessError around a cause.
func Wrap(code Code, cause error, format string, args ...interface{}) *HarnessError {
	return &HarnessError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WithOutput attaches captured process output and returns the error.
func (e *HarnessError) WithOutput(stdout, stderr string) *HarnessError {
	e.Stdout = stdout
	e.Stderr = stderr
	return e
}

// CodeOf returns the Code carried by err, or "" if err is not a HarnessError.
func CodeOf(err error) Code {
	var he *HarnessError
	if errors.As(err, &he) {
		return he.Code
	}
	return ""
}

// IsCode reports whether err is a HarnessError with the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
