// SPDX-License-Identifier: MPL-2.0

package runtime

// Result is the outcome of one build tool invocation. It is returned by value
// to the caller; nothing is accumulated outside of it.
type Result struct {
	// ExitCode is the child's exit status, or a synthetic code when the child
	// could not be started or was interrupted.
	ExitCode ExitCode
	// Stdout holds every output line in arrival order, trailing "\n" removed.
	// Standard error is merged into the same stream.
	Stdout []string
	// Stderr is always empty: the child's stderr shares the stdout pipe, so
	// its lines appear in Stdout interleaved exactly as the child wrote them.
	Stderr []string
	// Error reports infrastructure failures (tool not found, interrupted).
	// A child that simply exits non-zero leaves Error nil.
	Error error
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// Success reports whether the child ran and exited with status 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}
