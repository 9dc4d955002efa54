// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"mvnagg/internal/config"
	"mvnagg/internal/discovery"
	"mvnagg/internal/issue"
	"mvnagg/internal/pom"
	"mvnagg/internal/runtime"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before the issue help text.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
// All construction sites must use this instead of struct literals.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func (a *App) renderServiceError(svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(a.stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(a.issueStyle())
		if renderErr != nil {
			a.logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(a.stderr, rendered)
		}
	}
}

// fail reports err on stderr and returns the ExitError that ends the run.
func (a *App) fail(err error, verbose bool) error {
	svcErr := classifyError(err, verbose)
	a.renderServiceError(svcErr)
	return &ExitError{Code: runtime.ExitCodeFailure}
}

// classifyError turns a pipeline error into a ServiceError with an actionable
// message and the matching issue catalog entry.
func classifyError(err error, verbose bool) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	ae := actionableFor(err)
	id := issueFor(err)
	var display error = err
	if ae != nil {
		display = ae
	}
	styled := ErrorStyle.Render("Error: ") + formatErrorForDisplay(display, verbose) + "\n\n"
	return newServiceError(display, id, styled)
}

func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, errToolNotFound):
		return issue.BuildToolNotFoundId
	case errors.Is(err, discovery.ErrInvalidExcludePattern), errors.Is(err, config.ErrInvalidExcludePattern):
		return issue.InvalidExcludePatternId
	case errors.Is(err, pom.ErrInvalidCoordinate), errors.Is(err, config.ErrInvalidCoordinate):
		return issue.InvalidCoordinatesId
	case errors.Is(err, pom.ErrWriteDescriptor):
		return issue.DescriptorWriteFailedId
	case errors.Is(err, discovery.ErrListDirectory):
		return issue.DirectoryListFailedId
	case errors.Is(err, errConfigLoad), errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId
	case errors.Is(err, errToolFailed), errors.Is(err, runtime.ErrInvalidCommandLine):
		return issue.BuildToolFailedId
	default:
		return 0
	}
}

// actionableFor wraps err with operation context and suggestions unless it
// already carries them.
func actionableFor(err error) *issue.ActionableError {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	ctx := issue.NewErrorContext().Wrap(err)
	switch {
	case errors.Is(err, errToolNotFound):
		ctx.WithOperation("run build tool").
			WithSuggestion("Install Maven and make sure 'mvn' is on your PATH").
			WithSuggestion("Or point --tool at another launcher, e.g. --tool ./mvnw")
	case errors.Is(err, discovery.ErrInvalidExcludePattern):
		ctx.WithOperation("compile exclude pattern").
			WithSuggestion("Exclude patterns are regular expressions matched against whole directory names, e.g. -x 'tmp.*'")
	case errors.Is(err, pom.ErrInvalidCoordinate):
		ctx.WithOperation("build project coordinates")
		if strings.Contains(err.Error(), "invalid artifactId") {
			ctx.WithSuggestion("Pass an artifact id explicitly with --artifactId")
		}
		ctx.WithSuggestion("Coordinates must be non-blank and contain only characters allowed in XML")
	case errors.Is(err, pom.ErrWriteDescriptor):
		ctx.WithOperation("write aggregator POM").
			WithSuggestion("Check that the current directory is writable").
			WithSuggestion("Or choose another output file with --file")
	case errors.Is(err, discovery.ErrListDirectory):
		ctx.WithOperation("scan for modules").
			WithSuggestion("Check that the current directory exists and is readable")
	case errors.Is(err, runtime.ErrInvalidCommandLine):
		ctx.WithOperation("parse build tool command line").
			WithSuggestion("Quote the value of --tool like a shell word list, e.g. --tool './mvnw -B'")
	case errors.Is(err, errConfigLoad):
		ctx.WithOperation("load configuration").
			WithSuggestion("Run 'mvnagg config path' to see which files are read").
			WithSuggestion("Run 'mvnagg config init' to create a valid default configuration")
	case errors.Is(err, runtime.ErrInterrupted):
		ctx.WithOperation("run build tool")
	case errors.Is(err, errToolFailed):
		ctx.WithOperation("run build tool")
	default:
		return nil
	}
	return ctx.Build()
}

// renderError writes a plain styled error for failures that are reported
// outside of a run, e.g. when the App cannot be built.
func renderError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
}
