// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"mvnagg/internal/config"
	"mvnagg/internal/pom"
)

// ErrInvalidOptions is the sentinel error wrapped by InvalidOptionsError.
var ErrInvalidOptions = errors.New("invalid aggregate options")

type (
	// Options is the resolved configuration of one run. It is built once
	// from flags and config and not modified afterwards.
	Options struct {
		// Coordinates are written to the descriptor.
		Coordinates pom.Coordinates
		// Excludes are extra exclusion patterns; hidden directories are
		// always excluded in addition.
		Excludes []string
		// File is the descriptor path, relative to WorkDir unless absolute.
		// It is passed to the build tool unchanged.
		File string
		// Args are the residual arguments for the build tool.
		Args []string
		// DefaultGoals replace Args when Args is empty.
		DefaultGoals []string
		// Tool is the build tool executable followed by its fixed arguments.
		Tool []string
		// WorkDir is scanned for modules and is the build tool's working directory.
		WorkDir string
	}

	// InvalidOptionsError is returned when Options has invalid fields.
	// It wraps ErrInvalidOptions and every field error for errors.Is() compatibility.
	InvalidOptionsError struct {
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *InvalidOptionsError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid options: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidOptions followed by the field errors.
func (e *InvalidOptionsError) Unwrap() []error {
	return append([]error{ErrInvalidOptions}, e.FieldErrors...)
}

// Validate checks that every field needed by Prepare is usable.
func (o Options) Validate() error {
	var errs []error
	if err := o.Coordinates.Validate(); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := config.DescriptorFile(o.File).IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(o.Tool) == 0 || strings.TrimSpace(o.Tool[0]) == "" {
		errs = append(errs, errors.New("build tool must not be empty"))
	}
	if strings.TrimSpace(o.WorkDir) == "" {
		errs = append(errs, errors.New("working directory must not be empty"))
	}
	if len(errs) > 0 {
		return &InvalidOptionsError{FieldErrors: errs}
	}
	return nil
}

// DescriptorPath returns where the descriptor is written.
func (o Options) DescriptorPath() string {
	if filepath.IsAbs(o.File) {
		return o.File
	}
	return filepath.Join(o.WorkDir, o.File)
}

// Command returns the full build tool invocation: the tool, "-f" and the
// descriptor file, then the resolved arguments.
func (o Options) Command() []string {
	args := ResolveToolArgs(o.Args, o.DefaultGoals)
	cmd := make([]string, 0, len(o.Tool)+2+len(args))
	cmd = append(cmd, o.Tool...)
	cmd = append(cmd, "-f", o.File)
	return append(cmd, args...)
}

// ResolveToolArgs returns residual unless it is empty, in which case it
// returns defaults, or "clean install" when defaults is empty too. The
// result never aliases either input.
func ResolveToolArgs(residual, defaults []string) []string {
	switch {
	case len(residual) > 0:
		return slices.Clone(residual)
	case len(defaults) > 0:
		return slices.Clone(defaults)
	default:
		return slices.Clone(config.DefaultGoals)
	}
}

// DefaultArtifactID derives an artifact id from every segment of path
// joined with "-", e.g. "/home/dev/myapp" becomes "home-dev-myapp". It is
// not the base name: running in "/work/myapp" gives "work-myapp", not
// "myapp". Pass --artifactId to get the short form. A volume name is
// dropped. The root directory yields "".
func DefaultArtifactID(path string) string {
	path = strings.TrimPrefix(path, filepath.VolumeName(path))
	var segments []string
	for _, s := range strings.Split(filepath.ToSlash(path), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, "-")
}

// String summarizes the options for debug logging.
func (o Options) String() string {
	return fmt.Sprintf("%s file=%s excludes=%q tool=%q", o.Coordinates, o.File, o.Excludes, o.Tool)
}
