// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// DefaultGroupID is written to the descriptor when no group id is given.
	DefaultGroupID = "na"
	// DefaultPomVersion is written to the descriptor when no version is given.
	DefaultPomVersion = "0.0.1-SNAPSHOT"
	// DefaultDescriptorFile is the default output file of the descriptor.
	DefaultDescriptorFile DescriptorFile = ".pom.xml"
	// DefaultBuildTool is the build tool invoked after generation.
	DefaultBuildTool BuildTool = "mvn"
)

var (
	// ErrInvalidExcludePattern is returned when an ExcludePattern does not compile.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
	// ErrInvalidDescriptorFile is returned when a DescriptorFile is blank or names a directory.
	ErrInvalidDescriptorFile = errors.New("invalid descriptor file")
	// ErrInvalidBuildTool is returned when a BuildTool is blank.
	ErrInvalidBuildTool = errors.New("invalid build tool")
	// ErrInvalidCoordinate is returned when group_id or pom_version is blank.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

// DefaultGoals are passed to the build tool when no arguments are given.
var DefaultGoals = []string{"clean", "install"}

type (
	// ExcludePattern is a regular expression matched against whole directory names.
	ExcludePattern string

	// InvalidExcludePatternError is returned when an ExcludePattern does not compile.
	// It wraps ErrInvalidExcludePattern for errors.Is() compatibility.
	InvalidExcludePatternError struct {
		Value ExcludePattern
		Cause error
	}

	// DescriptorFile is the path the generated descriptor is written to.
	DescriptorFile string

	// InvalidDescriptorFileError is returned when a DescriptorFile is invalid.
	InvalidDescriptorFileError struct {
		Value  DescriptorFile
		Reason string
	}

	// BuildTool is the command line of the build tool, e.g. "mvn" or "./mvnw -B".
	BuildTool string

	// InvalidBuildToolError is returned when a BuildTool is blank.
	InvalidBuildToolError struct {
		Value BuildTool
	}

	// InvalidCoordinateError is returned when group_id or pom_version is blank.
	InvalidCoordinateError struct {
		Field string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// GroupID is the descriptor groupId.
		GroupID string `json:"group_id" mapstructure:"group_id" toml:"group_id"`
		// PomVersion is the descriptor version.
		PomVersion string `json:"pom_version" mapstructure:"pom_version" toml:"pom_version"`
		// File is where the descriptor is written.
		File DescriptorFile `json:"file" mapstructure:"file" toml:"file"`
		// Excludes are prepended to the exclusion patterns given on the command line.
		Excludes []ExcludePattern `json:"excludes" mapstructure:"excludes" toml:"excludes"`
		// BuildTool is the command line of the build tool.
		BuildTool BuildTool `json:"build_tool" mapstructure:"build_tool" toml:"build_tool"`
		// DefaultGoals replace "clean install" when no arguments are given.
		DefaultGoals []string `json:"default_goals" mapstructure:"default_goals" toml:"default_goals"`
		// PropagateExitCode makes mvnagg exit with the build tool's exit code.
		PropagateExitCode bool `json:"propagate_exit_code" mapstructure:"propagate_exit_code" toml:"propagate_exit_code"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging and full error chains
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		// Echo streams the build tool output while it runs
		Echo bool `json:"echo" mapstructure:"echo" toml:"echo"`
	}
)

// Error implements the error interface for InvalidExcludePatternError.
func (e *InvalidExcludePatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q: %v", e.Value, e.Cause)
}

// Unwrap returns ErrInvalidExcludePattern for errors.Is() compatibility.
func (e *InvalidExcludePatternError) Unwrap() error { return ErrInvalidExcludePattern }

// String returns the string representation of the ExcludePattern.
func (p ExcludePattern) String() string { return string(p) }

// IsValid returns whether the pattern compiles as a regular expression.
func (p ExcludePattern) IsValid() (bool, []error) {
	if p == "" {
		return false, []error{&InvalidExcludePatternError{Value: p, Cause: errors.New("must be non-empty")}}
	}
	if _, err := regexp.Compile(string(p)); err != nil {
		return false, []error{&InvalidExcludePatternError{Value: p, Cause: err}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDescriptorFileError.
func (e *InvalidDescriptorFileError) Error() string {
	return fmt.Sprintf("invalid descriptor file %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidDescriptorFile for errors.Is() compatibility.
func (e *InvalidDescriptorFileError) Unwrap() error { return ErrInvalidDescriptorFile }

// String returns the string representation of the DescriptorFile.
func (f DescriptorFile) String() string { return string(f) }

// IsValid returns whether the DescriptorFile names a file.
func (f DescriptorFile) IsValid() (bool, []error) {
	s := string(f)
	switch {
	case strings.TrimSpace(s) == "":
		return false, []error{&InvalidDescriptorFileError{Value: f, Reason: "must be non-empty"}}
	case strings.ContainsRune(s, 0):
		return false, []error{&InvalidDescriptorFileError{Value: f, Reason: "must not contain NUL"}}
	case strings.HasSuffix(s, "/") || strings.HasSuffix(s, string(filepath.Separator)):
		return false, []error{&InvalidDescriptorFileError{Value: f, Reason: "must name a file, not a directory"}}
	case filepath.Base(s) == "." || filepath.Base(s) == "..":
		return false, []error{&InvalidDescriptorFileError{Value: f, Reason: "must name a file, not a directory"}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBuildToolError.
func (e *InvalidBuildToolError) Error() string {
	return fmt.Sprintf("invalid build tool %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidBuildTool for errors.Is() compatibility.
func (e *InvalidBuildToolError) Unwrap() error { return ErrInvalidBuildTool }

// String returns the string representation of the BuildTool.
func (b BuildTool) String() string { return string(b) }

// IsValid returns whether the BuildTool is non-blank.
func (b BuildTool) IsValid() (bool, []error) {
	if strings.TrimSpace(string(b)) == "" {
		return false, []error{&InvalidBuildToolError{Value: b}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCoordinateError.
func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid %s: must be non-empty", e.Field)
}

// Unwrap returns ErrInvalidCoordinate for errors.Is() compatibility.
func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// IsValid returns whether the Config has valid fields.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.GroupID) == "" {
		errs = append(errs, &InvalidCoordinateError{Field: "group_id"})
	}
	if strings.TrimSpace(c.PomVersion) == "" {
		errs = append(errs, &InvalidCoordinateError{Field: "pom_version"})
	}
	if valid, fieldErrs := c.File.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, p := range c.Excludes {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.BuildTool.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches both the config sentinel and the field sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// ExcludeStrings returns the exclusion patterns as plain strings.
func (c *Config) ExcludeStrings() []string {
	out := make([]string, len(c.Excludes))
	for i, p := range c.Excludes {
		out[i] = string(p)
	}
	return out
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		GroupID:           DefaultGroupID,
		PomVersion:        DefaultPomVersion,
		File:              DefaultDescriptorFile,
		Excludes:          []ExcludePattern{},
		BuildTool:         DefaultBuildTool,
		DefaultGoals:      append([]string(nil), DefaultGoals...),
		PropagateExitCode: true,
		UI: UIConfig{
			Verbose: false,
			Echo:    true,
		},
	}
}
