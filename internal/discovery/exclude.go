// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// HiddenPattern excludes every entry whose name starts with a dot (.git,
// .idea, .mvn, ...). It is always appended after the caller's patterns.
const HiddenPattern = `\..*`

// ErrInvalidExcludePattern is the sentinel error wrapped by InvalidExcludePatternError.
var ErrInvalidExcludePattern = errors.New("invalid exclude pattern")

type (
	// InvalidExcludePatternError is returned when an exclude pattern does not compile.
	InvalidExcludePatternError struct {
		Pattern string
		Cause   error
	}

	// ExcludeMatcher decides whether a directory entry is skipped. All patterns
	// are combined into one alternation that must match the whole base name.
	ExcludeMatcher struct {
		patterns   []string
		expression string
		re         *regexp.Regexp
	}
)

// Error implements the error interface.
func (e *InvalidExcludePatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q: %v", e.Pattern, e.Cause)
}

// Unwrap returns ErrInvalidExcludePattern for errors.Is compatibility.
func (e *InvalidExcludePatternError) Unwrap() error { return ErrInvalidExcludePattern }

// NewExcludeMatcher compiles the given patterns plus HiddenPattern. Each
// pattern is compiled on its own first so an error names the culprit.
func NewExcludeMatcher(patterns []string) (*ExcludeMatcher, error) {
	all := make([]string, 0, len(patterns)+1)
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, &InvalidExcludePatternError{Pattern: p, Cause: err}
		}
		all = append(all, p)
	}
	all = append(all, HiddenPattern)

	expr := "(" + strings.Join(all, ")|(") + ")"
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, &InvalidExcludePatternError{Pattern: expr, Cause: err}
	}

	return &ExcludeMatcher{patterns: all, expression: expr, re: re}, nil
}

// Match reports whether name is excluded.
func (m *ExcludeMatcher) Match(name string) bool {
	return m.re.MatchString(name)
}

// Expression returns the combined alternation, e.g. `(tmp.*)|(\..*)`.
func (m *ExcludeMatcher) Expression() string {
	return m.expression
}

// Patterns returns the effective patterns, HiddenPattern last.
func (m *ExcludeMatcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}
