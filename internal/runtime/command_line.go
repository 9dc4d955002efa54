// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ErrInvalidCommandLine is returned when a build tool command line cannot be
// split into words.
var ErrInvalidCommandLine = errors.New("invalid build tool command line")

// ParseCommandLine splits a build tool command line such as
// `./mvnw -B` or `"$MAVEN_HOME/bin/mvn" -q` into words using POSIX shell
// quoting rules. Parameter expansions are resolved from the process
// environment; command substitution is rejected by the parser.
func ParseCommandLine(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidCommandLine)
	}
	fields, err := shell.Fields(s, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidCommandLine, s, err)
	}
	if len(fields) == 0 || fields[0] == "" {
		return nil, fmt.Errorf("%w: %q expands to nothing", ErrInvalidCommandLine, s)
	}
	return fields, nil
}
