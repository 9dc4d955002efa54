// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
)

// errMissingExcludePattern is returned when -x/--excludes has no pattern.
var errMissingExcludePattern = errors.New("flag needs an argument: -x/--excludes requires at least one pattern")

// normalizeArgs rewrites the argument vector into a form pflag can parse:
//
//   - "-pv V", "-pv=V" and "-pvV" become "--pom-version V" and
//     "--pom-version=V";
//   - "-x a b c" and "--excludes a b c" consume every following token that
//     does not start with "-" and become one "--excludes" per pattern.
//
// Everything from "--" on is copied verbatim.
func normalizeArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...), nil
		case arg == "-pv":
			out = append(out, "--pom-version")
		case strings.HasPrefix(arg, "-pv="):
			out = append(out, "--pom-version="+strings.TrimPrefix(arg, "-pv="))
		case strings.HasPrefix(arg, "-pv"):
			out = append(out, "--pom-version="+strings.TrimPrefix(arg, "-pv"))
		case arg == "-x" || arg == "--excludes":
			n := 0
			for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				n++
				out = append(out, "--excludes", args[i])
			}
			if n == 0 {
				return nil, errMissingExcludePattern
			}
		default:
			out = append(out, arg)
		}
	}
	return out, nil
}
