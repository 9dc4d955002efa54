// SPDX-License-Identifier: MPL-2.0

// Package runtime runs the external build tool.
//
// ProcessRunner starts one native child process whose stdout and stderr
// share a single pipe, with stdin attached to the null device. Output is read
// line by line, optionally echoed while it streams, and returned in a Result
// together with the exit code. There is no timeout; cancelling the context
// interrupts the child.
package runtime
