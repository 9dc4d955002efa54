// SPDX-License-Identifier: MPL-2.0

// Package aggregate wires module discovery, descriptor generation and the
// build tool invocation into one pipeline.
//
// Prepare performs every step up to and including writing the descriptor and
// returns a Plan; Execute runs the build tool described by that Plan. The
// split lets callers report the modules and the descriptor before the
// (possibly long) build starts.
package aggregate
