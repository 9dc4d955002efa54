// SPDX-License-Identifier: MPL-2.0

// Package pom builds the aggregator project descriptor (a Maven POM with
// packaging "pom") that lists discovered modules, and writes it to disk.
//
// The document is a tree of encoding/xml structs, so every substituted value
// is escaped on output. Coordinates and module names are validated before
// rendering: a value that XML cannot represent is rejected instead of being
// silently replaced.
package pom
