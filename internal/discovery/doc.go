// SPDX-License-Identifier: MPL-2.0

// Package discovery finds Maven module directories.
//
// A module is an immediate subdirectory of the working directory that holds
// its own pom.xml and whose name matches none of the exclude patterns. Hidden
// entries (names starting with a dot) are always excluded.
package discovery
