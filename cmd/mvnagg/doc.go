// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the mvnagg command line.
//
// The root command discovers Maven modules in the working directory, writes
// an aggregator POM listing them and runs Maven on it. Subcommands manage the
// configuration file and shell completion.
package cmd
