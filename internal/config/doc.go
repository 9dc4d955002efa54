// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is merged from the user config file (~/.config/mvnagg/config.cue or the XDG
// equivalent on Linux, ~/Library/Application Support/mvnagg/config.cue on macOS,
// %APPDATA%\mvnagg\config.cue on Windows) and a project-local mvnagg.cue in the working
// directory, in that order. MVNAGG_* environment variables override both.
//
// Configuration files are validated against a CUE schema (config_schema.cue) before they
// are merged, so type errors are reported with the offending field path.
package config
