// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"mvnagg/internal/issue"
	"mvnagg/internal/runtime"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// ExitCodeUsage is returned for malformed or unknown flags.
const ExitCodeUsage runtime.ExitCode = 2

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the values bound to the root command's flags.
type rootFlags struct {
	groupID        string
	artifactID     string
	pomVersion     string
	excludes       []string
	file           string
	tool           string
	generateOnly   bool
	noEcho         bool
	ignoreExitCode bool
	verbose        bool
	configFile     string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "mvnagg [flags] [-- maven-args...]",
		Short: "Aggregate Maven modules and build them in one run",
		Long: TitleStyle.Render("mvnagg") + SubtitleStyle.Render(" - Aggregate Maven modules and build them in one run") + `

mvnagg looks for subdirectories of the current directory that contain a
pom.xml, writes an aggregator POM listing them as modules and runs Maven
on it. Hidden directories are always skipped.

` + SubtitleStyle.Render("Examples:") + `
  mvnagg                          Build every module with 'clean install'
  mvnagg -x 'tmp.*' old           Skip tmp-* and old
  mvnagg -g com.acme -- verify    Use groupId com.acme and run 'verify'
  mvnagg --generate-only          Only write .pom.xml
  mvnagg config show              Show current configuration`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAggregate(cmd, app, flags, args)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&flags.groupID, "groupId", "g", "", "groupId of the aggregator POM (default from config, else \"na\")")
	f.StringVarP(&flags.artifactID, "artifactId", "a", "", "artifactId of the aggregator POM (default: current directory path joined with '-')")
	f.StringVar(&flags.pomVersion, "pom-version", "", "version of the aggregator POM, also accepted as -pv (default from config, else \"0.0.1-SNAPSHOT\")")
	f.StringArrayVarP(&flags.excludes, "excludes", "x", nil, "regular expressions of directory names to skip; -x takes one or more patterns")
	f.StringVarP(&flags.file, "file", "f", "", "file the aggregator POM is written to (default \".pom.xml\")")
	f.StringVar(&flags.tool, "tool", "", "build tool command line (default \"mvn\")")
	f.BoolVar(&flags.generateOnly, "generate-only", false, "write the aggregator POM without running the build tool")
	f.BoolVar(&flags.noEcho, "no-echo", false, "do not print the build tool output while it runs")
	f.BoolVar(&flags.ignoreExitCode, "ignore-exit-code", false, "exit 0 even when the build tool fails")

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.config/mvnagg/config.cue and ./mvnagg.cue)")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		printUsage(cmd.ErrOrStderr(), cmd)
		return &ExitError{Code: ExitCodeUsage, Err: err}
	})

	rootCmd.AddCommand(newConfigCommand(app, flags))
	rootCmd.AddCommand(newCompletionCommand(app))

	return rootCmd
}

// printUsage writes the plain, unstyled usage text of cmd.
func printUsage(w io.Writer, cmd *cobra.Command) {
	fmt.Fprintf(w, "Usage:\n  %s\n\nFlags:\n%s", cmd.UseLine(), cmd.LocalFlags().FlagUsages())
	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprintf(w, "\nGlobal Flags:\n%s", cmd.InheritedFlags().FlagUsages())
	}
	fmt.Fprintln(w)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs mvnagg with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		renderError(os.Stderr, err, false)
		os.Exit(int(runtime.ExitCodeFailure))
	}
	os.Exit(int(execute(context.Background(), app, os.Args[1:])))
}

// execute runs the command tree for args and returns the process exit code.
func execute(ctx context.Context, app *App, args []string) runtime.ExitCode {
	rootCmd := NewRootCommand(app)

	normalized, normErr := normalizeArgs(args)
	if normErr != nil {
		// Report through the flag error path once the help and version
		// flags exist, so the usage matches cobra's own parse errors.
		normalized = []string{}
		rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
			return cmd.FlagErrorFunc()(cmd, normErr)
		}
	}
	rootCmd.SetArgs(normalized)

	// fang overrides rootCmd.Version, so the version goes through fang.WithVersion.
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return runtime.ExitCodeFailure
}

// handleError prints errors that reach fang. Errors already reported by the
// run itself arrive as an ExitError without a cause and are not repeated.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err == nil {
			return
		}
		err = exitErr.Err
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
