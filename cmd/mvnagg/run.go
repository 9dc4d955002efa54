// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"mvnagg/internal/app/aggregate"
	"mvnagg/internal/config"
	"mvnagg/internal/issue"
	"mvnagg/internal/pom"
	"mvnagg/internal/runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	errToolNotFound = errors.New("build tool not found")
	errToolFailed   = errors.New("build tool could not be run")
	errConfigLoad   = errors.New("failed to load configuration")
)

// runAggregate is the root command: resolve options, prepare the descriptor,
// print it and run the build tool.
func runAggregate(cmd *cobra.Command, app *App, flags *rootFlags, args []string) error {
	ctx := cmd.Context()
	verbose := flags.verbose

	workDir, err := app.Getwd()
	if err != nil {
		return app.fail(issue.WrapWithContext(err, "determine working directory", ""), verbose)
	}

	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configFile, WorkDir: workDir})
	if err != nil {
		return app.fail(fmt.Errorf("%w: %w", errConfigLoad, err), verbose)
	}
	if !cmd.Flags().Changed("verbose") {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		app.logger.SetLevel(log.DebugLevel)
	}

	opts, err := resolveOptions(cmd, flags, cfg, workDir, args)
	if err != nil {
		return app.fail(err, verbose)
	}
	app.logger.Debug("resolved options", "options", opts.String())

	svc := aggregate.NewService(app.Fs, app.Runner, app.logger)
	plan, err := svc.Prepare(ctx, opts)
	if err != nil {
		return app.fail(err, verbose)
	}

	renderModules(app.stdout, plan.Modules)
	for _, diag := range plan.Diagnostics {
		app.logger.Warn(diag.Message, "path", diag.Path, "error", diag.Cause)
	}
	renderDescriptor(app.stdout, plan.File, plan.Descriptor)

	if flags.generateOnly {
		return nil
	}

	echo := cfg.UI.Echo && !flags.noEcho
	if echo {
		renderCommandLine(app.stdout, plan.Command)
	}

	result := svc.Execute(ctx, plan, echo, app.stdout)
	if result.Error != nil {
		return app.failRun(result, verbose)
	}

	if !result.ExitCode.IsSuccess() {
		propagate := cfg.PropagateExitCode && !flags.ignoreExitCode
		app.logger.Debug("build tool failed", "exit_code", result.ExitCode, "propagate", propagate)
		if propagate {
			return &ExitError{Code: result.ExitCode}
		}
	}
	return nil
}

// resolveOptions merges flags over config values. A flag only wins when it
// was given on the command line.
func resolveOptions(cmd *cobra.Command, flags *rootFlags, cfg *config.Config, workDir string, args []string) (aggregate.Options, error) {
	changed := cmd.Flags().Changed

	coords := pom.Coordinates{
		GroupID:    cfg.GroupID,
		ArtifactID: aggregate.DefaultArtifactID(workDir),
		Version:    cfg.PomVersion,
	}
	if changed("groupId") {
		coords.GroupID = flags.groupID
	}
	if changed("artifactId") {
		coords.ArtifactID = flags.artifactID
	}
	if changed("pom-version") {
		coords.Version = flags.pomVersion
	}

	file := string(cfg.File)
	if changed("file") {
		file = flags.file
	}

	toolLine := string(cfg.BuildTool)
	if changed("tool") {
		toolLine = flags.tool
	}
	tool, err := runtime.ParseCommandLine(toolLine)
	if err != nil {
		return aggregate.Options{}, err
	}

	excludes := append(cfg.ExcludeStrings(), flags.excludes...)

	return aggregate.Options{
		Coordinates:  coords,
		Excludes:     excludes,
		File:         file,
		Args:         args,
		DefaultGoals: cfg.DefaultGoals,
		Tool:         tool,
		WorkDir:      workDir,
	}, nil
}

// failRun reports a build tool run that did not produce an exit status of
// its own.
func (a *App) failRun(result *runtime.Result, verbose bool) error {
	switch {
	case errors.Is(result.Error, runtime.ErrInterrupted):
		a.logger.Warn("build interrupted")
		a.logger.Debug("interrupt cause", "error", result.Error)
		return &ExitError{Code: runtime.ExitCodeInterrupted}
	case result.ExitCode == runtime.ExitCodeNotFound:
		return a.fail(fmt.Errorf("%w: %w", errToolNotFound, result.Error), verbose)
	default:
		return a.fail(fmt.Errorf("%w: %w", errToolFailed, result.Error), verbose)
	}
}
