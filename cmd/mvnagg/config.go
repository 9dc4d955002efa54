// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"mvnagg/internal/config"
	"mvnagg/internal/issue"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the `mvnagg config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mvnagg configuration",
		Long: `Manage mvnagg configuration.

The user configuration is stored in:
  - Linux: ~/.config/mvnagg/config.cue
  - macOS: ~/Library/Application Support/mvnagg/config.cue
  - Windows: %APPDATA%\mvnagg\config.cue

A mvnagg.cue file in the current directory is merged on top of it.
Environment variables prefixed with MVNAGG_ override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, flags.configFile)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app.stdout)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, flags.configFile)
		},
	})

	var asTOML bool
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context(), app, flags.configFile)
			if err != nil {
				return err
			}

			if asTOML {
				out, err := config.GenerateTOML(cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(app.stdout, out)
				return nil
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	}
	dumpCmd.Flags().BoolVar(&asTOML, "toml", false, "output TOML instead of CUE")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

// loadConfig loads configuration for the config subcommands. Failures are
// rendered with the config issue help.
func loadConfig(ctx context.Context, app *App, configFile string) (*config.Config, error) {
	workDir, err := app.Getwd()
	if err != nil {
		return nil, issue.WrapWithContext(err, "determine working directory", "")
	}
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: configFile, WorkDir: workDir})
	if err != nil {
		return nil, app.fail(fmt.Errorf("%w: %w", errConfigLoad, err), false)
	}
	return cfg, nil
}

func showConfig(ctx context.Context, app *App, configFile string) error {
	cfg, err := loadConfig(ctx, app, configFile)
	if err != nil {
		return err
	}

	w := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	paths, err := candidatePaths(app, configFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("Config files"))
	for _, p := range paths {
		state := SubtitleStyle.Render("(not found)")
		if fileExists(app.Fs, p) {
			state = valueStyle.Render("(loaded)")
		}
		fmt.Fprintf(w, "  %s %s\n", p, state)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("group_id"), valueStyle.Render(cfg.GroupID))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("pom_version"), valueStyle.Render(cfg.PomVersion))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("file"), valueStyle.Render(cfg.File.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("build_tool"), valueStyle.Render(cfg.BuildTool.String()))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("default_goals"), valueStyle.Render(strings.Join(cfg.DefaultGoals, " ")))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("propagate_exit_code"), valueStyle.Render(fmt.Sprintf("%v", cfg.PropagateExitCode)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("excludes"))
	if len(cfg.Excludes) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range cfg.Excludes {
			fmt.Fprintf(w, "  - %s\n", valueStyle.Render(p.String()))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  echo: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Echo)))

	return nil
}

func initConfig(w io.Writer) error {
	path, created, err := config.CreateDefaultConfig("")
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(w, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App, configFile string) error {
	paths, err := candidatePaths(app, configFile)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(app.stdout, p)
	}
	return nil
}

// candidatePaths lists the config files consulted from the current
// directory, in merge order.
func candidatePaths(app *App, configFile string) ([]string, error) {
	workDir, err := app.Getwd()
	if err != nil {
		return nil, issue.WrapWithContext(err, "determine working directory", "")
	}
	return config.CandidatePaths(config.LoadOptions{ConfigFilePath: configFile, WorkDir: workDir})
}

// fileExists checks if a file exists and is not a directory.
func fileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
