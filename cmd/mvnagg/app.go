// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"mvnagg/internal/app/aggregate"
	"mvnagg/internal/config"
	"mvnagg/internal/runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App reference and reaches the
	// filesystem, the build tool and the configuration only through it.
	App struct {
		Config ConfigProvider
		Runner aggregate.Runner
		Fs     afero.Fs
		Getwd  func() (string, error)
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests supply an in-memory
	// filesystem, a fake runner and buffers.
	Dependencies struct {
		Config ConfigProvider
		Runner aggregate.Runner
		Fs     afero.Fs
		Getwd  func() (string, error)
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Runner == nil {
		deps.Runner = runtime.NewProcessRunner()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}

	return &App{
		Config: deps.Config,
		Runner: deps.Runner,
		Fs:     deps.Fs,
		Getwd:  deps.Getwd,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		logger: log.NewWithOptions(deps.Stderr, log.Options{Prefix: "mvnagg"}),
	}, nil
}

// issueStyle picks the glamour style for issue help: colored on a terminal,
// plain otherwise.
func (a *App) issueStyle() string {
	if f, ok := a.stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
