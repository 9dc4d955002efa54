// SPDX-License-Identifier: MPL-2.0

package aggregate

import (
	"context"
	"io"

	"mvnagg/internal/discovery"
	"mvnagg/internal/pom"
	"mvnagg/internal/runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type (
	// Runner runs one build tool invocation.
	Runner interface {
		Run(ctx context.Context, req runtime.Request) *runtime.Result
	}

	// Plan is everything Prepare produced; Execute consumes it.
	Plan struct {
		// WorkDir is the directory that was scanned.
		WorkDir string
		// Modules are the discovered module names in discovery order.
		Modules []string
		// Diagnostics are the entries discovery skipped.
		Diagnostics []discovery.Diagnostic
		// ExclusionExpression is the combined exclusion regex.
		ExclusionExpression string
		// File is the descriptor file as passed to the build tool.
		File string
		// DescriptorPath is where the descriptor was written.
		DescriptorPath string
		// Descriptor is the exact content written to DescriptorPath.
		Descriptor []byte
		// Command is the build tool invocation.
		Command []string
	}

	// Service runs the aggregate pipeline against a filesystem and a runner.
	Service struct {
		fs     afero.Fs
		runner Runner
		logger *log.Logger
	}
)

// NewService creates a Service. A nil logger discards debug output.
func NewService(fsys afero.Fs, runner Runner, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{fs: fsys, runner: runner, logger: logger}
}

// Prepare validates opts, discovers modules, renders the descriptor and
// writes it. Nothing is written when an earlier step fails.
func (s *Service) Prepare(ctx context.Context, opts Options) (Plan, error) {
	if err := opts.Validate(); err != nil {
		return Plan{}, err
	}

	matcher, err := discovery.NewExcludeMatcher(opts.Excludes)
	if err != nil {
		return Plan{}, err
	}
	s.logger.Debug("discovering modules", "dir", opts.WorkDir, "exclusions", matcher.Expression())

	found, err := discovery.Discover(ctx, s.fs, opts.WorkDir, matcher)
	if err != nil {
		return Plan{}, err
	}

	project, err := pom.NewAggregator(opts.Coordinates, found.Modules, matcher.Expression())
	if err != nil {
		return Plan{}, err
	}
	data, err := project.Render()
	if err != nil {
		return Plan{}, err
	}

	path := opts.DescriptorPath()
	if err := pom.Write(s.fs, path, data); err != nil {
		return Plan{}, err
	}
	s.logger.Debug("descriptor written", "path", path, "modules", len(found.Modules), "bytes", len(data))

	return Plan{
		WorkDir:             opts.WorkDir,
		Modules:             found.Modules,
		Diagnostics:         found.Diagnostics,
		ExclusionExpression: matcher.Expression(),
		File:                opts.File,
		DescriptorPath:      path,
		Descriptor:          data,
		Command:             opts.Command(),
	}, nil
}

// Execute runs the plan's build tool in the plan's working directory. When
// echo is set the tool output is streamed to stdout as it arrives.
func (s *Service) Execute(ctx context.Context, plan Plan, echo bool, stdout io.Writer) *runtime.Result {
	s.logger.Debug("running build tool", "command", plan.Command, "dir", plan.WorkDir)
	result := s.runner.Run(ctx, runtime.Request{
		Args:   plan.Command,
		Dir:    plan.WorkDir,
		Echo:   echo,
		Stdout: stdout,
	})
	s.logger.Debug("build tool finished", "exit_code", result.ExitCode, "lines", len(result.Stdout))
	return result
}
