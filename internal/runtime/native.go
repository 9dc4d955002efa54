// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// DefaultWaitDelay is how long an interrupted build tool gets to shut down
// before it is killed.
const DefaultWaitDelay = 10 * time.Second

var (
	// ErrEmptyCommand is returned when a Request has no executable.
	ErrEmptyCommand = errors.New("empty command")
	// ErrInterrupted is wrapped by the Result error when the context was
	// cancelled while the build tool was running.
	ErrInterrupted = errors.New("build tool interrupted")
)

type (
	// Request describes a single build tool invocation.
	Request struct {
		// Args is the executable followed by its arguments.
		Args []string
		// Dir is the working directory; empty means the current directory.
		Dir string
		// Echo streams every output line to Stdout as it arrives.
		Echo bool
		// Stdout receives echoed lines. Defaults to os.Stdout.
		Stdout io.Writer
	}

	// ProcessRunner runs the build tool as a native child process with its
	// stdout and stderr merged into one stream.
	ProcessRunner struct {
		// WaitDelay bounds how long an interrupted child may keep running
		// before it is killed. Zero means DefaultWaitDelay.
		WaitDelay time.Duration
	}
)

// NewProcessRunner creates a runner with default settings.
func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run starts exactly one child process and blocks until it exits. There is no
// timeout: the build is in full control. Cancelling ctx forwards an interrupt
// to the child (see interruptProcess) and kills it after WaitDelay.
func (r *ProcessRunner) Run(ctx context.Context, req Request) *Result {
	if len(req.Args) == 0 || req.Args[0] == "" {
		return NewErrorResult(ExitCodeFailure, ErrEmptyCommand)
	}

	stdout := req.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	cmd := exec.CommandContext(ctx, req.Args[0], req.Args[1:]...)
	cmd.Dir = req.Dir
	// A nil Stdin connects the child to the null device, so it can never
	// block waiting for interactive input.
	cmd.Stdin = nil
	cmd.Cancel = func() error { return interruptProcess(cmd.Process) }
	cmd.WaitDelay = r.waitDelay()
	configureSysProcAttr(cmd)

	out, err := newMergedOutput(cmd)
	if err != nil {
		return NewErrorResult(ExitCodeFailure, fmt.Errorf("failed to create output pipe: %w", err))
	}

	if err := cmd.Start(); err != nil {
		out.abort()
		if ctx.Err() != nil {
			return extractExitCode(ctx, err)
		}
		return startFailure(req.Args[0], err)
	}
	// The child holds its own copy of the write end; closing ours lets the
	// reader see EOF once the child (and any grandchildren) are done.
	out.closeWriter()

	lines, readErr := readLines(out.reader, stdout, req.Echo)
	out.closeReader()

	waitErr := cmd.Wait()
	result := extractExitCode(ctx, waitErr)
	result.Stdout = lines
	if result.Error == nil && readErr != nil {
		result.Error = fmt.Errorf("failed to read build tool output: %w", readErr)
	}
	return result
}

func (r *ProcessRunner) waitDelay() time.Duration {
	if r.WaitDelay > 0 {
		return r.WaitDelay
	}
	return DefaultWaitDelay
}
