// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// mergedOutput is a single OS pipe whose write end is handed to the child as
// both stdout and stderr, so the parent reads one combined stream.
type mergedOutput struct {
	reader *os.File
	writer *os.File
}

func newMergedOutput(cmd *exec.Cmd) (*mergedOutput, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	return &mergedOutput{reader: pr, writer: pw}, nil
}

func (m *mergedOutput) closeWriter() { _ = m.writer.Close() }

func (m *mergedOutput) closeReader() { _ = m.reader.Close() }

func (m *mergedOutput) abort() {
	m.closeWriter()
	m.closeReader()
}

// readLines consumes r to EOF. Only the trailing "\n" of each line is
// removed; "\r" and other whitespace are preserved. A final line without a
// newline is kept. When echo is set every line is written to w as soon as it
// has been read.
func readLines(r io.Reader, w io.Writer, echo bool) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, line)
			if echo {
				fmt.Fprintln(w, line)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return lines, err
		}
	}
}

// startFailure converts a cmd.Start error into a Result. A missing
// executable gets the shell's 127 so callers can tell it apart.
func startFailure(name string, err error) *Result {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return NewErrorResult(ExitCodeNotFound, fmt.Errorf("build tool %q not found: %w", name, err))
	}
	return NewErrorResult(ExitCodeFailure, fmt.Errorf("failed to start build tool %q: %w", name, err))
}

// extractExitCode determines the Result from the error returned by cmd.Wait.
func extractExitCode(ctx context.Context, err error) *Result {
	if ctx.Err() != nil {
		return NewErrorResult(ExitCodeInterrupted, fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx)))
	}

	if err == nil {
		return &Result{}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode := ExitCode(exitErr.ExitCode())
		if validateErr := exitCode.Validate(); validateErr != nil {
			// -1: terminated by a signal that was not ours.
			return NewErrorResult(ExitCodeFailure, fmt.Errorf("build tool terminated abnormally: %w", err))
		}
		return &Result{ExitCode: exitCode}
	}

	return NewErrorResult(ExitCodeFailure, err)
}
