// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"
)

func TestNewErrorResult(t *testing.T) {
	t.Parallel()

	testErr := errors.New("test error")
	result := NewErrorResult(ExitCodeNotFound, testErr)

	if result.ExitCode != ExitCodeNotFound {
		t.Errorf("expected ExitCode %d, got %d", ExitCodeNotFound, result.ExitCode)
	}
	if !errors.Is(result.Error, testErr) {
		t.Errorf("expected error %v, got %v", testErr, result.Error)
	}
	if len(result.Stdout) != 0 || len(result.Stderr) != 0 {
		t.Errorf("expected no output, got stdout=%q stderr=%q", result.Stdout, result.Stderr)
	}
}

func TestResult_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{"zero value", Result{}, true},
		{"non-zero exit", Result{ExitCode: 1}, false},
		{"error with zero exit", Result{Error: errors.New("read failed")}, false},
		{"interrupted", Result{ExitCode: ExitCodeInterrupted, Error: ErrInterrupted}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.result.Success(); got != tt.want {
				t.Errorf("Success() = %v, want %v", got, tt.want)
			}
		})
	}
}
