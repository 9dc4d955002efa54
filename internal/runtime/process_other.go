// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"os"
	"os/exec"
)

// configureSysProcAttr is a no-op outside Windows; there is no console
// window to suppress.
func configureSysProcAttr(*exec.Cmd) {}

// interruptProcess forwards SIGINT so the build tool can shut down the way
// it would on Ctrl+C in a terminal.
func interruptProcess(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Signal(os.Interrupt)
}
