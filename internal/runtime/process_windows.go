// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import (
	"os"
	"os/exec"
	"syscall"
)

// configureSysProcAttr keeps the child from flashing a console window.
// Purely cosmetic.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

// interruptProcess kills the child: os.Interrupt cannot be delivered to
// another process on Windows.
func interruptProcess(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}
