//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// sysProcAttr puts the engine in its own process group so terminal job-control
// signals aimed at us (ctrl+z, ctrl+c) do not reach it directly.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killProcess kills the engine's whole process group.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	return cmd.Process.Kill()
}
