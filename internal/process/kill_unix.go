//go:build !windows

// Package process stops a launched browser together with its helper
// processes (renderers, GPU and network services).
package process

import (
	"fmt"
	"syscall"
)

// KillProcessGroup sends SIGKILL to the process group led by pid.
// PIDs 0 and 1 are refused: the negative form would hit our own group or
// every process we may signal.
func KillProcessGroup(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("refusing to kill process group %d", pid)
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		return fmt.Errorf("killing process group %d: %w", pid, err)
	}
	return nil
}
