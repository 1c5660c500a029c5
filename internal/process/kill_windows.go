//go:build windows

// Package process stops a launched browser together with its helper
// processes (renderers, GPU and network services).
package process

import (
	"fmt"
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates pid and its child tree with taskkill
// (/F force, /T tree).
func KillProcessGroup(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("refusing to kill process tree %d", pid)
	}
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run(); err != nil {
		return fmt.Errorf("killing process tree %d: %w", pid, err)
	}
	return nil
}
