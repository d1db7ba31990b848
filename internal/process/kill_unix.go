//go:build !windows

// Package process cleans up child process trees left by headless browsers.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
// Pids below 2 are ignored: 0 would target our own group and 1 is init.
func KillProcessGroup(pid int) {
	if pid < 2 {
		return
	}
	// Errors are ignored; the launcher kills the main process as well.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
