//go:build windows

// Package process cleans up child process trees left by headless browsers.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates pid and its children with taskkill /F /T.
// Pids below 2 are ignored.
func KillProcessGroup(pid int) {
	if pid < 2 {
		return
	}
	// Errors are ignored; the launcher kills the main process as well.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
