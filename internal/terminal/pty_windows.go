//go:build windows

package terminal

import "os/exec"

// Windows support is a documented stub: xpty's ConPTY backend handles
// allocation and resize, and the Unix-only niceties below degrade to
// no-ops.

func setupPTYCommand(_ *exec.Cmd) {}

func setSlaveWinsizeBestEffort(_ any, _, _ int) {}

func signalResize(_ int, _ any) {}

func terminateProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
