//go:build unix

package terminal

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/deep60/VoidCLI/internal/logging"
)

// setupPTYCommand makes the PTY the child's controlling terminal.
// Ctty is the FD number in the child (0 = stdin, which xpty wires to
// the PTY slave).
func setupPTYCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}
}

var ioctlSetWinsize = func(fd int, cols, rows int) error {
	return unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, &unix.Winsize{
		Row: uint16(rows), //nolint:gosec
		Col: uint16(cols), //nolint:gosec
	})
}

var ioctlGetPGRP = func(fd int) (int, error) {
	return unix.IoctlGetInt(fd, unix.TIOCGPGRP)
}

// setSlaveWinsizeBestEffort mirrors a resize onto the slave FD. Some
// platforms only propagate master-side TIOCSWINSZ to the session
// leader, not the whole foreground group.
func setSlaveWinsizeBestEffort(pty any, cols, rows int) {
	if pty == nil || cols <= 0 || rows <= 0 {
		return
	}
	slave, ok := pty.(interface{ Slave() *os.File })
	if !ok {
		return
	}
	f := slave.Slave()
	if f == nil {
		return
	}
	if err := ioctlSetWinsize(int(f.Fd()), cols, rows); err != nil {
		logging.LogEvery(
			context.Background(),
			"terminal.pty.resize.slave",
			2*time.Second,
			slog.LevelDebug,
			"terminal: pty slave winsize set failed",
			slog.Any("err", err),
			slog.Int("cols", cols),
			slog.Int("rows", rows),
		)
	}
}

var killProcessGroup = syscall.Kill

// signalResize notifies the child of a geometry change. The
// foreground process group of the controlling terminal gets SIGWINCH;
// when it cannot be determined, the child's own group does.
func signalResize(pid int, pty any) {
	if pid <= 0 {
		return
	}
	if pgrp, ok := foregroundPGRP(pty); ok {
		_ = killProcessGroup(-pgrp, syscall.SIGWINCH)
		return
	}
	_ = killProcessGroup(-pid, syscall.SIGWINCH)
}

func foregroundPGRP(pty any) (int, bool) {
	if pty == nil {
		return 0, false
	}
	// The foreground group is associated with the controlling
	// terminal, which is the slave end.
	if slave, ok := pty.(interface{ Slave() *os.File }); ok {
		if f := slave.Slave(); f != nil {
			if pgrp, err := ioctlGetPGRP(int(f.Fd())); err == nil && pgrp > 0 {
				return pgrp, true
			}
		}
	}
	return 0, false
}

// terminateProcess asks the child to exit. SIGTERM first; callers wait
// for the exit observer rather than polling.
func terminateProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Signal(syscall.SIGTERM)
}
