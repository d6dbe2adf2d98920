// Package terminal bridges an OS pseudo-terminal and a child shell
// process into the byte stream the emulator core consumes. It owns no
// screen state: callers pipe OutputEvent bytes through vt.Parser into
// their own vt.Screen.
package terminal

import (
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"

	xpty "github.com/charmbracelet/x/xpty"

	"github.com/deep60/VoidCLI/internal/limits"
)

// PTY owns a master/slave pseudo-terminal pair. Close is idempotent
// and unblocks any pending read on the master side.
type PTY struct {
	mu     sync.Mutex // guards the pty pointer swap during close
	pty    xpty.Pty
	closed atomic.Bool

	cols int
	rows int
}

// OpenPTY allocates a pseudo-terminal at the given geometry.
// Non-positive dimensions fall back to 80x24.
func OpenPTY(cols, rows int) (*PTY, error) {
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	cols, rows = limits.Clamp(cols, rows)

	pty, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, fmt.Errorf("terminal: open pty: %w", err)
	}
	return &PTY{pty: pty, cols: cols, rows: rows}, nil
}

// Cols returns the current column count.
func (p *PTY) Cols() int { return p.cols }

// Rows returns the current row count.
func (p *PTY) Rows() int { return p.rows }

// Start launches cmd with its stdio wired to the slave side. After a
// successful start only the master is retained here; the slave lives
// on in the child's stdio.
func (p *PTY) Start(cmd *exec.Cmd) error {
	pty := p.current()
	if pty == nil {
		return &SessionClosedError{Reason: SessionClosedPTYClosed}
	}
	if err := pty.Start(cmd); err != nil {
		return fmt.Errorf("terminal: start process: %w", err)
	}
	return nil
}

// Read reads from the master side. Blocks until data, closure, or an
// error; Close unblocks it.
func (p *PTY) Read(b []byte) (int, error) {
	pty := p.current()
	if pty == nil {
		return 0, &SessionClosedError{Reason: SessionClosedPTYClosed}
	}
	return pty.Read(b)
}

// Write writes to the master side (appears on the child's stdin).
func (p *PTY) Write(b []byte) (int, error) {
	pty := p.current()
	if pty == nil {
		return 0, &SessionClosedError{Reason: SessionClosedPTYClosed}
	}
	return pty.Write(b)
}

// Resize issues a window-size update on the master and, best-effort,
// on the slave side.
func (p *PTY) Resize(cols, rows int) error {
	cols, rows = limits.Clamp(cols, rows)
	pty := p.current()
	if pty == nil {
		return &SessionClosedError{Reason: SessionClosedPTYClosed}
	}
	if err := pty.Resize(cols, rows); err != nil {
		return fmt.Errorf("terminal: pty resize: %w", err)
	}
	p.cols, p.rows = cols, rows
	setSlaveWinsizeBestEffort(pty, cols, rows)
	return nil
}

// Close releases both descriptors exactly once. Pending reads return
// promptly with an error or EOF.
func (p *PTY) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.mu.Lock()
	pty := p.pty
	p.pty = nil
	p.mu.Unlock()
	if pty == nil {
		return nil
	}
	if err := pty.Close(); err != nil {
		return fmt.Errorf("terminal: close pty: %w", err)
	}
	return nil
}

// Closed reports whether Close has been called.
func (p *PTY) Closed() bool { return p.closed.Load() }

func (p *PTY) current() xpty.Pty {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pty
}
