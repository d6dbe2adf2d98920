package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	xpty "github.com/charmbracelet/x/xpty"

	"github.com/deep60/VoidCLI/internal/limits"
	"github.com/deep60/VoidCLI/internal/logging"
)

// Options describes how to start a shell session.
type Options struct {
	// Command is executed directly (no shell wrapping). If empty, a
	// platform-appropriate shell is used.
	Command string
	Args    []string
	Dir     string
	Env     []string

	Cols int
	Rows int
}

// Session supervises one child process attached to a PTY: it spawns
// the shell, forwards PTY master reads as OutputEvents, serializes
// writes to the child's stdin, and manages resize/kill/exit.
type Session struct {
	cmd *exec.Cmd
	pty *PTY

	events   chan Event
	eventsMu sync.RWMutex // held for reading while sending, for writing to close
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	writeMu sync.Mutex // serialize PTY writes

	closed   atomic.Bool
	exited   atomic.Bool
	exitCode atomic.Int64
	exitOnce sync.Once
	exitDone chan struct{}
}

// StartSession allocates a PTY, launches the child with its stdio on
// the slave side, and starts the read and exit observers.
func StartSession(opts Options) (*Session, error) {
	name := opts.Command
	args := opts.Args
	if name == "" {
		name = detectShell()
		args = nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	// #nosec G204 - the command is caller-controlled by design.
	cmd := exec.CommandContext(ctx, name, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	env := append([]string{}, os.Environ()...)
	if len(opts.Env) > 0 {
		env = mergeEnv(env, opts.Env)
	}
	if !hasEnv(env, "TERM") {
		env = append(env, "TERM=xterm-256color")
	}
	if !hasEnv(env, "COLORTERM") {
		env = append(env, "COLORTERM=truecolor")
	}
	cmd.Env = env

	setupPTYCommand(cmd)

	pty, err := OpenPTY(opts.Cols, opts.Rows)
	if err != nil {
		cancel()
		return nil, err
	}
	if err := pty.Start(cmd); err != nil {
		cancel()
		_ = pty.Close()
		return nil, err
	}

	s := &Session{
		cmd:      cmd,
		pty:      pty,
		events:   make(chan Event, 128),
		ctx:      ctx,
		cancel:   cancel,
		exitDone: make(chan struct{}),
	}

	s.wg.Add(2)
	go s.readLoop()
	go s.waitExit()
	return s, nil
}

// Events returns the session's event stream. Closed by Close after
// all background work has stopped.
func (s *Session) Events() <-chan Event { return s.events }

// PID returns the child process ID, or 0 before spawn completes.
func (s *Session) PID() int {
	if s == nil || s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// Exited reports whether the child has exited.
func (s *Session) Exited() bool { return s.exited.Load() }

// ExitCode returns the child's exit code, -1 when unavailable.
func (s *Session) ExitCode() int { return int(s.exitCode.Load()) }

// Size returns the current PTY geometry.
func (s *Session) Size() (cols, rows int) { return s.pty.Cols(), s.pty.Rows() }

// Write forwards bytes to the child's stdin. Writes are serialized so
// concurrent callers cannot interleave partial writes.
func (s *Session) Write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if s.closed.Load() {
		return &SessionClosedError{Reason: SessionClosedByOwner}
	}
	if s.exited.Load() {
		return &SessionClosedError{Reason: SessionClosedProcessExited}
	}

	s.writeMu.Lock()
	n, err := s.pty.Write(b)
	s.writeMu.Unlock()
	if err != nil {
		if isStreamClosedError(err) {
			return &SessionClosedError{Reason: SessionClosedPTYClosed, Cause: err}
		}
		return fmt.Errorf("terminal: pty write: %w", err)
	}
	if n != len(b) {
		return fmt.Errorf("terminal: partial write: wrote %d of %d", n, len(b))
	}
	return nil
}

// Resize updates the PTY geometry and emits a ResizeEvent. The owner
// resizes its screen model on the event to keep PTY geometry and
// screen dimensions in step.
func (s *Session) Resize(cols, rows int) error {
	cols, rows = limits.Clamp(cols, rows)
	if s.closed.Load() {
		return &SessionClosedError{Reason: SessionClosedByOwner}
	}
	if err := s.pty.Resize(cols, rows); err != nil {
		logging.LogEvery(
			context.Background(),
			"terminal.pty.resize",
			2*time.Second,
			slog.LevelDebug,
			"terminal: pty resize failed",
			slog.Any("err", err),
			slog.Int("cols", cols),
			slog.Int("rows", rows),
		)
		return err
	}
	signalResize(s.PID(), s.pty.current())
	s.emit(ResizeEvent{Cols: cols, Rows: rows})
	return nil
}

// Kill terminates a live child and awaits its exit. On a child that
// already exited it emits the ExitEvent (exactly once per session)
// and does not error.
func (s *Session) Kill() error {
	if s.exited.Load() {
		s.emitExit()
		return nil
	}
	if err := terminateProcess(s.cmd); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			s.emitExit()
			return nil
		}
		return fmt.Errorf("terminal: kill: %w", err)
	}
	select {
	case <-s.exitDone:
	case <-s.ctx.Done():
	}
	return nil
}

// Close shuts the session down: it cancels background work, closes
// the PTY (which unblocks the reader), waits for the read and exit
// observers to finish, and only then closes the event channel. The
// descriptors are never released underneath an in-flight read.
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.cancel()
	err := s.pty.Close()
	s.wg.Wait()
	s.eventsMu.Lock()
	close(s.events)
	s.eventsMu.Unlock()
	return err
}

func (s *Session) readLoop() {
	defer s.wg.Done()

	buf := make([]byte, 32*1024)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			if !s.emit(OutputEvent{Data: data}) {
				return
			}
		}
		if err != nil {
			if isRetryableReadError(err) && !s.closed.Load() {
				continue
			}
			// EOF and closed-descriptor errors are normal stream
			// closure; anything else is surfaced to the owner.
			if !isStreamClosedError(err) && !s.closed.Load() {
				s.emit(ErrorEvent{Err: fmt.Errorf("terminal: pty read: %w", err)})
			}
			return
		}
		if n == 0 {
			// Zero-length read without error: stream closed.
			return
		}
	}
}

func (s *Session) waitExit() {
	defer s.wg.Done()
	_ = xpty.WaitProcess(s.ctx, s.cmd)
	code := -1
	if s.cmd.ProcessState != nil {
		code = s.cmd.ProcessState.ExitCode()
	}
	s.exitCode.Store(int64(code))
	s.exited.Store(true)
	close(s.exitDone)
	s.emitExit()
}

func (s *Session) emitExit() {
	s.exitOnce.Do(func() {
		s.emit(ExitEvent{Code: int(s.exitCode.Load())})
	})
}

// emit delivers ev in order, blocking until the owner drains the
// channel or the session shuts down. The read lock keeps Close from
// closing the channel underneath a send in flight; a caller that lost
// the race against Close drops the event instead of sending on a
// closed channel.
func (s *Session) emit(ev Event) bool {
	s.eventsMu.RLock()
	defer s.eventsMu.RUnlock()
	if s.closed.Load() {
		return false
	}
	select {
	case s.events <- ev:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func isRetryableReadError(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}

// isStreamClosedError reports errors that mean the other end of the
// PTY is gone. Linux returns EIO from the master once the child's
// last slave descriptor closes; that is closure, not failure.
func isStreamClosedError(err error) bool {
	if err == nil {
		return false
	}
	var closed *SessionClosedError
	switch {
	case errors.Is(err, io.EOF):
		return true
	case errors.Is(err, syscall.EIO):
		return true
	case errors.Is(err, syscall.EPIPE):
		return true
	case errors.Is(err, syscall.EBADF):
		return true
	case errors.Is(err, os.ErrClosed):
		return true
	case errors.Is(err, io.ErrClosedPipe):
		return true
	case errors.As(err, &closed):
		return true
	default:
		return false
	}
}
