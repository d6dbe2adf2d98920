//go:build unix

package terminal

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain collects events until an ExitEvent or the deadline.
func drain(t *testing.T, s *Session, timeout time.Duration) (output []byte, exitCode int) {
	t.Helper()
	exitCode = -2
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-s.Events():
			if !ok {
				return output, exitCode
			}
			switch ev := ev.(type) {
			case OutputEvent:
				output = append(output, ev.Data...)
			case ExitEvent:
				return output, ev.Code
			case ErrorEvent:
				t.Fatalf("unexpected error event: %v", ev.Err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for exit")
		}
	}
}

func TestSessionRunsCommandToExit(t *testing.T) {
	s, err := StartSession(Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "printf hello-from-child; exit 3"},
		Cols:    80,
		Rows:    24,
	})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	output, code := drain(t, s, 10*time.Second)
	assert.Equal(t, 3, code)
	assert.True(t, bytes.Contains(output, []byte("hello-from-child")), "output = %q", output)
	assert.True(t, s.Exited())
	assert.Equal(t, 3, s.ExitCode())
}

func TestSessionEcho(t *testing.T) {
	s, err := StartSession(Options{
		Command: "/bin/cat",
		Cols:    80,
		Rows:    24,
	})
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Write([]byte("ping\n")))

	deadline := time.After(10 * time.Second)
	var output []byte
	for !bytes.Contains(output, []byte("ping")) {
		select {
		case ev, ok := <-s.Events():
			require.True(t, ok, "event channel closed early")
			if out, isOut := ev.(OutputEvent); isOut {
				output = append(output, out.Data...)
			}
		case <-deadline:
			t.Fatalf("no echo observed, output = %q", output)
		}
	}

	require.NoError(t, s.Kill())
}

func TestSessionWriteAfterClose(t *testing.T) {
	s, err := StartSession(Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "sleep 30"},
		Cols:    80,
		Rows:    24,
	})
	require.NoError(t, err)

	require.NoError(t, s.Kill())
	require.NoError(t, s.Close())

	err = s.Write([]byte("late"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionClosed)

	// Close is idempotent.
	require.NoError(t, s.Close())
}

func TestSessionResizeEmitsEvent(t *testing.T) {
	s, err := StartSession(Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "sleep 30"},
		Cols:    80,
		Rows:    24,
	})
	require.NoError(t, err)
	defer func() {
		_ = s.Kill()
		_ = s.Close()
	}()

	require.NoError(t, s.Resize(120, 40))
	cols, rows := s.Size()
	assert.Equal(t, 120, cols)
	assert.Equal(t, 40, rows)

	deadline := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-s.Events():
			require.True(t, ok, "event channel closed early")
			if resize, isResize := ev.(ResizeEvent); isResize {
				assert.Equal(t, 120, resize.Cols)
				assert.Equal(t, 40, resize.Rows)
				return
			}
		case <-deadline:
			t.Fatal("no resize event observed")
		}
	}
}

// waitExited polls until the child has been reaped.
func waitExited(t *testing.T, s *Session, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !s.Exited() {
		if time.Now().After(deadline) {
			t.Fatal("child did not exit in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSessionKillAfterExit(t *testing.T) {
	s, err := StartSession(Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "exit 7"},
		Cols:    80,
		Rows:    24,
	})
	require.NoError(t, err)

	waitExited(t, s, 10*time.Second)

	// Killing an exited child must not error, however often.
	require.NoError(t, s.Kill())
	require.NoError(t, s.Kill())
	require.NoError(t, s.Close())

	exits := 0
	code := -2
	for ev := range s.Events() {
		if exit, isExit := ev.(ExitEvent); isExit {
			exits++
			code = exit.Code
		}
	}
	assert.Equal(t, 1, exits, "exit event must be emitted exactly once")
	assert.Equal(t, 7, code)
	assert.Equal(t, 7, s.ExitCode())
}

func TestPTYCloseIdempotent(t *testing.T) {
	p, err := OpenPTY(80, 24)
	require.NoError(t, err)
	require.False(t, p.Closed())

	require.NoError(t, p.Close())
	require.True(t, p.Closed())
	require.NoError(t, p.Close())

	_, err = p.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrSessionClosed)
	_, err = p.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, p.Resize(100, 40), ErrSessionClosed)
}

func TestSessionCloseDuringResize(t *testing.T) {
	s, err := StartSession(Options{
		Command: "/bin/sh",
		Args:    []string{"-c", "sleep 30"},
		Cols:    80,
		Rows:    24,
	})
	require.NoError(t, err)

	// Hammer Resize from another goroutine while the owner shuts the
	// session down; no send may land on the closed event channel.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			if err := s.Resize(80+i%40, 24); err != nil {
				return
			}
		}
	}()

	_ = s.Kill()
	require.NoError(t, s.Close())
	<-done

	err = s.Resize(100, 40)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSessionDefaultShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/sh")
	s, err := StartSession(Options{Cols: 80, Rows: 24})
	require.NoError(t, err)
	assert.Greater(t, s.PID(), 0)
	require.NoError(t, s.Kill())
	require.NoError(t, s.Close())
}
