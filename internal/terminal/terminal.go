package terminal

// Terminal is the thin integration point over a PTY-backed session:
// initialize via New, then Write, Resize, Kill, Close. It owns no
// screen state; callers feed OutputEvent bytes through the vt package.
type Terminal struct {
	session *Session
}

// New starts a session per opts and wraps it.
func New(opts Options) (*Terminal, error) {
	session, err := StartSession(opts)
	if err != nil {
		return nil, err
	}
	return &Terminal{session: session}, nil
}

// Events returns the underlying session's event stream.
func (t *Terminal) Events() <-chan Event { return t.session.Events() }

// Write forwards user input bytes to the child process.
func (t *Terminal) Write(b []byte) error { return t.session.Write(b) }

// Resize updates the PTY geometry. The caller should resize its
// screen model when the ResizeEvent arrives.
func (t *Terminal) Resize(cols, rows int) error { return t.session.Resize(cols, rows) }

// Kill terminates the child process; see Session.Kill.
func (t *Terminal) Kill() error { return t.session.Kill() }

// Close releases the session and its descriptors.
func (t *Terminal) Close() error { return t.session.Close() }

// Size returns the current PTY geometry.
func (t *Terminal) Size() (cols, rows int) { return t.session.Size() }

// PID returns the child process ID.
func (t *Terminal) PID() int { return t.session.PID() }

// Exited reports whether the child has exited.
func (t *Terminal) Exited() bool { return t.session.Exited() }

// ExitCode returns the child's exit code, -1 when unavailable.
func (t *Terminal) ExitCode() int { return t.session.ExitCode() }
