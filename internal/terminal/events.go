package terminal

// Event is a notification emitted by a session to its owner. The set
// is closed; consumers switch over the four variants below.
type Event interface {
	isEvent()
}

// OutputEvent carries raw bytes read from the PTY master, before any
// parsing. The slice is owned by the receiver.
type OutputEvent struct {
	Data []byte
}

// ResizeEvent reports that the PTY geometry changed. The owner should
// resize its screen model to match.
type ResizeEvent struct {
	Cols int
	Rows int
}

// ExitEvent reports that the child process exited. Code is -1 when the
// exit status is unavailable. Emitted exactly once per session.
type ExitEvent struct {
	Code int
}

// ErrorEvent reports a read-loop failure other than stream closure.
type ErrorEvent struct {
	Err error
}

func (OutputEvent) isEvent() {}
func (ResizeEvent) isEvent() {}
func (ExitEvent) isEvent()   {}
func (ErrorEvent) isEvent()  {}
