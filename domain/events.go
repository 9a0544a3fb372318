package domain

// Status is the state of a tool invocation event.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
	StatusError      Status = "error"
)

// Event is one element of the invocation event sequence. An invocation
// produces zero or more in-progress events followed by exactly one done or
// error event; nothing is delivered after the terminal event.
type Event struct {
	Status   Status
	Progress []string
	Result   any
	Err      error
}

// NewProgressEvent creates an in-progress event carrying status lines.
func NewProgressEvent(lines ...string) Event {
	return Event{Status: StatusInProgress, Progress: lines}
}

// NewDoneEvent creates the successful terminal event.
func NewDoneEvent(result any) Event {
	return Event{Status: StatusDone, Result: result}
}

// NewErrorEvent creates the failed terminal event.
func NewErrorEvent(err error) Event {
	return Event{Status: StatusError, Err: err}
}

// Terminal reports whether the event ends the invocation.
func (e Event) Terminal() bool {
	return e.Status != StatusInProgress
}
