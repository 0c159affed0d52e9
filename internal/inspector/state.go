package inspector

import "fmt"

// State is the position of the accept loop.
type State int

const (
	WaitingForConnection State = iota
	ReadingChunk
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case WaitingForConnection:
		return "WaitingForConnection"
	case ReadingChunk:
		return "ReadingChunk"
	case ShuttingDown:
		return "ShuttingDown"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transition is reported each time the loop changes state.  Chunk is
// the 1-based read index while ReadingChunk and 0 otherwise; Session
// is 0 while waiting.
type Transition struct {
	State   State
	Chunk   int
	Session int64
}

func (t Transition) String() string {
	if t.State == ReadingChunk {
		return fmt.Sprintf("%s(%d)", t.State, t.Chunk)
	}
	return t.State.String()
}
