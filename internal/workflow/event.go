package workflow

// Event is the interface for all pipeline events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// StageEvent is emitted before a stage starts its work.
type StageEvent struct {
	Step  int
	Label string
}

func (StageEvent) isEvent() {}

// LogEvent carries one audit line as soon as it is written.
type LogEvent struct {
	Line string
}

func (LogEvent) isEvent() {}

// DoneEvent is emitted once the run has reached a terminal status.
type DoneEvent struct {
	Status string
	Reason string
}

func (DoneEvent) isEvent() {}
