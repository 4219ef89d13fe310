package sched

// Event is one input event of the simulation. The set of implementations is closed:
// Start, IORequest, IOEnd and ProcessEnd.
type Event interface {
	Opcode() int
	isEvent()
}

// Start creates a new process with the given priority.
type Start struct {
	Priority int
}

// IORequest blocks the running process on Device.
type IORequest struct {
	Device int
}

// IOEnd releases every process blocked on Device.
type IOEnd struct {
	Device int
}

// ProcessEnd terminates the running process.
type ProcessEnd struct{}

func (Start) Opcode() int      { return 1 }
func (IORequest) Opcode() int  { return 2 }
func (IOEnd) Opcode() int      { return 3 }
func (ProcessEnd) Opcode() int { return 4 }

func (Start) isEvent()      {}
func (IORequest) isEvent()  {}
func (IOEnd) isEvent()      {}
func (ProcessEnd) isEvent() {}

// TimedEvent is an event stamped with the clock value it happens at.
type TimedEvent struct {
	Time  int
	Event Event
}
