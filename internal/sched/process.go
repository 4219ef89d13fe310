package sched

import "fmt"

// ProcessID uniquely identifies a simulated process. IDs start at 1 and are never reused.
type ProcessID int

// State is the scheduling state of a process.
type State int

const (
	StateReady State = iota
	StateRunning
	StateBlocked
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StateBlocked:
		return "Blocked"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Process represents one simulated task.
type Process struct {
	ID        ProcessID
	Priority  int   // higher runs first, fixed at creation
	State     State // exactly one process is Running at a time
	ReadyWait int   // ticks spent in the ready queue
	IOWait    int   // set once when the process leaves the blocked queue
	IODevice  int   // meaningful only while blocked
	IOStart   int   // clock value when the process entered the blocked queue
}

func (p *Process) String() string {
	return fmt.Sprintf("[pid=%d prio=%d %s]", p.ID, p.Priority, p.State)
}

// Registry is the arena that owns every process. Queues refer to processes by ID.
type Registry struct {
	procs  map[ProcessID]*Process
	nextID ProcessID
}

func NewRegistry() *Registry {
	return &Registry{
		procs:  make(map[ProcessID]*Process),
		nextID: 1,
	}
}

// Create allocates a ready process with the next free ID and zeroed counters.
func (r *Registry) Create(priority int) *Process {
	p := &Process{
		ID:       r.nextID,
		Priority: priority,
		State:    StateReady,
	}
	r.procs[p.ID] = p
	r.nextID++
	return p
}

// Get returns the process with the given ID, or nil if it was never created.
func (r *Registry) Get(id ProcessID) *Process {
	return r.procs[id]
}

// Len returns the number of processes created so far.
func (r *Registry) Len() int {
	return len(r.procs)
}
