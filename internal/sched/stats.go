package sched

// ProcessStats is the final accounting for one finished process.
type ProcessStats struct {
	ID        ProcessID
	Priority  int
	ReadyWait int
	IOWait    int
}

// Report holds the final statistics of a simulation run.
type Report struct {
	Preemptive bool
	// FinalTime is the clock minus one, the last completed tick.
	FinalTime int
	// IdleTime is the classic idle counter. When idle_on_io_completion is set it
	// also counts one per process released by an I/O completion.
	IdleTime      int
	IdleTicks     int // ticks with nothing to run
	IOCompletions int // processes released from the blocked queue
	Ticks         int
	Created       int
	Finished      []ProcessStats
}

// Report collects final statistics. It can be called at any point.
func (e *Engine) Report() Report {
	r := Report{
		Preemptive:    e.preemptive,
		FinalTime:     e.clock.Now() - 1,
		IdleTime:      e.IdleTime(),
		IdleTicks:     e.idleTicks,
		IOCompletions: e.ioCompletions,
		Ticks:         e.clock.Ticks(),
		Created:       e.procs.Len(),
	}
	for _, id := range e.finished.IDs() {
		p := e.procs.Get(id)
		r.Finished = append(r.Finished, ProcessStats{
			ID:        p.ID,
			Priority:  p.Priority,
			ReadyWait: p.ReadyWait,
			IOWait:    p.IOWait,
		})
	}
	return r
}
