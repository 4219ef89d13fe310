// internal/sched/engine.go

package sched

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoRunningProcess is returned by operations that need a running process when the CPU is empty.
	ErrNoRunningProcess = errors.New("no running process")
	// ErrDeviceNotFound is returned when an I/O completion releases nobody.
	ErrDeviceNotFound = errors.New("no process blocked on device")
)

// Engine is a single-CPU strict-priority scheduler with optional preemption.
// It is not safe for concurrent use; the event driver owns it.
type Engine struct {
	preemptive  bool
	idleOnIOEnd bool // count each I/O completion as an idle tick, like the classic simulator

	procs    *Registry
	ready    *Queue    // descending priority, FIFO among equals
	blocked  *Queue    // same ordering as ready; searched by device
	finished *Queue    // insertion order unless configured otherwise
	running  ProcessID // 0 when the CPU is empty
	clock    Clock
	sinks    MultiSink

	idleTicks     int
	ioCompletions int
}

// New creates an engine. preemptive is the resolved preemption mode.
func New(cfg Config, preemptive bool) *Engine {
	finished := NewFIFOQueue()
	if cfg.FinishedOrder == FinishedPriority {
		finished = NewPriorityQueue()
	}
	return &Engine{
		preemptive:  preemptive,
		idleOnIOEnd: cfg.IdleOnIOCompletion,
		procs:       NewRegistry(),
		ready:       NewPriorityQueue(),
		blocked:     NewPriorityQueue(),
		finished:    finished,
	}
}

// AddSink registers a trace consumer. Must be called before the first event.
func (e *Engine) AddSink(s TraceSink) {
	e.sinks = append(e.sinks, s)
}

// Preemptive reports whether a higher-priority ready process displaces the running one.
func (e *Engine) Preemptive() bool { return e.preemptive }

// SetTime moves the clock to an event timestamp.
func (e *Engine) SetTime(t int) { e.clock.Set(t) }

// Now returns the current clock value.
func (e *Engine) Now() int { return e.clock.Now() }

// Apply dispatches one event to its handler. Absorbed conditions are returned
// as errors but leave the engine consistent.
func (e *Engine) Apply(ev Event) error {
	switch ev := ev.(type) {
	case Start:
		e.OnProcessStart(ev.Priority)
		return nil
	case IORequest:
		return e.OnIORequest(ev.Device)
	case IOEnd:
		_, err := e.OnIOEnd(ev.Device)
		return err
	case ProcessEnd:
		_, err := e.OnProcessEnd()
		return err
	default:
		return fmt.Errorf("unsupported event %T", ev)
	}
}

// OnProcessStart creates a ready process and queues it by priority.
func (e *Engine) OnProcessStart(priority int) ProcessID {
	p := e.procs.Create(priority)
	e.ready.Insert(p.ID, p.Priority)
	logrus.Debugf("t=%d created %s", e.clock.Now(), p)

	e.emit(TraceEvent{Kind: TraceStart, PID: p.ID, Priority: p.Priority})
	return p.ID
}

// OnIORequest blocks the running process on device.
func (e *Engine) OnIORequest(device int) error {
	p := e.procs.Get(e.running)
	if p == nil {
		return fmt.Errorf("I/O request for device %d at %d: %w", device, e.clock.Now(), ErrNoRunningProcess)
	}

	p.IODevice = device
	p.IOStart = e.clock.Now()
	p.State = StateBlocked
	e.blocked.Insert(p.ID, p.Priority)
	e.running = 0
	logrus.Debugf("t=%d blocked %s on device %d", e.clock.Now(), p, device)

	e.emit(TraceEvent{Kind: TraceIORequest, PID: p.ID, Priority: p.Priority, Device: device})
	return nil
}

// OnIOEnd moves every process blocked on device back to the ready queue and
// returns how many were released. The completion is traced even when nobody
// was waiting.
func (e *Engine) OnIOEnd(device int) (int, error) {
	now := e.clock.Now()
	released := 0
	for _, id := range e.blocked.IDs() {
		p := e.procs.Get(id)
		if p.IODevice != device {
			continue
		}
		if _, err := e.blocked.RemoveByID(id); err != nil {
			return released, err
		}
		p.IOWait = now - p.IOStart
		p.State = StateReady
		e.ready.Insert(p.ID, p.Priority)
		e.ioCompletions++
		released++
		logrus.Debugf("t=%d released %s from device %d after %d", now, p, device, p.IOWait)
	}

	e.emit(TraceEvent{Kind: TraceIOEnd, Device: device})
	if released == 0 {
		return 0, fmt.Errorf("I/O end for device %d at %d: %w", device, now, ErrDeviceNotFound)
	}
	return released, nil
}

// OnProcessEnd retires the running process into the finished collection.
func (e *Engine) OnProcessEnd() (ProcessID, error) {
	p := e.procs.Get(e.running)
	if p == nil {
		return 0, fmt.Errorf("process end at %d: %w", e.clock.Now(), ErrNoRunningProcess)
	}

	e.emit(TraceEvent{Kind: TraceEnd, PID: p.ID, Priority: p.Priority})
	p.State = StateFinished
	e.finished.Insert(p.ID, p.Priority)
	e.running = 0
	logrus.Debugf("t=%d finished %s", e.clock.Now(), p)
	return p.ID, nil
}

// Tick runs one scheduling step: dispatch or preempt, charge ready wait, advance the clock.
func (e *Engine) Tick() {
	if e.running == 0 {
		if id, err := e.ready.RemoveFront(); err == nil {
			e.dispatch(id)
		} else {
			e.idleTicks++
			e.emit(TraceEvent{Kind: TraceIdle})
		}
	} else if e.preemptive {
		e.preempt()
	}

	for _, id := range e.ready.IDs() {
		e.procs.Get(id).ReadyWait++
	}

	e.clock.Advance()
}

// preempt swaps the running process for the ready front when the front has strictly higher priority.
func (e *Engine) preempt() {
	frontID, ok := e.ready.PeekFront()
	if !ok {
		return
	}
	front, cur := e.procs.Get(frontID), e.procs.Get(e.running)
	if front.Priority <= cur.Priority {
		return
	}

	e.emit(TraceEvent{Kind: TraceDispatch, PID: front.ID, Priority: front.Priority})
	e.emit(TraceEvent{Kind: TracePreempt, PID: cur.ID, Priority: cur.Priority})

	// The running process should never also be blocked; if it is, it stays there.
	if !e.blocked.Contains(cur.ID) {
		cur.State = StateReady
		e.ready.Insert(cur.ID, cur.Priority)
	} else {
		logrus.Warnf("t=%d running %s is also in the blocked queue; not requeued", e.clock.Now(), cur)
	}
	e.running = 0

	id, err := e.ready.RemoveFront()
	if err != nil {
		return
	}
	e.procs.Get(id).State = StateRunning
	e.running = id
	logrus.Debugf("t=%d preempted %s for %s", e.clock.Now(), cur, front)
}

func (e *Engine) dispatch(id ProcessID) {
	p := e.procs.Get(id)
	p.State = StateRunning
	e.running = id
	logrus.Debugf("t=%d dispatched %s", e.clock.Now(), p)

	e.emit(TraceEvent{Kind: TraceDispatch, PID: p.ID, Priority: p.Priority})
}

func (e *Engine) emit(ev TraceEvent) {
	if len(e.sinks) == 0 {
		return
	}
	ev.Tick = e.clock.Ticks()
	ev.Time = e.clock.Now()
	e.sinks.Record(ev)
}

// Running returns the ID of the running process.
func (e *Engine) Running() (ProcessID, bool) {
	return e.running, e.running != 0
}

// Process returns the process with the given ID, or nil.
func (e *Engine) Process(id ProcessID) *Process {
	return e.procs.Get(id)
}

// ReadyIDs returns the ready queue in dispatch order.
func (e *Engine) ReadyIDs() []ProcessID { return e.ready.IDs() }

// BlockedIDs returns the blocked queue in scan order.
func (e *Engine) BlockedIDs() []ProcessID { return e.blocked.IDs() }

// FinishedIDs returns the finished collection in report order.
func (e *Engine) FinishedIDs() []ProcessID { return e.finished.IDs() }

// IdleTime returns the idle counter as the classic simulator reports it.
func (e *Engine) IdleTime() int {
	if e.idleOnIOEnd {
		return e.idleTicks + e.ioCompletions
	}
	return e.idleTicks
}

// CheckConservation verifies that every created process is owned by exactly
// one queue or the running slot.
func (e *Engine) CheckConservation() error {
	owned := e.ready.Len() + e.blocked.Len() + e.finished.Len()
	if e.running != 0 {
		owned++
		if e.ready.Contains(e.running) || e.blocked.Contains(e.running) || e.finished.Contains(e.running) {
			return fmt.Errorf("running process %d is also queued", e.running)
		}
	}
	if owned != e.procs.Len() {
		return fmt.Errorf("conservation violated: %d processes owned, %d created", owned, e.procs.Len())
	}
	return nil
}
