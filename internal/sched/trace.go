// internal/sched/trace.go

package sched

import "fmt"

// TraceKind represents the type of trace event
type TraceKind int

const (
	TraceStart TraceKind = iota
	TraceIORequest
	TraceIOEnd
	TraceEnd
	TraceDispatch
	TracePreempt
	TraceIdle
)

func (k TraceKind) String() string {
	switch k {
	case TraceStart:
		return "Start"
	case TraceIORequest:
		return "IORequest"
	case TraceIOEnd:
		return "IOEnd"
	case TraceEnd:
		return "End"
	case TraceDispatch:
		return "Dispatch"
	case TracePreempt:
		return "Preempt"
	case TraceIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// TraceEvent is emitted by the engine on every state change and idle tick.
// Fields that do not apply to a kind are zero.
type TraceEvent struct {
	Tick     int // ticks executed before this event
	Time     int
	Kind     TraceKind
	PID      ProcessID
	Priority int
	Device   int
}

// Printed reports whether the event appears in the classic text trace.
// Preempt and Idle records only go to structured sinks.
func (ev TraceEvent) Printed() bool {
	return ev.Kind != TracePreempt && ev.Kind != TraceIdle
}

// Line renders the event as a classic trace line, without a trailing newline.
func (ev TraceEvent) Line() string {
	switch ev.Kind {
	case TraceStart:
		return fmt.Sprintf("%d: Starting process with PID: %d PRIORITY: %d", ev.Time, ev.PID, ev.Priority)
	case TraceIORequest:
		return fmt.Sprintf("%d: Process with PID: %d waiting for I/O device %d", ev.Time, ev.PID, ev.Device)
	case TraceIOEnd:
		return fmt.Sprintf("%d: I/O completed for I/O device %d", ev.Time, ev.Device)
	case TraceEnd:
		return fmt.Sprintf("%d: Ending process with PID: %d", ev.Time, ev.PID)
	case TraceDispatch:
		return fmt.Sprintf("%d: Process scheduled to run with PID: %d PRIORITY: %d", ev.Time, ev.PID, ev.Priority)
	case TracePreempt:
		return fmt.Sprintf("%d: Process with PID: %d preempted", ev.Time, ev.PID)
	case TraceIdle:
		return fmt.Sprintf("%d: CPU idle", ev.Time)
	default:
		return fmt.Sprintf("%d: %s", ev.Time, ev.Kind)
	}
}

// TraceSink receives trace events in emission order.
type TraceSink interface {
	Record(ev TraceEvent)
}

// Recorder keeps every trace event in memory.
type Recorder struct {
	Events []TraceEvent
}

func (r *Recorder) Record(ev TraceEvent) {
	r.Events = append(r.Events, ev)
}

// Lines returns the printed events rendered as classic trace lines.
func (r *Recorder) Lines() []string {
	lines := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		if ev.Printed() {
			lines = append(lines, ev.Line())
		}
	}
	return lines
}

// MultiSink fans every event out to each sink in order.
type MultiSink []TraceSink

func (m MultiSink) Record(ev TraceEvent) {
	for _, s := range m {
		s.Record(ev)
	}
}
