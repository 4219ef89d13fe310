// Package report renders simulation traces and final statistics.
package report

import (
	"fmt"
	"io"

	"procsim/internal/sched"
)

// WriteHeader writes the preemption banner that opens the classic output.
func WriteHeader(w io.Writer, preemptive bool) error {
	mode := "False"
	if preemptive {
		mode = "True"
	}
	_, err := fmt.Fprintf(w, "Simulation started: Preemption: %s\n\n", mode)
	return err
}

// TextSink streams classic trace lines as the engine emits them.
type TextSink struct {
	w   io.Writer
	err error
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Record(ev sched.TraceEvent) {
	if s.err != nil || !ev.Printed() {
		return
	}
	_, s.err = fmt.Fprintln(s.w, ev.Line())
}

// Err returns the first write error.
func (s *TextSink) Err() error { return s.err }

// WriteSummary writes the end time, idle time and per-process statistics.
func WriteSummary(w io.Writer, rep sched.Report) error {
	if _, err := fmt.Fprintf(w, "\nSimulation ended at time: %d\nSystem idle time: %d\n", rep.FinalTime, rep.IdleTime); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "\nProcess Information: \n"); err != nil {
		return err
	}
	for _, p := range rep.Finished {
		if _, err := fmt.Fprintf(w, "PID: %d, PRIORITY: %d, READY WAIT TIME: %d, I/O WAIT TIME: %d\n",
			p.ID, p.Priority, p.ReadyWait, p.IOWait); err != nil {
			return err
		}
	}
	return nil
}

// WriteText writes the full classic output for an already recorded trace.
func WriteText(w io.Writer, rep sched.Report, events []sched.TraceEvent) error {
	if err := WriteHeader(w, rep.Preemptive); err != nil {
		return err
	}
	sink := NewTextSink(w)
	for _, ev := range events {
		sink.Record(ev)
	}
	if sink.Err() != nil {
		return sink.Err()
	}
	return WriteSummary(w, rep)
}
