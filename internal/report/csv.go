package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"procsim/internal/sched"
)

// CSVSink writes every trace event, including preemptions and idle ticks, as CSV.
type CSVSink struct {
	file *os.File
	w    *csv.Writer
	err  error
}

// NewCSVSink creates path and writes the header row.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := NewCSVWriter(f)
	s.file = f
	return s, nil
}

// NewCSVWriter writes CSV to w. Close flushes but does not close w.
func NewCSVWriter(w io.Writer) *CSVSink {
	s := &CSVSink{w: csv.NewWriter(w)}
	s.err = s.w.Write([]string{"tick", "time", "event", "pid", "priority", "device"})
	return s
}

func (s *CSVSink) Record(ev sched.TraceEvent) {
	if s.err != nil {
		return
	}
	s.err = s.w.Write([]string{
		strconv.Itoa(ev.Tick),
		strconv.Itoa(ev.Time),
		ev.Kind.String(),
		strconv.Itoa(int(ev.PID)),
		strconv.Itoa(ev.Priority),
		strconv.Itoa(ev.Device),
	})
}

// Close flushes buffered rows and closes the file, if any.
func (s *CSVSink) Close() error {
	s.w.Flush()
	if s.err == nil {
		s.err = s.w.Error()
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && s.err == nil {
			s.err = err
		}
	}
	return s.err
}
