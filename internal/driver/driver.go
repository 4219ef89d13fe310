// Package driver feeds timed events into the scheduler engine, one tick per event.
package driver

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"procsim/internal/sched"
)

// Source yields timed events in input order.
type Source interface {
	Next() (sched.TimedEvent, bool)
}

// Result is the outcome of a driven simulation.
type Result struct {
	Report   sched.Report
	Events   int // events applied
	Absorbed int // events the engine could not act on
}

// Run applies every event from src to eng: set the clock to the event time,
// dispatch the event, then tick. Engine conditions never abort the run; only
// context cancellation does, between events.
func Run(ctx context.Context, src Source, eng *sched.Engine) (Result, error) {
	var res Result
	for {
		if err := ctx.Err(); err != nil {
			res.Report = eng.Report()
			return res, err
		}
		tev, ok := src.Next()
		if !ok {
			break
		}

		eng.SetTime(tev.Time)
		if err := eng.Apply(tev.Event); err != nil {
			res.Absorbed++
			logAbsorbed(tev, err)
		}
		eng.Tick()
		res.Events++
	}

	res.Report = eng.Report()
	logrus.Infof("simulation done: %d events, %d ticks, %d finished, idle=%d",
		res.Events, res.Report.Ticks, len(res.Report.Finished), res.Report.IdleTime)
	return res, nil
}

func logAbsorbed(tev sched.TimedEvent, err error) {
	entry := logrus.WithFields(logrus.Fields{
		"time":   tev.Time,
		"opcode": tev.Event.Opcode(),
	})
	switch {
	case errors.Is(err, sched.ErrNoRunningProcess), errors.Is(err, sched.ErrDeviceNotFound):
		entry.Warnf("ignored: %v", err)
	default:
		entry.Errorf("ignored: %v", err)
	}
}

// Events adapts a slice to a Source.
func Events(evs []sched.TimedEvent) Source {
	return &sliceSource{evs: evs}
}

type sliceSource struct {
	evs []sched.TimedEvent
	i   int
}

func (s *sliceSource) Next() (sched.TimedEvent, bool) {
	if s.i >= len(s.evs) {
		return sched.TimedEvent{}, false
	}
	ev := s.evs[s.i]
	s.i++
	return ev, true
}
