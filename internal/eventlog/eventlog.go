// Package eventlog reads simulator input: a preemption flag followed by
// whitespace-separated "timestamp opcode [operand]" records.
package eventlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/markphelps/optional"
	"github.com/sirupsen/logrus"

	"procsim/internal/sched"
)

const (
	OpStart      = 1
	OpIORequest  = 2
	OpIOEnd      = 3
	OpProcessEnd = 4
)

var (
	// ErrMalformedHeader means the leading preemption flag is missing or not an integer.
	ErrMalformedHeader = errors.New("malformed preemption header")
	// ErrMalformedEvent means a record could not be parsed; reading stops there.
	ErrMalformedEvent = errors.New("malformed event")
)

// Record is one raw input record. Operand is absent for process-end records.
type Record struct {
	Time    int
	Opcode  int
	Operand optional.Int
}

// Event converts the record into an engine event.
func (r Record) Event() (sched.Event, error) {
	switch r.Opcode {
	case OpStart:
		prio, err := r.Operand.Get()
		if err != nil {
			return nil, fmt.Errorf("start at %d without priority: %w", r.Time, ErrMalformedEvent)
		}
		return sched.Start{Priority: prio}, nil
	case OpIORequest, OpIOEnd:
		dev, err := r.Operand.Get()
		if err != nil {
			return nil, fmt.Errorf("opcode %d at %d without device: %w", r.Opcode, r.Time, ErrMalformedEvent)
		}
		if r.Opcode == OpIORequest {
			return sched.IORequest{Device: dev}, nil
		}
		return sched.IOEnd{Device: dev}, nil
	case OpProcessEnd:
		return sched.ProcessEnd{}, nil
	default:
		return nil, fmt.Errorf("unknown opcode %d at %d", r.Opcode, r.Time)
	}
}

// hasOperand reports whether the opcode is followed by an operand in the input.
func hasOperand(op int) bool {
	return op == OpStart || op == OpIORequest || op == OpIOEnd
}

// Reader pulls timed events from an input stream.
type Reader struct {
	sc         *bufio.Scanner
	pos        int // tokens consumed
	preemptive bool
	lastTime   int
	started    bool
	err        error
	done       bool
}

// NewReader consumes the preemption header. On ErrMalformedHeader the reader is
// still returned, reports no preemption and yields no events.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	rd := &Reader{sc: sc}

	flag, ok := rd.nextInt()
	if !ok {
		rd.done = true
		rd.err = fmt.Errorf("%w at token %d", ErrMalformedHeader, rd.pos)
		return rd, rd.err
	}
	rd.preemptive = flag != 0
	return rd, nil
}

// Preemptive returns the header flag.
func (r *Reader) Preemptive() bool { return r.preemptive }

// Next returns the next event. It returns false at end of input or at the first
// malformed record; Err distinguishes the two.
func (r *Reader) Next() (sched.TimedEvent, bool) {
	for !r.done {
		rec, ok := r.readRecord()
		if !ok {
			r.done = true
			break
		}
		ev, err := rec.Event()
		if errors.Is(err, ErrMalformedEvent) {
			r.fail(err)
			break
		}
		if err != nil {
			// Unknown opcodes are skipped without a tick.
			logrus.Debugf("skipping record: %v", err)
			continue
		}
		if r.started && rec.Time < r.lastTime {
			logrus.Warnf("timestamp %d goes back from %d", rec.Time, r.lastTime)
		}
		r.started = true
		r.lastTime = rec.Time
		return sched.TimedEvent{Time: rec.Time, Event: ev}, true
	}
	return sched.TimedEvent{}, false
}

// Err returns the reason reading stopped, or nil at a clean end of input.
func (r *Reader) Err() error { return r.err }

func (r *Reader) readRecord() (Record, bool) {
	start := r.pos
	t, ok := r.nextInt()
	if !ok {
		if r.pos > start {
			r.fail(fmt.Errorf("%w: bad timestamp at token %d", ErrMalformedEvent, r.pos))
		}
		return Record{}, false
	}
	op, ok := r.nextInt()
	if !ok {
		r.fail(fmt.Errorf("%w: bad opcode at token %d", ErrMalformedEvent, r.pos))
		return Record{}, false
	}
	rec := Record{Time: t, Opcode: op}
	if hasOperand(op) {
		v, ok := r.nextInt()
		if !ok {
			r.fail(fmt.Errorf("%w: bad operand at token %d", ErrMalformedEvent, r.pos))
			return Record{}, false
		}
		rec.Operand = optional.NewInt(v)
	}
	return rec, true
}

// nextInt reads one integer token. A token that is present but not an integer
// still counts as consumed.
func (r *Reader) nextInt() (int, bool) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			r.fail(err)
		}
		return 0, false
	}
	r.pos++
	v, err := strconv.Atoi(r.sc.Text())
	if err != nil {
		return 0, false
	}
	return v, true
}

func (r *Reader) fail(err error) {
	r.done = true
	if r.err == nil {
		r.err = err
	}
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() []sched.TimedEvent {
	var evs []sched.TimedEvent
	for {
		ev, ok := r.Next()
		if !ok {
			return evs
		}
		evs = append(evs, ev)
	}
}
