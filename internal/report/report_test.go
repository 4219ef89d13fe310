package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procsim/internal/sched"
)

func sampleReport() sched.Report {
	return sched.Report{
		Preemptive:    true,
		FinalTime:     7,
		IdleTime:      3,
		IdleTicks:     2,
		IOCompletions: 1,
		Finished: []sched.ProcessStats{
			{ID: 2, Priority: 4, ReadyWait: 1, IOWait: 2},
			{ID: 1, Priority: 2, ReadyWait: 3, IOWait: 0},
		},
	}
}

func TestWriteText(t *testing.T) {
	events := []sched.TraceEvent{
		{Time: 0, Kind: sched.TraceStart, PID: 1, Priority: 2},
		{Time: 0, Kind: sched.TraceIdle},
		{Time: 1, Kind: sched.TracePreempt, PID: 1, Priority: 2},
		{Time: 2, Kind: sched.TraceIOEnd, Device: 3},
	}
	var buf bytes.Buffer

	require.NoError(t, WriteText(&buf, sampleReport(), events))

	assert.Equal(t, "Simulation started: Preemption: True\n\n"+
		"0: Starting process with PID: 1 PRIORITY: 2\n"+
		"2: I/O completed for I/O device 3\n"+
		"\nSimulation ended at time: 7\nSystem idle time: 3\n"+
		"\nProcess Information: \n"+
		"PID: 2, PRIORITY: 4, READY WAIT TIME: 1, I/O WAIT TIME: 2\n"+
		"PID: 1, PRIORITY: 2, READY WAIT TIME: 3, I/O WAIT TIME: 0\n", buf.String())
}

func TestWriteHeader_False(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, false))
	assert.Equal(t, "Simulation started: Preemption: False\n\n", buf.String())
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer

	WriteTable(&buf, sampleReport())

	out := buf.String()
	assert.Contains(t, out, "Simulation ended at time: 7")
	assert.Contains(t, out, "idle ticks 2, I/O completions 1")
	assert.Contains(t, out, "PID")
	assert.Contains(t, strings.ToUpper(out), "READY WAIT")
	assert.Contains(t, out, "2.00") // mean ready wait
	assert.Contains(t, out, "1.00") // mean I/O wait
}

func TestWriteTable_NoFinished(t *testing.T) {
	var buf bytes.Buffer

	WriteTable(&buf, sched.Report{FinalTime: -1})

	assert.Contains(t, buf.String(), "0.00")
}

func TestCSVSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVWriter(&buf)

	sink.Record(sched.TraceEvent{Tick: 0, Time: 0, Kind: sched.TraceStart, PID: 1, Priority: 5})
	sink.Record(sched.TraceEvent{Tick: 1, Time: 4, Kind: sched.TraceIOEnd, Device: 2})
	require.NoError(t, sink.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"tick", "time", "event", "pid", "priority", "device"},
		{"0", "0", "Start", "1", "5", "0"},
		{"1", "4", "IOEnd", "0", "0", "2"},
	}, rows)
}

func TestNewCSVSink_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	sink, err := NewCSVSink(path)
	require.NoError(t, err)
	sink.Record(sched.TraceEvent{Kind: sched.TraceIdle})
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tick,time,event,pid,priority,device\n0,0,Idle,0,0,0\n", string(data))
}
