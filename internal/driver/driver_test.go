package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procsim/internal/eventlog"
	"procsim/internal/report"
	"procsim/internal/sched"
)

// runFile drives testdata/<name>.in and returns the classic text output.
func runFile(t *testing.T, name string) (string, Result) {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "..", "testdata", name+".in"))
	require.NoError(t, err)
	defer f.Close()

	rd, err := eventlog.NewReader(f)
	require.NoError(t, err)
	eng := sched.New(sched.DefaultConfig(), rd.Preemptive())
	rec := &sched.Recorder{}
	eng.AddSink(rec)

	res, err := Run(context.Background(), rd, eng)
	require.NoError(t, err)
	require.NoError(t, eng.CheckConservation())

	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, res.Report, rec.Events))
	return buf.String(), res
}

func TestRun_Golden(t *testing.T) {
	for _, name := range []string{"single", "preemptive", "nonpreemptive", "malformed"} {
		t.Run(name, func(t *testing.T) {
			got, _ := runFile(t, name)

			want, err := os.ReadFile(filepath.Join("..", "..", "testdata", name+".golden"))
			require.NoError(t, err)
			assert.Equal(t, string(want), got)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	first, _ := runFile(t, "preemptive")
	second, _ := runFile(t, "preemptive")
	assert.Equal(t, first, second)
}

func TestRun_OneTickPerEvent(t *testing.T) {
	// GIVEN sparse timestamps
	evs := []sched.TimedEvent{
		{Time: 0, Event: sched.Start{Priority: 1}},
		{Time: 100, Event: sched.ProcessEnd{}},
	}
	eng := sched.New(sched.DefaultConfig(), false)

	// WHEN they are driven
	res, err := Run(context.Background(), Events(evs), eng)

	// THEN only two ticks run and the clock follows the last event
	require.NoError(t, err)
	assert.Equal(t, 2, res.Events)
	assert.Equal(t, 2, res.Report.Ticks)
	assert.Equal(t, 100, res.Report.FinalTime)
	assert.Equal(t, 1, res.Report.IdleTime)
}

func TestRun_AbsorbsEngineConditions(t *testing.T) {
	evs := []sched.TimedEvent{
		{Time: 0, Event: sched.ProcessEnd{}},
		{Time: 1, Event: sched.IORequest{Device: 1}},
		{Time: 2, Event: sched.IOEnd{Device: 1}},
		{Time: 3, Event: sched.Start{Priority: 2}},
	}
	eng := sched.New(sched.DefaultConfig(), false)

	res, err := Run(context.Background(), Events(evs), eng)

	require.NoError(t, err)
	assert.Equal(t, 4, res.Events)
	assert.Equal(t, 3, res.Absorbed)
	running, ok := eng.Running()
	assert.True(t, ok)
	assert.Equal(t, sched.ProcessID(1), running)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	eng := sched.New(sched.DefaultConfig(), false)

	res, err := Run(ctx, Events([]sched.TimedEvent{{Time: 0, Event: sched.Start{Priority: 1}}}), eng)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Events)
}
