package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/stat"

	"procsim/internal/sched"
)

// WriteTable renders the finished processes as a table with mean waits in the footer.
func WriteTable(w io.Writer, rep sched.Report) {
	rows := make([][]string, 0, len(rep.Finished))
	ready := make([]float64, 0, len(rep.Finished))
	ioWaits := make([]float64, 0, len(rep.Finished))
	for _, p := range rep.Finished {
		rows = append(rows, []string{
			strconv.Itoa(int(p.ID)),
			strconv.Itoa(p.Priority),
			strconv.Itoa(p.ReadyWait),
			strconv.Itoa(p.IOWait),
		})
		ready = append(ready, float64(p.ReadyWait))
		ioWaits = append(ioWaits, float64(p.IOWait))
	}

	meanReady, meanIO := 0.0, 0.0
	if len(rows) > 0 {
		meanReady = stat.Mean(ready, nil)
		meanIO = stat.Mean(ioWaits, nil)
	}

	fmt.Fprintf(w, "Simulation ended at time: %d\n", rep.FinalTime)
	fmt.Fprintf(w, "System idle time: %d (idle ticks %d, I/O completions %d)\n\n",
		rep.IdleTime, rep.IdleTicks, rep.IOCompletions)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Priority", "Ready Wait", "I/O Wait"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "Average",
		fmt.Sprintf("%.2f", meanReady),
		fmt.Sprintf("%.2f", meanIO),
	})
	table.Render()
}
