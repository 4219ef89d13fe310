// Command procsim replays a process event log through a single-CPU priority
// scheduler and prints the scheduling trace and wait statistics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"procsim/internal/driver"
	"procsim/internal/eventlog"
	"procsim/internal/report"
	"procsim/internal/sched"
)

// ErrInputUnavailable is returned when the event log cannot be opened.
var ErrInputUnavailable = errors.New("input unavailable")

var (
	configPath  string // YAML config file
	logLevel    string // Log verbosity level
	preemption  string // auto, on or off
	format      string // text or table
	traceCSV    string // CSV trace output path
	idleOnIOEnd bool   // count I/O completions as idle ticks
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "procsim <input-file>",
	Short:         "Discrete-event simulator for a single-CPU priority scheduler",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := sched.Load(configPath)
		applyFlags(cmd, &cfg)
		cfg.Sanitize()

		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q", cfg.LogLevel)
		}
		logrus.SetLevel(level)

		return simulate(cmd.Context(), args[0], cfg, cmd.OutOrStdout())
	},
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *sched.Config) {
	flags := cmd.Flags()
	if flags.Changed("log") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("preemption") {
		cfg.Preemption = preemption
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("trace-csv") {
		cfg.TraceCSV = traceCSV
	}
	if flags.Changed("idle-on-io-completion") {
		cfg.IdleOnIOCompletion = idleOnIOEnd
	}
}

// simulate runs one event log end to end and writes the report to out.
func simulate(ctx context.Context, path string, cfg sched.Config, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	defer f.Close()

	rd, err := eventlog.NewReader(f)
	if err != nil {
		logrus.Warnf("%s: %v", path, err)
	}
	preemptive := cfg.Preemptive(rd.Preemptive())
	eng := sched.New(cfg, preemptive)

	var text *report.TextSink
	if cfg.Format == sched.FormatText {
		text = report.NewTextSink(out)
		eng.AddSink(text)
	}
	var csvSink *report.CSVSink
	if cfg.TraceCSV != "" {
		csvSink, err = report.NewCSVSink(cfg.TraceCSV)
		if err != nil {
			return fmt.Errorf("trace csv: %w", err)
		}
		eng.AddSink(csvSink)
	}

	if err := report.WriteHeader(out, preemptive); err != nil {
		return err
	}

	logrus.Infof("starting simulation of %s, preemption=%v", path, preemptive)
	res, err := driver.Run(ctx, rd, eng)
	if err != nil {
		return err
	}
	if err := rd.Err(); err != nil && !errors.Is(err, eventlog.ErrMalformedHeader) {
		logrus.Warnf("%s: input stopped early: %v", path, err)
	}

	if csvSink != nil {
		if err := csvSink.Close(); err != nil {
			logrus.Errorf("trace csv: %v", err)
		}
	}

	if text != nil {
		if err := text.Err(); err != nil {
			return err
		}
		return report.WriteSummary(out, res.Report)
	}
	report.WriteTable(out, res.Report)
	return nil
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().StringVar(&preemption, "preemption", sched.PreemptionAuto, "Preemption mode (auto, on, off); auto reads the input header")
	rootCmd.Flags().StringVar(&format, "format", sched.FormatText, "Output format (text, table)")
	rootCmd.Flags().StringVar(&traceCSV, "trace-csv", "", "Write every trace event to this CSV file")
	rootCmd.Flags().BoolVar(&idleOnIOEnd, "idle-on-io-completion", true, "Count each process released by an I/O completion as idle time")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrInputUnavailable) {
			fmt.Fprintf(os.Stderr, "Failed to open input file: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
