package sched

import (
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
)

const (
	PreemptionAuto = "auto" // take the flag from the event log header
	PreemptionOn   = "on"
	PreemptionOff  = "off"

	FinishedInsertion = "insertion"
	FinishedPriority  = "priority"

	FormatText  = "text"
	FormatTable = "table"
)

// Config mirrors procsim.yml
type Config struct {
	Preemption         string `yaml:"preemption"`            // auto (by default)
	IdleOnIOCompletion bool   `yaml:"idle_on_io_completion"` // true (by default)
	FinishedOrder      string `yaml:"finished_order"`        // insertion (by default)
	Format             string `yaml:"format"`                // text (by default)
	TraceCSV           string `yaml:"trace_csv"`             // empty = no CSV trace
	LogLevel           string `yaml:"log_level"`             // warn (by default)
}

// DefaultConfig reproduces the classic simulator output.
func DefaultConfig() Config {
	return Config{
		Preemption:         PreemptionAuto,
		IdleOnIOCompletion: true,
		FinishedOrder:      FinishedInsertion,
		Format:             FormatText,
		LogLevel:           "warn",
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
// An unreadable or invalid file is logged and ignored.
func Load(path string) Config {
	cfg := DefaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Warnf("config %s not loaded, using defaults: %v", path, err)
		return cfg
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Warnf("config %s is not valid YAML, using defaults: %v", path, err)
		return DefaultConfig()
	}

	cfg.Sanitize()
	return cfg
}

// Sanitize replaces unknown values with defaults.
func (c *Config) Sanitize() {
	def := DefaultConfig()
	switch c.Preemption {
	case PreemptionAuto, PreemptionOn, PreemptionOff:
	default:
		logrus.Warnf("unknown preemption mode %q, using %q", c.Preemption, def.Preemption)
		c.Preemption = def.Preemption
	}
	switch c.FinishedOrder {
	case FinishedInsertion, FinishedPriority:
	default:
		logrus.Warnf("unknown finished_order %q, using %q", c.FinishedOrder, def.FinishedOrder)
		c.FinishedOrder = def.FinishedOrder
	}
	switch c.Format {
	case FormatText, FormatTable:
	default:
		logrus.Warnf("unknown format %q, using %q", c.Format, def.Format)
		c.Format = def.Format
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		c.LogLevel = def.LogLevel
	}
}

// Preemptive resolves the preemption mode against the event log header flag.
func (c Config) Preemptive(header bool) bool {
	switch c.Preemption {
	case PreemptionOn:
		return true
	case PreemptionOff:
		return false
	default:
		return header
	}
}
