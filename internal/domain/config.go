package domain

import (
	"strings"
	"time"
)

// Config mirrors ~/.cmdwatch/config.yaml.
type Config struct {
	ConfigFormatVersion   string             `yaml:"config_format_version"`
	DefaultTimeoutSeconds int                `yaml:"default_timeout"`
	CommandTimeouts       map[string]int     `yaml:"command_timeouts,omitempty"`
	Verbose               bool               `yaml:"verbose"`
	LogFile               string             `yaml:"log_file,omitempty"`
	AutoDiagnose          bool               `yaml:"auto_diagnose"`
	MaxHistory            int                `yaml:"max_history"`
	SlowThresholdSeconds  int                `yaml:"slow_threshold"`
	Shell                 string             `yaml:"shell"`
	Diagnostics           DiagnosticSettings `yaml:"diagnostics"`
}

// DiagnosticSettings bounds the probe battery.
type DiagnosticSettings struct {
	ProbeTimeoutSeconds int     `yaml:"probe_timeout"`
	ProfileWarnSeconds  float64 `yaml:"profile_warn_seconds"`
	ProfileFailSeconds  float64 `yaml:"profile_fail_seconds"`
	PathWarnEntries     int     `yaml:"path_warn_entries"`
	VCSWarnSeconds      float64 `yaml:"vcs_warn_seconds"`
}

// Documented built-in defaults, restored verbatim by config --reset.
const (
	DefaultTimeoutSeconds      = 30
	DefaultMaxHistory          = 100
	DefaultSlowThresholdSecs   = 5
	DefaultProbeTimeoutSeconds = 10
	DefaultProfileWarnSeconds  = 2.0
	DefaultProfileFailSeconds  = 5.0
	DefaultPathWarnEntries     = 50
	DefaultVCSWarnSeconds      = 3.0
)

// DefaultConfig returns the documented built-in defaults.
func DefaultConfig() Config {
	return Config{
		ConfigFormatVersion:   "1",
		DefaultTimeoutSeconds: DefaultTimeoutSeconds,
		CommandTimeouts:       map[string]int{},
		Verbose:               false,
		AutoDiagnose:          false,
		MaxHistory:            DefaultMaxHistory,
		SlowThresholdSeconds:  DefaultSlowThresholdSecs,
		Shell:                 "auto",
		Diagnostics: DiagnosticSettings{
			ProbeTimeoutSeconds: DefaultProbeTimeoutSeconds,
			ProfileWarnSeconds:  DefaultProfileWarnSeconds,
			ProfileFailSeconds:  DefaultProfileFailSeconds,
			PathWarnEntries:     DefaultPathWarnEntries,
			VCSWarnSeconds:      DefaultVCSWarnSeconds,
		},
	}
}

// ResolveTimeout picks the threshold for one invocation: an explicit
// per-invocation value wins, then a per-command-name override keyed by the
// command's first word, then the global default.
func (c Config) ResolveTimeout(command string, explicitSeconds int) time.Duration {
	if explicitSeconds > 0 {
		return time.Duration(explicitSeconds) * time.Second
	}
	if name := commandName(command); name != "" {
		if secs, ok := c.CommandTimeouts[name]; ok && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	secs := c.DefaultTimeoutSeconds
	if secs <= 0 {
		secs = DefaultTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

// SlowThreshold converts the configured slow cutoff to a duration.
func (c Config) SlowThreshold() time.Duration {
	secs := c.SlowThresholdSeconds
	if secs <= 0 {
		secs = DefaultSlowThresholdSecs
	}
	return time.Duration(secs) * time.Second
}

// ProbeTimeout bounds a single diagnostic probe.
func (c Config) ProbeTimeout() time.Duration {
	secs := c.Diagnostics.ProbeTimeoutSeconds
	if secs <= 0 {
		secs = DefaultProbeTimeoutSeconds
	}
	return time.Duration(secs) * time.Second
}

func commandName(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
