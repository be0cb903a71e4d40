package models

import "time"

// Step is one external command the sequential runner invokes: a display
// label plus the command line and optional working directory. A zero
// Timeout means the runner waits indefinitely.
type Step struct {
	Label   string        `mapstructure:"label"`
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultSteps returns the fixed two-stage pipeline, invoking the given
// executable (normally this binary) as a child process per stage.
func DefaultSteps(executable string) []Step {
	return []Step{
		{Label: "Check models and hotkeys", Command: executable, Args: []string{"check"}},
		{Label: "Generate profile folders", Command: executable, Args: []string{"generate"}},
	}
}
