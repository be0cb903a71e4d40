package runner

import (
	"context"
	"os"
	"os/exec"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"github.com/mirabox/vtsgen/pkg/models"
	"github.com/mirabox/vtsgen/pkg/util"
)

// Runner executes an ordered list of steps one at a time, stopping at the
// first failure. Each step runs as a child process with inherited standard
// streams; the child's exit status is the only signal consumed.
type Runner struct {
	Steps []models.Step

	// NoPause skips the key-press acknowledgments so the exit status can be
	// consumed by outer automation.
	NoPause bool

	// Pause blocks until the operator acknowledges. Replaceable in tests;
	// defaults to a prompt on the terminal.
	Pause func(message string)
}

func New(steps []models.Step) *Runner {
	return &Runner{Steps: steps, Pause: promptAcknowledge}
}

// Run executes all steps in declared order. It returns 0 when every step
// succeeded, otherwise the exit status of the first failed step, unchanged.
// A later step never starts if an earlier one failed.
func (r *Runner) Run() int {
	total := len(r.Steps)
	banner("StreamDock VTS generator")

	for i, step := range r.Steps {
		util.Info("[%d/%d] Starting: %s\n", i+1, total, step.Label)
		code := runStep(step)
		if code != 0 {
			color.New(color.FgRed).Fprintf(os.Stderr, "%s failed with exit status %d\n", step.Label, code)
			r.acknowledge("Press Enter to exit")
			return code
		}
		util.Info("%s completed.\n\n", step.Label)
	}

	banner("All steps completed")
	r.acknowledge("Press Enter to exit")
	return 0
}

// runStep launches the step's command and waits synchronously for it to
// terminate. A command that could not be launched surfaces as exit status 1,
// uniformly with a command that ran and failed; a timed-out step maps to 124.
func runStep(step models.Step) int {
	ctx := context.Background()
	if step.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, step.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Dir = step.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0
	}
	if ctx.Err() == context.DeadlineExceeded {
		return 124
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	util.Error("%s: %s\n", step.Label, err)
	return 1
}

func (r *Runner) acknowledge(message string) {
	if r.NoPause || util.IsQuiet {
		return
	}
	if r.Pause != nil {
		r.Pause(message)
	}
}

func promptAcknowledge(message string) {
	answer := ""
	survey.AskOne(&survey.Input{Message: message}, &answer)
}

func banner(title string) {
	if util.IsQuiet {
		return
	}
	bold := color.New(color.Bold)
	util.Info("==================================================\n")
	bold.Println(title)
	util.Info("==================================================\n")
}
