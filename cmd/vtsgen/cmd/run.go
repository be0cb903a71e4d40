package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mirabox/vtsgen/pkg/models"
	"github.com/mirabox/vtsgen/pkg/runner"
	"github.com/mirabox/vtsgen/pkg/util"
)

var noPause bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: check models, then generate profile folders",
	Long: `Run executes the pipeline stages strictly in order, each as a child
process with inherited output. The first failing stage stops the pipeline
and its exit status becomes the exit status of this command.`,
	Run: func(cmd *cobra.Command, args []string) {
		steps, err := configuredSteps()
		if err != nil {
			util.Fatal("Cannot determine pipeline steps: %s\n", err)
		}

		r := runner.New(steps)
		r.NoPause = noPause
		if code := r.Run(); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&noPause, "no-pause", false, "do not wait for a key press after completion or failure")
}

// configuredSteps returns the step records from the configuration, falling
// back to the fixed two-stage pipeline invoking this binary itself.
func configuredSteps() ([]models.Step, error) {
	var steps []models.Step
	if err := viper.UnmarshalKey("steps", &steps); err != nil {
		return nil, err
	}
	if len(steps) > 0 {
		return steps, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	steps = models.DefaultSteps(exe)
	for i := range steps {
		steps[i].Args = append(steps[i].Args, passthroughFlags()...)
	}
	return steps, nil
}

// passthroughFlags forwards the root flags to the child stages so a
// configured or verbose run behaves the same in every stage.
func passthroughFlags() []string {
	var flags []string
	if cfgFile != "" {
		flags = append(flags, "--config", cfgFile)
	}
	if util.IsVerbose {
		flags = append(flags, "--verbose")
	}
	if util.IsQuiet {
		flags = append(flags, "--quiet")
	}
	return flags
}
