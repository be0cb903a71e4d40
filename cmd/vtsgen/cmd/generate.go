package cmd

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mirabox/vtsgen/pkg/catalog"
	"github.com/mirabox/vtsgen/pkg/profile"
	"github.com/mirabox/vtsgen/pkg/util"
	"github.com/mirabox/vtsgen/pkg/uuidstore"
)

var (
	copyProfiles bool
	noInput      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate StreamDock profile folders from the catalog",
	Long: `Generate reads the model catalog written by the check stage and builds
one StreamDock profile folder per model plus a Home profile, then
optionally copies them into the StreamDock profiles directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGenerate(); err != nil {
			util.Fatal("Generate failed: %s\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVar(&copyProfiles, "copy", false, "copy the generated profiles into the StreamDock profiles directory")
	generateCmd.Flags().BoolVar(&noInput, "no-input", false, "never prompt; only copy when --copy is given")
}

func runGenerate() error {
	catalogFile := viper.GetString("catalog.file")
	cat, err := catalog.Load(catalogFile)
	if err != nil {
		return err
	}
	util.Info("Loaded %d models from %s\n", len(cat.Models), catalogFile)

	store, err := uuidstore.Open(viper.GetString("uuids.file"))
	if err != nil {
		return err
	}

	generator := profile.NewGenerator(
		viper.GetString("output.dir"),
		viper.GetString("images.dir"),
		store,
	)
	if err := generator.GenerateAll(cat); err != nil {
		return err
	}

	officialDir, err := profile.OfficialProfilesDir()
	if err != nil {
		return err
	}
	if !shouldCopy(officialDir) {
		util.Info("\nTo install, copy the folders from %s to %s and restart the StreamDock software\n",
			generator.OutputDir, officialDir)
		return nil
	}

	util.Info("\nCopying profiles to %s\n", officialDir)
	if err := generator.CopyToOfficial(officialDir); err != nil {
		return err
	}
	util.Info("Done. Restart the StreamDock software to pick up the new profiles\n")
	return nil
}

// shouldCopy decides whether to install the profiles: the --copy flag always
// does, otherwise the operator is asked unless prompts are disabled.
func shouldCopy(officialDir string) bool {
	if copyProfiles {
		return true
	}
	if noInput || util.IsQuiet {
		return false
	}

	confirm := false
	err := survey.AskOne(&survey.Confirm{
		Message: "Copy the generated profiles to " + officialDir + "?",
		Default: false,
	}, &confirm)
	if err != nil {
		return false
	}
	return confirm
}
