package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mirabox/vtsgen/pkg/catalog"
	"github.com/mirabox/vtsgen/pkg/icons"
	"github.com/mirabox/vtsgen/pkg/models"
	"github.com/mirabox/vtsgen/pkg/util"
	"github.com/mirabox/vtsgen/pkg/vts"
)

const modelInfoTimeout = 5 * time.Second

var selectModels bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Read models and hotkeys from VTube Studio into the catalog",
	Long: `Check connects to the running VTube Studio instance, loads every model
in turn and records its hotkeys and icon into ` + models.CatalogFile + `.
VTube Studio must be running and the plugin connection must be allowed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(); err != nil {
			util.Fatal("Check failed: %s\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&selectModels, "select", false, "interactively choose which models to process")
}

func runCheck() error {
	live2DRoot, err := icons.ResolveRoot(viper.GetString("live2d.root"))
	if err != nil {
		return err
	}

	client := vts.NewClient(
		viper.GetString("vts.address"),
		vts.WithSettleDelay(viper.GetDuration("vts.settle-delay")),
	)
	defer client.Close()

	ctx := context.Background()
	util.Info("Connecting to VTube Studio at %s...\n", viper.GetString("vts.address"))
	if err := client.Connect(ctx); err != nil {
		return err
	}
	if err := client.Authenticate(ctx); err != nil {
		return err
	}
	if !client.Ping(ctx) {
		util.Info("VTube Studio is slow to answer; check its window for open error dialogs\n")
	}

	summaries, err := client.AvailableModels(ctx)
	if err != nil {
		return err
	}
	if selectModels {
		summaries, err = chooseModels(summaries)
		if err != nil {
			return err
		}
	}
	util.Info("Found %d models, walking through them...\n", len(summaries))

	finder := icons.NewFinder(live2DRoot, viper.GetString("images.dir"))
	cat := &catalog.Catalog{}
	skipped := 0

	for i, summary := range summaries {
		util.Info("[%d/%d] Loading %s...\n", i+1, len(summaries), summary.ModelName)

		entry, err := inspectModel(ctx, client, finder, summary)
		if err != nil {
			util.Error("%sSkipping %s: %s\n", util.Indent1(), summary.ModelName, err)
			skipped++
			// keep a placeholder so the model still gets a Home button
			cat.Models = append(cat.Models, catalog.Model{
				ModelName: summary.ModelName + " (skipped)",
				ModelID:   summary.ModelID,
				Icon:      models.DefaultIcon,
				Hotkeys:   []catalog.Hotkey{},
			})
			continue
		}
		util.Info("%s%d hotkeys\n", util.Indent1(), len(entry.Hotkeys))
		cat.Models = append(cat.Models, entry)
	}

	util.Info("\nProcessed %d models, skipped %d\n", len(cat.Models)-skipped, skipped)

	catalogFile := viper.GetString("catalog.file")
	if err := cat.Save(catalogFile); err != nil {
		return err
	}
	util.Info("Catalog written to %s\n", catalogFile)
	return nil
}

// inspectModel loads one model and collects its catalog entry. The info
// requests run under a short deadline: a silent API usually means an error
// dialog is blocking VTube Studio.
func inspectModel(ctx context.Context, client *vts.Client, finder *icons.Finder, summary vts.ModelSummary) (catalog.Model, error) {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	if !util.IsVerbose && !util.IsQuiet {
		s.Suffix = " loading " + summary.ModelName
		s.Start()
		defer s.Stop()
	}

	if err := client.LoadModel(ctx, summary.ModelID); err != nil {
		return catalog.Model{}, err
	}

	infoCtx, cancel := context.WithTimeout(ctx, modelInfoTimeout)
	defer cancel()

	current, err := client.CurrentModel(infoCtx)
	if err != nil {
		return catalog.Model{}, err
	}
	hotkeys, err := client.Hotkeys(infoCtx)
	if err != nil {
		return catalog.Model{}, err
	}
	s.Stop()

	entry := catalog.Model{
		ModelName: summary.ModelName,
		ModelID:   summary.ModelID,
		Icon:      finder.FindIcon(current.ModelFileName, summary.ModelName),
		Hotkeys:   make([]catalog.Hotkey, 0, len(hotkeys)),
	}
	for _, hk := range hotkeys {
		entry.Hotkeys = append(entry.Hotkeys, catalog.Hotkey{HotkeyID: hk.HotkeyID, Name: hk.Name, Type: hk.Type})
	}
	return entry, nil
}

func chooseModels(summaries []vts.ModelSummary, surveyOpts ...survey.AskOpt) ([]vts.ModelSummary, error) {
	byName := map[string]vts.ModelSummary{}
	options := make([]string, 0, len(summaries))
	for _, m := range summaries {
		label := fmt.Sprintf("%s (%s)", m.ModelName, m.ModelID)
		byName[label] = m
		options = append(options, label)
	}

	var picked []string
	err := survey.AskOne(
		&survey.MultiSelect{
			Message: "Select the models to process:",
			Options: options,
			Default: options,
		},
		&picked,
		surveyOpts...,
	)
	if err != nil {
		return nil, err
	}

	chosen := make([]vts.ModelSummary, 0, len(picked))
	for _, label := range picked {
		chosen = append(chosen, byName[label])
	}
	return chosen, nil
}
