package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mirabox/vtsgen/pkg/models"
	"github.com/mirabox/vtsgen/pkg/util"
)

var CliVersion = "undefined"
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vtsgen",
	Short: "Generate StreamDock profiles from VTube Studio models",
	Long: "vtsgen " + CliVersion + `
The vtsgen command line tool reads the models and hotkeys from a running
VTube Studio instance and generates StreamDock profile folders for them:
one profile per model plus a Home profile to jump between them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		util.Fatal("Error occurred when running command: %s\n", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootFlags := rootCmd.PersistentFlags()

	rootFlags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.vtsgen/config.yaml)")
	rootFlags.BoolVarP(&util.IsQuiet, "quiet", "q", false, "suppress all output, except for errors")
	rootFlags.BoolVarP(&util.IsVerbose, "verbose", "v", false, "verbose output")

	setPipelineFlags(rootFlags)
}

// setPipelineFlags binds the flags shared by every pipeline stage to their
// configuration keys.
func setPipelineFlags(set *pflag.FlagSet) {
	set.String("vts-address", models.DefaultAPIAddress, "WebSocket address of the VTube Studio API")
	set.String("live2d-root", "", "directory holding the Live2D model folders")
	set.String("output-dir", models.OutputDir, "directory the profile folders are generated into")
	viper.BindPFlag("vts.address", set.Lookup("vts-address"))
	viper.BindPFlag("live2d.root", set.Lookup("live2d-root"))
	viper.BindPFlag("output.dir", set.Lookup("output-dir"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if util.IsQuiet && util.IsVerbose {
		util.Fatal("Cannot use --quiet (-q) and --verbose (-v) flags together\n")
	}

	viper.SetDefault("vts.settle-delay", "3s")
	viper.SetDefault("catalog.file", models.CatalogFile)
	viper.SetDefault("uuids.file", models.UUIDFile)
	viper.SetDefault("images.dir", models.ImagesDir)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else if envCfgFile := os.Getenv("VTSGEN_CONFIG"); envCfgFile != "" {
		viper.SetConfigFile(envCfgFile)
	} else if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".vtsgen"))
		viper.SetConfigName("config")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	viper.SetConfigType("yaml")
	// If a config file is found, read it in.

	err := viper.ReadInConfig()
	if err == nil {
		util.Verbose("Using configuration file: %s\n", viper.ConfigFileUsed())
	} else {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			util.Verbose("No configuration file found. Using default configuration and command line options\n")
		default:
			util.Fatal("Cannot read config file %s: %s\n", viper.ConfigFileUsed(), err)
		}
	}
}
