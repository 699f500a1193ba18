package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aicodingstack/stackctl/internals/cmdlog"
	"github.com/aicodingstack/stackctl/internals/credentials"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// set by main (goreleaser fills these in)
var (
	Version = "dev"
	Commit  = ""
)

var logger *cmdlog.Logger = cmdlog.New()

var (
	cfgFile       string
	globalDir     = "/tmp"
	credStore     *credentials.Store
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackctl",
	Short: "Build tooling for the AI coding tool catalog",
	Long:  "Validates, sorts and derives artifacts from the catalog manifests",

	Example: `
  stackctl validate
  stackctl sort --check clis
  stackctl stars fetch`,
}

var completionCmd = &cobra.Command{
	Use:   "completion",
	Args:  cobra.MaximumNArgs(1),
	Short: "Output shell completion code for bash",
	Long: `To load completion run

. <(stackctl completion)

You can add that line to your ~/.bashrc or ~/.profile to
persist completion in your shell.
`,
	Run: func(cmd *cobra.Command, args []string) {
		rootCmd.GenBashCompletion(os.Stdout)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	globalDir = filepath.Join(home, ".stackctl")
	credStore = credentials.New(globalDir)

	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.stackctl.toml)")

	rootCmd.AddCommand(completionCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		logger.DisableColors()
	}

	viper.SetDefault("manifestsDir", "manifests")
	viper.SetDefault("schemasDir", "schemas")
	viper.SetDefault("dataDir", "data")
	viper.SetDefault("localesDir", "locales")
	viper.SetDefault("siteURL", "https://aicodingstack.io")
	viper.SetDefault("defaultLocale", "en")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search the working directory first, then the home directory
		viper.AddConfigPath(".")
		viper.AddConfigPath(globalDir)
		viper.SetConfigName(".stackctl")
	}

	viper.SetEnvPrefix("stackctl")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logger.Info("Using config file: " + viper.ConfigFileUsed())
	}
}
