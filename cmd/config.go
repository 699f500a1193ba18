package cmd

import (
	"os"

	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manages the stackctl config file",
}

func init() {
	runner := &configInitRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "init",
		Short: "Writes a commented .stackctl.toml with the current settings",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVarP(&runner.force, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(cmd.Command)
	rootCmd.AddCommand(configCmd)
}

// configFile mirrors the viper keys, with comments for the generated file
type configFile struct {
	ManifestsDir  string `toml:"manifestsDir" comment:"Directory holding the category subdirectories with manifest JSON files"`
	SchemasDir    string `toml:"schemasDir" comment:"Directory holding the JSON Schema files"`
	DataDir       string `toml:"dataDir" comment:"Directory for derived files (github-stars.json, index.json, sitemap.xml)"`
	LocalesDir    string `toml:"localesDir" comment:"Directory holding the locale message files"`
	SiteURL       string `toml:"siteURL" comment:"Public site root, used for sitemap URLs"`
	DefaultLocale string `toml:"defaultLocale" comment:"Locale every other locale file is compared against"`
}

type configInitRunner struct {
	force bool
}

func (c *configInitRunner) RunE(cmd *cobra.Command, args []string) error {
	path := ".stackctl.toml"
	if _, err := os.Stat(path); err == nil && !c.force {
		return &commands.CliError{
			Text:        path + " already exists",
			Suggestions: []string{"use --force to overwrite it"},
		}
	}

	out, err := toml.Marshal(configFile{
		ManifestsDir:  viper.GetString("manifestsDir"),
		SchemasDir:    viper.GetString("schemasDir"),
		DataDir:       viper.GetString("dataDir"),
		LocalesDir:    viper.GetString("localesDir"),
		SiteURL:       viper.GetString("siteURL"),
		DefaultLocale: viper.GetString("defaultLocale"),
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return err
	}
	logger.Success("Wrote " + path)
	return nil
}
