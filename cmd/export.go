package cmd

import (
	"os"

	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/mholt/archiver/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runner := &exportRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "export",
		Short: "Bundles the catalog content into a single archive",
		Long: `Packs the manifests, schemas, locales and derived data files into
one archive, ready to hand to a static site build or a mirror.`,
		Args: cobra.NoArgs,
	}, runner)

	cmd.Flags().StringVarP(&runner.output, "output", "o", "catalog-export.tar.gz", "archive file to write")

	rootCmd.AddCommand(cmd.Command)
}

type exportRunner struct {
	output string
}

func (e *exportRunner) RunE(cmd *cobra.Command, args []string) error {
	var sources []string
	for _, key := range []string{"manifestsDir", "schemasDir", "localesDir", "dataDir"} {
		dir := viper.GetString(key)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Warn("skipping missing directory " + dir)
			continue
		}
		sources = append(sources, dir)
	}
	if len(sources) == 0 {
		return &commands.CliError{
			Text:        "nothing to export",
			Suggestions: []string{"run this from the catalog root"},
		}
	}

	// archiver picks the format from the file extension
	if err := os.RemoveAll(e.output); err != nil {
		return err
	}
	if err := archiver.Archive(sources, e.output); err != nil {
		return err
	}

	logger.Success("Exported catalog to " + e.output)
	return nil
}
