package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/aicodingstack/stackctl/internals/i18n"
	"github.com/aicodingstack/stackctl/internals/index"
	"github.com/aicodingstack/stackctl/internals/stars"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runner := &indexRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "index",
		Short: "Generates index.json and sitemap.xml from the catalog",
		Args:  cobra.NoArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type indexRunner struct{}

func (i *indexRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	entries, err := store.All()
	if err != nil {
		return err
	}

	starsFile, err := stars.Load(starsPath())
	if err != nil {
		return err
	}
	if len(starsFile) == 0 {
		logger.Warn("no stars data found, the index will carry null star counts")
	}

	locales, err := i18n.NewStore(viper.GetString("localesDir"), viper.GetString("defaultLocale")).Locales()
	if err != nil {
		return err
	}

	dataDir := viper.GetString("dataDir")

	indexPath := filepath.Join(dataDir, "index.json")
	if err := index.WriteIndex(index.Build(entries, starsFile), indexPath); err != nil {
		return err
	}
	logger.Info("wrote " + indexPath)

	sitemapPath := filepath.Join(dataDir, "sitemap.xml")
	err = index.WriteSitemap(entries, store.Categories(), viper.GetString("siteURL"), locales, sitemapPath)
	if err != nil {
		return err
	}
	logger.Info("wrote " + sitemapPath)

	logger.Success(fmt.Sprintf("indexed %d entries across %d locales", len(entries), len(locales)))
	return nil
}
