package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/aicodingstack/stackctl/internals/stars"
	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Maintains the derived github-stars.json data file",
}

func init() {
	fetch := &starsFetchRunner{}
	fetchCmd := commands.New(&cobra.Command{
		Use:   "fetch",
		Short: "Fetches star counts for every entry with a GitHub repository",
		Args:  cobra.NoArgs,
	}, fetch)

	check := &starsCheckRunner{}
	checkCmd := commands.New(&cobra.Command{
		Use:   "check",
		Short: "Cross validates github-stars.json against the manifest files",
		Args:  cobra.NoArgs,
	}, check)

	starsCmd.AddCommand(fetchCmd.Command, checkCmd.Command)
	rootCmd.AddCommand(starsCmd)
}

func starsPath() string {
	return filepath.Join(viper.GetString("dataDir"), stars.Filename)
}

type starsFetchRunner struct{}

func (s *starsFetchRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	entries, err := store.All()
	if err != nil {
		return err
	}

	token := credStore.GitHubToken
	if token == "" {
		logger.Warn("No GitHub token found. Unauthenticated requests are heavily rate limited, see `stackctl login`")
	}
	client := stars.NewClient(token)

	file := stars.File{}
	fetched := 0

	spin := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	spin.Start()
	defer spin.Stop()

	for _, entry := range entries {
		repo, ok := entry.Manifest.GitHubRepo()
		if !ok {
			// no repository is a valid state, recorded as null
			file.Set(entry.Category.Dir, entry.ID, nil)
			continue
		}

		spin.Suffix = fmt.Sprintf(" %s (%s)", entry.ID, repo)
		count, err := client.Stars(context.Background(), repo)
		switch {
		case err == nil:
			file.Set(entry.Category.Dir, entry.ID, &count)
			fetched++
		case errors.Is(err, stars.ErrNotFound):
			spin.Stop()
			logger.Warn(fmt.Sprintf("%s: repository %s not found, recording null", entry.Path, repo))
			spin.Start()
			file.Set(entry.Category.Dir, entry.ID, nil)
		default:
			return err
		}
	}
	spin.Stop()

	if err := file.Write(starsPath()); err != nil {
		return err
	}

	logger.Success(fmt.Sprintf(
		"fetched stars for %s of %s entries → %s",
		humanize.Comma(int64(fetched)),
		humanize.Comma(int64(len(entries))),
		starsPath(),
	))
	return nil
}

type starsCheckRunner struct{}

func (s *starsCheckRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	entries, err := store.All()
	if err != nil {
		return err
	}

	file, err := stars.Load(starsPath())
	if err != nil {
		return err
	}
	if len(file) == 0 {
		return &commands.CliError{
			Text:        starsPath() + " is missing or empty",
			Suggestions: []string{"run `stackctl stars fetch` first"},
		}
	}

	return reportProblems(stars.Check(file, entries), len(entries), "entr(ies)")
}
