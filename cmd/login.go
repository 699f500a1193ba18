package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/aicodingstack/stackctl/internals/stars"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func init() {
	runner := &loginRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "login",
		Short: "Stores a GitHub token for `stars fetch`",
		Long: `Saves a GitHub personal access token in the system keyring. The
token only needs public repository read access. Without one, star
fetching runs against the small unauthenticated rate limit.`,
		Args: cobra.NoArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type loginRunner struct{}

func (l *loginRunner) RunE(cmd *cobra.Command, args []string) error {
	token := stringPrompt(&promptui.Prompt{
		Label: "GitHub token",
		Mask:  '*',
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("may not be empty")
			}
			return nil
		},
	})
	token = strings.TrimSpace(token)

	// one cheap request to catch a mistyped token right away
	_, err := stars.NewClient(token).Stars(context.Background(), "golang/go")
	if err != nil {
		return &commands.CliError{
			Text: "the token did not work: " + err.Error(),
			Suggestions: []string{
				"generate a new token at https://github.com/settings/tokens",
			},
		}
	}

	if err := credStore.SetGitHubToken(token); err != nil {
		return err
	}
	if credStore.NoKeyRingMode {
		logger.Warn("No system keyring available, the token was written to " + globalDir)
	}
	logger.Success("Token saved")
	return nil
}
