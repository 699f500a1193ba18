package cmd

import (
	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/aicodingstack/stackctl/internals/i18n"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runner := &i18nRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "i18n",
		Short: "Checks the locale message files",
		Long: `Verifies that every locale file parses, carries a valid BCP-47 tag
and declares the same message keys as the default locale.`,
		Args: cobra.NoArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type i18nRunner struct{}

func (i *i18nRunner) RunE(cmd *cobra.Command, args []string) error {
	store := i18n.NewStore(viper.GetString("localesDir"), viper.GetString("defaultLocale"))

	locales, err := store.Locales()
	if err != nil {
		return err
	}

	problems, err := store.Check()
	if err != nil {
		return err
	}
	return reportProblems(problems, len(locales), "locale(s)")
}
