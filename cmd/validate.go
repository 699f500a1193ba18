package cmd

import (
	"fmt"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	runner := &validateRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "validate [categories...]",
		Short: "Validates every manifest against its category schema",
		Long: `Checks each manifest file for schema conformance, the id/filename
invariant and well formed i18n overrides. All files are checked before
the command fails, nothing stops at the first finding.`,
		Args: cobra.ArbitraryArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type validateRunner struct{}

func (v *validateRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	categories, err := pickCategories(store, args)
	if err != nil {
		return err
	}

	linter := catalog.NewLinter(newRegistry())

	problems := catalog.Problems{}
	checked := 0
	task := logger.NewTask(len(categories))
	for _, category := range categories {
		task.Step("🔎", "Validating "+category.Dir)

		files, err := store.Files(category)
		if err != nil {
			return err
		}
		checked += len(files)

		found, err := linter.LintCategory(store, category)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			logger.Info(fmt.Sprintf("  %d file(s) ok", len(files)))
		}
		problems = append(problems, found...)
	}

	return reportProblems(problems, checked, "manifest(s)")
}
