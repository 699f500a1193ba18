package cmd

import (
	"fmt"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/spf13/cobra"
)

func init() {
	runner := &sortRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "sort [categories...]",
		Short: "Reorders manifest keys to the schema declared order",
		Long: `Rewrites every manifest so its keys follow the order the category
schema declares them in, recursively. Keys the schema does not know
keep their relative order after all declared keys. Sorting never
changes what a manifest means, only how it diffs.`,
		Args: cobra.ArbitraryArgs,
	}, runner)

	cmd.Flags().BoolVarP(&runner.check, "check", "c", false, "report files that would change without writing them")

	rootCmd.AddCommand(cmd.Command)
}

type sortRunner struct {
	check bool
}

func (s *sortRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	categories, err := pickCategories(store, args)
	if err != nil {
		return err
	}

	registry := newRegistry()

	var outOfOrder []string
	changed := 0
	task := logger.NewTask(len(categories))
	for _, category := range categories {
		task.Step("🗂", "Sorting "+category.Dir)

		orders, err := registry.Extract(category.Schema)
		if err != nil {
			return err
		}

		files, err := store.Files(category)
		if err != nil {
			return err
		}
		for _, file := range files {
			didChange, err := catalog.SortFile(file, orders, !s.check)
			if err != nil {
				return err
			}
			if !didChange {
				continue
			}
			changed++
			if s.check {
				outOfOrder = append(outOfOrder, file)
				logger.Problem(file + " is not in schema order")
			} else {
				logger.Info("  reordered " + file)
			}
		}
	}

	if s.check && len(outOfOrder) != 0 {
		return &commands.CliError{
			Text:        fmt.Sprintf("%d file(s) are not in schema order", len(outOfOrder)),
			Suggestions: []string{"run `stackctl sort` to rewrite them"},
		}
	}

	logger.Success(fmt.Sprintf("%d file(s) reordered", changed))
	return nil
}
