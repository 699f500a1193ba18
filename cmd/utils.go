package cmd

import (
	"fmt"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/aicodingstack/stackctl/internals/schema"
	"github.com/spf13/viper"
)

func newStore() (*catalog.Store, error) {
	return catalog.NewStore(viper.GetString("manifestsDir"))
}

func newRegistry() *schema.Registry {
	return schema.NewRegistry(viper.GetString("schemasDir"))
}

// pickCategories resolves positional category arguments against the
// configured set; no arguments means every category
func pickCategories(store *catalog.Store, args []string) ([]catalog.Category, error) {
	return catalog.Pick(store.Categories(), args)
}

// reportProblems prints every diagnostic and returns a CliError when
// there are any, so the wrapping command exits 1
func reportProblems(problems catalog.Problems, checked int, what string) error {
	for _, problem := range problems {
		logger.Problem(problem.String())
	}

	if len(problems) != 0 {
		return &commands.CliError{
			Text: fmt.Sprintf("%d problem(s) in %d %s", len(problems), checked, what),
			Suggestions: []string{
				"fix the findings above and run again",
			},
		}
	}

	logger.Success(fmt.Sprintf("%d %s checked, no problems", checked, what))
	return nil
}
