package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/aicodingstack/stackctl/internals/ojson"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/stoewer/go-strcase"
)

var entryID = regexp.MustCompile(`^([a-z0-9]|[a-z0-9][a-z0-9-]*[a-z0-9])$`)

func init() {
	runner := &newRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "new [name]",
		Short: "Scaffolds a new catalog manifest",
		Args:  cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().BoolVarP(&runner.force, "force", "f", false, "Overwrite the manifest if one exists")
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Skip all prompts and use defaults")
	cmd.Flags().StringVarP(&runner.category, "category", "c", "", "Category of the new entry (prompted otherwise)")

	rootCmd.AddCommand(cmd.Command)
}

type newRunner struct {
	force    bool
	yes      bool
	category string
}

func (n *newRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}

	category, err := n.pickCategory(store)
	if err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	if n.yes && name == "" {
		return &commands.CliError{
			Text:        "--yes needs a name argument",
			Suggestions: []string{"run `stackctl new \"Some Tool\" --yes`"},
		}
	}
	name = n.prompt(&promptui.Prompt{
		Label:     "Name",
		Default:   name,
		AllowEdit: true,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("may not be empty")
			}
			return nil
		},
	})

	id := n.prompt(&promptui.Prompt{
		Label:     "Id",
		Default:   strcase.KebabCase(name),
		AllowEdit: true,
		Validate: func(s string) error {
			switch {
			case strings.ToLower(s) != s:
				return errors.New("may only contain lowercase characters")
			case !entryID.MatchString(s):
				return errors.New("may only contain alphanumeric characters and dashes -")
			}
			return nil
		},
	})

	path := filepath.Join(store.CategoryDir(category), id+".json")
	if _, err := os.Stat(path); err == nil && !n.force {
		return &commands.CliError{
			Text:        path + " already exists",
			Suggestions: []string{"use --force to overwrite it"},
		}
	}

	manifest := catalog.Manifest{
		ID:   id,
		Name: name,
		Summary: n.prompt(&promptui.Prompt{
			Label:     "Summary",
			AllowEdit: true,
		}),
		Description: n.prompt(&promptui.Prompt{
			Label:     "Description",
			AllowEdit: true,
		}),
		Vendor: n.prompt(&promptui.Prompt{
			Label:     "Vendor",
			AllowEdit: true,
		}),
		License: n.prompt(&promptui.Prompt{
			Label:     "License",
			Default:   "proprietary",
			AllowEdit: true,
		}),
	}

	if err := n.write(path, category, &manifest); err != nil {
		return err
	}
	logger.Success("Created " + path)
	logger.Info("Run `stackctl validate " + category.Dir + "` once you filled in the details")
	return nil
}

// prompt runs a prompt, or takes its default with --yes
func (n *newRunner) prompt(prompt *promptui.Prompt) string {
	if n.yes {
		return prompt.Default
	}
	return stringPrompt(prompt)
}

func (n *newRunner) pickCategory(store *catalog.Store) (catalog.Category, error) {
	if n.category == "" && n.yes {
		n.category = store.Categories()[0].Dir
	}
	if n.category != "" {
		picked, err := catalog.Pick(store.Categories(), []string{n.category})
		if err != nil {
			return catalog.Category{}, err
		}
		return picked[0], nil
	}

	dirs := make([]string, len(store.Categories()))
	for i, category := range store.Categories() {
		dirs[i] = category.Dir
	}
	chosen := selectPrompt(&promptui.Select{
		Label: "Category",
		Items: dirs,
	})
	picked, err := catalog.Pick(store.Categories(), []string{chosen})
	if err != nil {
		return catalog.Category{}, err
	}
	return picked[0], nil
}

// write renders the manifest in schema declared key order
func (n *newRunner) write(path string, category catalog.Category, manifest *catalog.Manifest) error {
	raw, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	parsed, err := ojson.Decode(raw)
	if err != nil {
		return err
	}

	orders, err := newRegistry().Extract(category.Schema)
	if err != nil {
		return err
	}

	out, err := ojson.Encode(catalog.SortKeys(parsed, orders))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

func selectPrompt(prompt *promptui.Select) string {
	_, res, err := prompt.Run()
	if err != nil {
		fmt.Println("Aborting")
		os.Exit(1)
	}
	return res
}

func stringPrompt(prompt *promptui.Prompt) string {
	res, err := prompt.Run()
	if err != nil {
		fmt.Println("Aborting")
		os.Exit(1)
	}
	return res
}
