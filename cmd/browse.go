package cmd

import (
	"fmt"

	"github.com/aicodingstack/stackctl/internals/catalog"
	"github.com/aicodingstack/stackctl/internals/commands"
	"github.com/aicodingstack/stackctl/internals/stars"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	runner := &browseRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "browse [categories...]",
		Short: "Browses the catalog in an interactive list",
		Args:  cobra.ArbitraryArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type browseRunner struct{}

func (b *browseRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	categories, err := pickCategories(store, args)
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

	wanted := map[string]bool{}
	for _, category := range categories {
		wanted[category.Dir] = true
	}

	var items []list.Item
	for _, entry := range entries {
		if !wanted[entry.Category.Dir] {
			continue
		}
		items = append(items, browseItem{entry: entry, stars: starsFile[entry.Category.Dir][entry.ID]})
	}
	if len(items) == 0 {
		return &commands.CliError{
			Text:        "the catalog is empty",
			Suggestions: []string{"add an entry with `stackctl new`"},
		}
	}

	model := browseModel{list: list.New(items, list.NewDefaultDelegate(), 0, 0)}
	model.list.Title = "AI Coding Stack"

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

type browseItem struct {
	entry catalog.Entry
	stars *int
}

func (b browseItem) Title() string {
	title := b.entry.Manifest.Name
	if b.stars != nil {
		title += subtleStyle.Render(fmt.Sprintf(" ★ %s", humanize.Comma(int64(*b.stars))))
	}
	return title
}

func (b browseItem) Description() string {
	return fmt.Sprintf("%s · %s", b.entry.Category.Title, b.entry.Manifest.Summary)
}

func (b browseItem) FilterValue() string {
	return b.entry.Manifest.Name + " " + b.entry.Manifest.Vendor
}

var (
	subtleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	browseListStyle = lipgloss.NewStyle().Margin(1, 2)
)

type browseModel struct {
	list list.Model
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := browseListStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	return browseListStyle.Render(m.list.View())
}
