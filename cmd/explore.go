package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
	"github.com/kamal-hamza/brandkit/pkg/ui"
)

const exploreHistorySize = 8

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactive lookup playground",
	Long: `Type a name and watch how it resolves as you type.

Keys:
- tab   : Switch between brands and categories
- enter : Keep the current result in the history
- esc   : Quit`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	p := tea.NewProgram(newExploreModel(brandResolver, categoryResolver))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running explorer: %w", err)
	}
	return nil
}

type exploreModel struct {
	input      textinput.Model
	brands     ports.NameResolver
	categories ports.NameResolver
	category   bool
	history    []domain.Resolution
	quitting   bool
}

func newExploreModel(brands, categories ports.NameResolver) exploreModel {
	ti := textinput.New()
	ti.Placeholder = "brand name from an offer payload"
	ti.CharLimit = 120
	ti.Width = 48
	ti.Focus()

	return exploreModel{
		input:      ti,
		brands:     brands,
		categories: categories,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m exploreModel) resolver() ports.NameResolver {
	if m.category {
		return m.categories
	}
	return m.brands
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyTab:
			m.category = !m.category
			if m.category {
				m.input.Placeholder = "category name"
			} else {
				m.input.Placeholder = "brand name from an offer payload"
			}
			return m, nil
		case tea.KeyEnter:
			if strings.TrimSpace(m.input.Value()) == "" {
				return m, nil
			}
			m.history = append([]domain.Resolution{m.resolver().Resolve(m.input.Value())}, m.history...)
			if len(m.history) > exploreHistorySize {
				m.history = m.history[:exploreHistorySize]
			}
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m exploreModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	mode := "Brands"
	if m.category {
		mode = "Categories"
	}
	b.WriteString(ui.FormatTitle("Lookup explorer") + "  " + ui.StyleAccent.Render(mode) + "\n\n")
	b.WriteString(m.input.View() + "\n\n")

	if value := m.input.Value(); value != "" {
		res := m.resolver().Resolve(value)
		b.WriteString(ui.RenderKeyValue("Tier", ui.FormatTier(res.Tier)) + "\n")
		b.WriteString(ui.RenderKeyValue("Asset", res.Asset.Path()) + "\n")
		if res.MatchedKey != "" {
			b.WriteString(ui.RenderKeyValue("Matched", string(res.MatchedKey)) + "\n")
		}
		b.WriteString(ui.RenderKeyValue("Has asset", fmt.Sprintf("%t", m.resolver().HasAsset(value))) + "\n")
	} else {
		b.WriteString(ui.FormatMuted("Start typing to resolve") + "\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\n" + ui.StyleHeader.Render("History") + "\n")
		for _, res := range m.history {
			b.WriteString(fmt.Sprintf("  %-24s %-18s %s\n", res.Input, ui.FormatTier(res.Tier), res.Asset.Path()))
		}
	}

	b.WriteString("\n" + ui.FormatMuted("tab: brands/categories • enter: keep • esc: quit") + "\n")
	return b.String()
}
