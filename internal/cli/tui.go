package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mcxross/sui/pkg/errors"
	"github.com/mcxross/sui/pkg/manifest"
)

// List styles
var (
	StyleTitle        = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// packageListModel - Interactive package root selection
// =============================================================================

// pickItem is one discovered package root.
type pickItem struct {
	Root string
	Rel  string
	Name string
}

// packageListModel is the bubbletea model for choosing one package root.
type packageListModel struct {
	Items    []pickItem
	Cursor   int
	Selected *pickItem
	Height   int
	Offset   int
}

func newPackageListModel(items []pickItem) packageListModel {
	return packageListModel{Items: items, Height: 15}
}

func (m packageListModel) Init() tea.Cmd {
	return nil
}

func (m packageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			item := m.Items[m.Cursor]
			m.Selected = &item
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m packageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Package"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, m.Items[i].Name, m.Items[i].Rel})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 2 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// pickRoot lets the user choose one of several package roots.
func (c *CLI) pickRoot(ctx context.Context, base string, roots []string) ([]string, error) {
	if len(roots) < 2 {
		return roots, nil
	}
	if !isTerminal(os.Stdin) || !isTerminal(c.Err) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--pick needs an interactive terminal")
	}

	items := make([]pickItem, len(roots))
	for i, root := range roots {
		items[i] = pickItem{Root: root, Rel: relPath(base, root), Name: "?"}
		if items[i].Rel == "" {
			items[i].Rel = "."
		}
		if m, err := manifest.Load(root); err == nil {
			items[i].Name = m.Package.Name
		}
	}

	final, err := tea.NewProgram(newPackageListModel(items),
		tea.WithContext(ctx), tea.WithOutput(c.Err)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "package picker")
	}
	m, ok := final.(packageListModel)
	if !ok || m.Selected == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no package selected")
	}
	return []string{m.Selected.Root}, nil
}
