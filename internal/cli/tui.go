package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/apkgraph/apkgraph/pkg/deps"
	"github.com/apkgraph/apkgraph/pkg/deps/apkindex"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// packageListModel is the bubbletea model for interactive package selection.
// It shows a scrolling window over the match list with each package's direct
// dependency count.
type packageListModel struct {
	idx      *apkindex.Index
	packages []string
	cursor   int
	height   int
	offset   int
	selected string
}

// newPackageListModel creates a package list model over the given matches.
func newPackageListModel(idx *apkindex.Index, packages []string) packageListModel {
	return packageListModel{
		idx:      idx,
		packages: packages,
		height:   15,
	}
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
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.packages)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.packages[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m packageListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Package"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.packages) {
		end = len(m.packages)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		name := m.packages[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{cursor, name, directDeps(m.idx, name)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Package", "Direct deps").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.packages))))

	return b.String()
}

// directDeps formats the direct dependency summary for a package row.
// Specifiers are normalized to bare package names for display.
func directDeps(idx *apkindex.Index, name string) string {
	specs, err := idx.Lookup(context.Background(), name)
	if err != nil {
		return "—"
	}
	names := deps.NormalizeAll(specs)
	if len(names) == 0 {
		return "none"
	}
	if len(names) > 3 {
		return fmt.Sprintf("%s, … (%d)", strings.Join(names[:3], ", "), len(names))
	}
	return strings.Join(names, ", ")
}
