package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/assetgraph/pkg/asset"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// AssetListModel - Interactive asset selection
// =============================================================================

// AssetRow is one selectable asset.
type AssetRow struct {
	ID            string
	Class         string
	Relationships int
}

// AssetListModel is the bubbletea model for picking a traversal root.
type AssetListModel struct {
	Assets   []AssetRow
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewAssetListModel lists the assets of g in id order.
func NewAssetListModel(g *asset.Graph) AssetListModel {
	rels := g.Relationships()
	ids := g.AssetIDs()
	rows := make([]AssetRow, len(ids))
	for i, id := range ids {
		a, _ := g.Asset(id)
		rows[i] = AssetRow{ID: id, Class: string(a.Class), Relationships: len(rels[id])}
	}
	return AssetListModel{Assets: rows, Height: 15}
}

func (m AssetListModel) Init() tea.Cmd {
	return nil
}

func (m AssetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Assets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Assets) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Assets[m.Cursor].ID
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m AssetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root Asset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Assets))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		a := m.Assets[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		class := a.Class
		if class == "" {
			class = "—"
		}
		rows = append(rows, []string{cursor, a.ID, class, strconv.Itoa(a.Relationships)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Asset", "Class", "Outgoing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Assets) {
				return lipgloss.NewStyle()
			}
			isCurrent := idx == m.Cursor
			leaf := m.Assets[idx].Relationships == 0
			switch {
			case isCurrent && leaf:
				return lipgloss.NewStyle().Foreground(colorDim).Bold(true)
			case isCurrent:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case leaf:
				return lipgloss.NewStyle().Foreground(colorDim)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Assets)), len(m.Assets))))

	return b.String()
}
