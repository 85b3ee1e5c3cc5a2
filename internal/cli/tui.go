package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	detailKeyStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	detailBoxStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
)

// =============================================================================
// SnapshotModel - Interactive scenegraph browser
// =============================================================================

// SnapshotModel is the bubbletea model for browsing a scenegraph snapshot.
// The node list is on top; the selected node's fields are shown below it.
type SnapshotModel struct {
	Nodes  []scenegraph.NodeRecord
	Cursor int
	Height int
	Offset int
}

// newSnapshotModel creates a browser positioned on the first node.
func newSnapshotModel(snap scenegraph.Snapshot) SnapshotModel {
	return SnapshotModel{Nodes: snap.Nodes, Height: 15}
}

func (m SnapshotModel) Init() tea.Cmd {
	return nil
}

func (m SnapshotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(m.Cursor - 1)
		case "down", "j":
			m.move(m.Cursor + 1)
		case "home", "g":
			m.move(0)
		case "end", "G":
			m.move(len(m.Nodes) - 1)
		case "r":
			m.jumpToTarget()
		}
	case tea.WindowSizeMsg:
		// Leave room for the header and the detail panel.
		m.Height = msg.Height - 14
		if m.Height < 5 {
			m.Height = 5
		}
		m.move(m.Cursor)
	}
	return m, nil
}

// move places the cursor on i, clamped to the list, and scrolls to keep it
// visible.
func (m *SnapshotModel) move(i int) {
	if i >= len(m.Nodes) {
		i = len(m.Nodes) - 1
	}
	if i < 0 {
		i = 0
	}
	m.Cursor = i
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// jumpToTarget moves from a reference node to the node it refers to.
func (m *SnapshotModel) jumpToTarget() {
	if len(m.Nodes) == 0 {
		return
	}
	cur := m.Nodes[m.Cursor]
	if cur.Kind != scenegraph.KindReference {
		return
	}
	for i, n := range m.Nodes {
		if n.ID == cur.RefID {
			m.move(i)
			return
		}
	}
}

func (m SnapshotModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scenegraph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  r follow ref  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Nodes))
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + strings.Repeat("  ", n.Depth) + n.ID
		if n.Kind == scenegraph.KindReference {
			line += " " + iconArrow + " " + n.RefID
		}

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case n.Error != "":
			b.WriteString(listErrorStyle.Render(line))
		case n.Kind == scenegraph.KindReference:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(detailBoxStyle.Render(nodeDetail(m.Nodes[m.Cursor])))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))

	return b.String()
}

// nodeDetail lists the fields of n, one per line.
func nodeDetail(n scenegraph.NodeRecord) string {
	lines := []string{
		detailLine("id", n.ID),
		detailLine("kind", n.Kind.String()),
	}
	if n.Parent != "" {
		lines = append(lines, detailLine("parent", n.Parent))
	}
	if n.Kind == scenegraph.KindReference {
		lines = append(lines, detailLine("refers to", n.RefID))
	} else {
		lines = append(lines, detailLine("box", fmtBox(n.Box)))
	}
	lines = append(lines,
		detailLine("translation", fmt.Sprintf("(%s, %s)", n.Translation.X, n.Translation.Y)),
		detailLine("owners", fmtOwners(n)),
	)
	if n.Error != "" {
		lines = append(lines, detailLine("effective", listErrorStyle.Render(n.Error)))
	} else {
		lines = append(lines, detailLine("effective", fmtBox(n.Effective)))
	}
	return strings.Join(lines, "\n")
}

func detailLine(key, value string) string {
	return detailKeyStyle.Render(key) + " " + StyleValue.Render(value)
}
