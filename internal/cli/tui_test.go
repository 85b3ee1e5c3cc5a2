package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

func testSnapshot() scenegraph.Snapshot {
	return scenegraph.Snapshot{
		Roots: []string{"root"},
		Nodes: []scenegraph.NodeRecord{
			{ID: "root", Kind: scenegraph.KindGeometry, Children: []string{"a", "r"}},
			{ID: "a", Kind: scenegraph.KindGeometry, Parent: "root", Depth: 1},
			{ID: "r", Kind: scenegraph.KindReference, Parent: "root", RefID: "a", Depth: 1},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...string) SnapshotModel {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m.(SnapshotModel)
}

func TestSnapshotModelNavigation(t *testing.T) {
	m := newSnapshotModel(testSnapshot())

	tests := []struct {
		keys []string
		want int
	}{
		{[]string{"down"}, 1},
		{[]string{"down", "j", "j", "j"}, 2},
		{[]string{"up"}, 0},
		{[]string{"G"}, 2},
		{[]string{"G", "k", "g"}, 0},
		{[]string{"G", "r"}, 1},
		{[]string{"down", "r"}, 1},
	}
	for _, tt := range tests {
		got := press(m, tt.keys...)
		assert.Equal(t, tt.want, got.Cursor, "keys %v", tt.keys)
	}
}

func TestSnapshotModelScrolls(t *testing.T) {
	var m tea.Model = newSnapshotModel(testSnapshot())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	sm := m.(SnapshotModel)
	assert.Equal(t, 5, sm.Height)

	sm.Height = 2
	sm = press(sm, "G")
	assert.Equal(t, 1, sm.Offset)
	sm = press(sm, "g")
	assert.Equal(t, 0, sm.Offset)
}

func TestSnapshotModelQuit(t *testing.T) {
	m := newSnapshotModel(testSnapshot())
	_, cmd := m.Update(key("q"))
	if assert.NotNil(t, cmd) {
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestSnapshotModelView(t *testing.T) {
	m := press(newSnapshotModel(testSnapshot()), "G")
	view := m.View()
	for _, want := range []string{"Scenegraph", "r → a", "refers to", "[3/3]"} {
		assert.Contains(t, view, want)
	}

	empty := newSnapshotModel(scenegraph.Snapshot{})
	assert.Contains(t, empty.View(), "(empty)")
	assert.Equal(t, 0, press(empty, "down", "G").Cursor)
}
