package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func pickItems() []pickItem {
	return []pickItem{
		{Root: "/w/a", Rel: "a", Name: "alpha"},
		{Root: "/w/b", Rel: "b", Name: "beta"},
		{Root: "/w/c", Rel: "c", Name: "gamma"},
	}
}

func press(m packageListModel, keys ...tea.KeyMsg) (packageListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(packageListModel)
	}
	return m, cmd
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestPackageListSelect(t *testing.T) {
	m, cmd := press(newPackageListModel(pickItems()), keyDown, keyDown, keyDown, keyUp, keyEnter)
	if m.Selected == nil || m.Selected.Name != "beta" {
		t.Fatalf("Selected = %+v, want beta", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPackageListQuit(t *testing.T) {
	m, cmd := press(newPackageListModel(pickItems()), keyDown, keyQuit)
	if m.Selected != nil {
		t.Errorf("Selected = %+v, want nil", m.Selected)
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestPackageListScroll(t *testing.T) {
	m := newPackageListModel(pickItems())
	next, _ := m.Update(tea.WindowSizeMsg{Height: 2})
	m = next.(packageListModel)
	if m.Height != 5 {
		t.Errorf("Height = %d, want minimum 5", m.Height)
	}

	m.Height = 2
	m, _ = press(m, keyDown, keyDown)
	if m.Cursor != 2 || m.Offset != 1 {
		t.Errorf("Cursor, Offset = %d, %d, want 2, 1", m.Cursor, m.Offset)
	}
}

func TestPackageListView(t *testing.T) {
	view := ansi.Strip(newPackageListModel(pickItems()).View())
	for _, want := range []string{"Select Package", "alpha", "gamma", "[1/3]", "▸"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPickRootSingle(t *testing.T) {
	c := New(&strings.Builder{}, LogInfo)
	roots, err := c.pickRoot(t.Context(), "/w", []string{"/w/a"})
	if err != nil || len(roots) != 1 {
		t.Errorf("pickRoot() = %v, %v", roots, err)
	}
}
