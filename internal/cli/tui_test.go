package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/duviz/duviz/pkg/scan"
	"github.com/duviz/duviz/pkg/treemap"
)

func readyModel(t *testing.T) viewModel {
	t.Helper()
	m := newViewModel(testCLI(), "root", &viewOpts{maxDepth: defaultViewDepth})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(viewModel)

	next, _ = m.Update(scanDoneMsg{res: &scan.Result{Root: scanFixtureTree(t)}})
	return next.(viewModel)
}

func TestViewModelScanDone(t *testing.T) {
	m := readyModel(t)

	if m.state != stateReady {
		t.Fatalf("state = %v, want ready", m.state)
	}
	if m.index == nil || m.index.Len() == 0 {
		t.Fatal("no layout computed after scan")
	}
	if got := m.index.Bounds(); got.W != 80 || got.H != float64(24-statusLines) {
		t.Errorf("layout bounds = %+v, want 80x%d", got, 24-statusLines)
	}
}

func TestViewModelNavigation(t *testing.T) {
	m := readyModel(t)

	if m.sel != 0 {
		t.Fatalf("initial selection = %d, want 0", m.sel)
	}

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = next.(viewModel)
	if m.sel != 1 {
		t.Errorf("sel after l = %d, want 1", m.sel)
	}

	next, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = next.(viewModel)
	if m.sel != 0 {
		t.Errorf("sel after h = %d, want 0", m.sel)
	}

	// Selection never walks off either end.
	next, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	m = next.(viewModel)
	if m.sel != 0 {
		t.Errorf("sel clamped = %d, want 0", m.sel)
	}
}

func TestViewModelDescendAndBack(t *testing.T) {
	m := readyModel(t)

	// The largest entry is the directory "a"; descend into it.
	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(viewModel)
	if len(m.focus) != 2 {
		t.Fatalf("focus depth = %d, want 2 after enter", len(m.focus))
	}
	if m.focus[1].Path != "root/a" {
		t.Errorf("focused = %q, want root/a", m.focus[1].Path)
	}

	next, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	m = next.(viewModel)
	if len(m.focus) != 1 {
		t.Errorf("focus depth = %d, want 1 after backspace", len(m.focus))
	}
}

func TestViewModelDepthKeys(t *testing.T) {
	m := readyModel(t)
	start := m.maxDepth

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(viewModel)
	if m.maxDepth != start+1 {
		t.Errorf("maxDepth = %d, want %d", m.maxDepth, start+1)
	}

	for i := 0; i < 10; i++ {
		next, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
		m = next.(viewModel)
	}
	if m.maxDepth != 1 {
		t.Errorf("maxDepth floor = %d, want 1", m.maxDepth)
	}
}

func TestViewModelViewRenders(t *testing.T) {
	m := readyModel(t)
	out := m.View()
	if out == "" {
		t.Fatal("ready view is empty")
	}
	// The status bar names the selected entry.
	if want := "a"; m.focus[0].Children[0].Name != want {
		t.Fatalf("fixture changed; largest child = %q", m.focus[0].Children[0].Name)
	}
}

func TestClampRect(t *testing.T) {
	tests := []struct {
		name           string
		rect           treemap.Rect
		w, h           int
		x0, y0, x1, y1 int
	}{
		{
			name: "interior",
			rect: treemap.NewRect(1.2, 2.7, 10, 5),
			w:    80, h: 24,
			x0: 1, y0: 3, x1: 11, y1: 8,
		},
		{
			name: "clamped to grid",
			rect: treemap.NewRect(-2, -2, 200, 100),
			w:    80, h: 24,
			x0: 0, y0: 0, x1: 80, y1: 24,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1 := clampRect(tt.rect, tt.w, tt.h)
			if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
				t.Errorf("clampRect() = %d,%d,%d,%d want %d,%d,%d,%d",
					x0, y0, x1, y1, tt.x0, tt.y0, tt.x1, tt.y1)
			}
		})
	}
}
