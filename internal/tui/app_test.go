package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"dragboard-cli/internal/dnd"
	"dragboard-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) (appModel, store.Store) {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	b := store.SeedBoard(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err := s.Save(context.Background(), b); err != nil {
		t.Fatalf("seed save: %v", err)
	}
	m := newAppModel(s, b)
	nm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return nm.(appModel), s
}

func step(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	nm, _ := m.Update(msg)
	return nm.(appModel)
}

func TestMouseDragMovesCardAcrossLanes(t *testing.T) {
	m, s := testModel(t)
	now := time.Now()

	// card-plan occupies content rows [1,3) => screen row 2.
	m = step(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.h.orch.State() != dnd.StatePressed {
		t.Fatalf("state after press: %v", m.h.orch.State())
	}

	// Let the hold threshold elapse.
	m = step(t, m, frameMsg(now.Add(600*time.Millisecond)))
	if m.h.orch.State() != dnd.StateDragging {
		t.Fatalf("state after hold frame: %v", m.h.orch.State())
	}

	// Drag between the two Doing cards (content row 11 => screen row 12).
	m = step(t, m, tea.MouseMsg{X: 2, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	sn := m.h.orch.Session()
	if sn.TargetLaneID != "lane-doing" || sn.TargetIndex != 1 {
		t.Fatalf("drag target: %q/%d", sn.TargetLaneID, sn.TargetIndex)
	}

	m = step(t, m, tea.MouseMsg{X: 2, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.h.orch.State() != dnd.StateSettling {
		t.Fatalf("state after release: %v", m.h.orch.State())
	}

	// Let the settle animation finish; the commit lands on this frame.
	m = step(t, m, frameMsg(now.Add(2*time.Second)))
	if m.h.orch.State() != dnd.StateIdle {
		t.Fatalf("state after settle: %v", m.h.orch.State())
	}

	doing := m.h.board.LaneCards("lane-doing")
	if len(doing) != 3 || doing[1].ID != "card-plan" {
		t.Fatalf("doing lane after drop: %+v", doing)
	}
	for i, c := range m.h.board.LaneCards("lane-backlog") {
		if c.Order != i {
			t.Fatalf("backlog not dense after drop: %+v", c)
		}
	}

	// The commit was persisted through the store.
	saved, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	savedDoing := saved.LaneCards("lane-doing")
	if len(savedDoing) != 3 || savedDoing[1].ID != "card-plan" {
		t.Fatalf("saved doing lane: %+v", savedDoing)
	}
}

func TestTapDoesNotDrag(t *testing.T) {
	m, _ := testModel(t)

	m = step(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if m.h.orch.State() != dnd.StateIdle {
		t.Fatalf("state after tap: %v", m.h.orch.State())
	}
	if got := m.h.board.LaneCards("lane-backlog"); len(got) != 3 {
		t.Fatalf("tap changed the board: %+v", got)
	}
	if m.selectedID != "card-plan" {
		t.Fatalf("tap should select: %q", m.selectedID)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m, _ := testModel(t)
	now := time.Now()

	m = step(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, frameMsg(now.Add(600*time.Millisecond)))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.h.orch.State() != dnd.StateIdle {
		t.Fatalf("state after esc: %v", m.h.orch.State())
	}
	if got := m.h.board.LaneCards("lane-backlog"); len(got) != 3 || got[0].ID != "card-plan" {
		t.Fatalf("cancelled drag changed the board: %+v", got)
	}
}

func TestKeyboardMoveDown(t *testing.T) {
	m, _ := testModel(t)
	m.selectedID = "card-plan"

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'J'}})

	backlog := m.h.board.LaneCards("lane-backlog")
	if backlog[0].ID != "card-docs" || backlog[1].ID != "card-plan" {
		t.Fatalf("backlog after J: %+v", backlog)
	}
}

func TestKeyboardMoveAcrossLanes(t *testing.T) {
	m, _ := testModel(t)
	m.selectedID = "card-plan"

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}})

	doing := m.h.board.LaneCards("lane-doing")
	if len(doing) != 3 || doing[0].ID != "card-plan" {
		t.Fatalf("doing after L: %+v", doing)
	}
	backlog := m.h.board.LaneCards("lane-backlog")
	if len(backlog) != 2 {
		t.Fatalf("backlog after L: %+v", backlog)
	}
}

func TestWheelScrollIgnoredWhileDragging(t *testing.T) {
	m, _ := testModel(t)
	now := time.Now()

	// Shrink the window so there is something to scroll.
	nm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m = nm.(appModel)

	m = step(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, frameMsg(now.Add(600*time.Millisecond)))
	if !m.h.orch.Session().ScrollLocked {
		t.Fatalf("session must lock scrolling while dragging")
	}

	before := m.h.yOffset
	m = step(t, m, tea.MouseMsg{X: 2, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonWheelDown})
	if m.h.yOffset != before {
		t.Fatalf("wheel scrolled during drag: %d -> %d", before, m.h.yOffset)
	}
}

func TestViewRendersLanesAndGhost(t *testing.T) {
	m, _ := testModel(t)
	now := time.Now()

	out := m.View()
	for _, want := range []string{"Backlog", "Doing", "Done", "Sketch the release plan"} {
		if !containsLine(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}

	m = step(t, m, tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = step(t, m, frameMsg(now.Add(600*time.Millisecond)))
	out = m.View()
	if !containsLine(out, "⠿") {
		t.Fatalf("dragging view missing the ghost row")
	}
}

func containsLine(s, sub string) bool {
	for _, ln := range strings.Split(s, "\n") {
		if strings.Contains(ln, sub) {
			return true
		}
	}
	return false
}
