package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dragboard-cli/internal/dnd"
)

func (m appModel) View() string {
	h := m.h

	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Dragboard  %s", h.store.Dir))
	if h.status != "" && time.Since(h.statusTime) < 4*time.Second {
		header += styleMuted().Render("  ·  " + h.status)
	}

	board := m.renderBoard()
	if m.showDetail {
		detailWidth := m.width - h.boardWidth - 1
		detail := m.renderDetail(detailWidth)
		board = lipgloss.JoinHorizontal(lipgloss.Top,
			normalizePane(board, h.boardWidth, h.boardHeight),
			" ",
			normalizePane(detail, detailWidth, h.boardHeight),
		)
	}

	footer := styleMuted().Render(helpLine())
	return strings.Join([]string{header, board, footer}, "\n")
}

// renderBoard renders the visible window of the content-space board,
// then applies the drag overlays (slot indicator, floating ghost).
func (m appModel) renderBoard() string {
	h := m.h
	lines := m.contentLines()

	if s := h.orch.Session(); s.Active() {
		if row, ok := h.slotIndicatorRow(s); ok && row >= 0 && row < len(lines) {
			lines[row] = styleSlot().Render(padLine("▾ drop", h.boardWidth))
		}
	}

	// Visible window.
	top := h.yOffset
	if top > len(lines) {
		top = len(lines)
	}
	bottom := top + h.boardHeight
	if bottom > len(lines) {
		bottom = len(lines)
	}
	visible := append([]string{}, lines[top:bottom]...)
	for len(visible) < h.boardHeight {
		visible = append(visible, "")
	}

	// The ghost floats over everything at the follower's row.
	if s := h.orch.Session(); s.Active() {
		row := int(s.Follower.Y+0.5) - h.yOffset
		if row >= 0 && row < len(visible) {
			title := s.ItemID
			if c, ok := h.board.FindCard(s.ItemID); ok {
				title = c.Title
			}
			visible[row] = styleGhost().Render(padLine("⠿ "+title, h.boardWidth))
		}
	}

	return strings.Join(visible, "\n")
}

// contentLines renders the whole board in content space, one string per
// row, each exactly boardWidth wide.
func (m appModel) contentLines() []string {
	h := m.h
	w := h.boardWidth
	dragged := h.orch.Session().ItemID

	lines := make([]string, h.contentHeight)
	for i := range lines {
		lines[i] = strings.Repeat(" ", w)
	}
	for _, lb := range h.boxes {
		y := int(lb.rect.Top())
		count := len(lb.cards)
		lines[y] = styleLaneHeader().Render(padLine(fmt.Sprintf("▍%s (%d)", lb.lane.Title, count), w))
		for _, cb := range lb.cards {
			cy := int(cb.rect.Top())
			if cb.card.ID == dragged {
				// The source row stays hidden while its ghost is out.
				lines[cy] = styleMuted().Render(padLine("  ⋯", w))
				lines[cy+1] = strings.Repeat(" ", w)
				continue
			}
			title := "  " + cb.card.Title
			meta := "    " + metaLine(cb.card.UpdatedAt)
			if cb.card.ID == m.selectedID {
				lines[cy] = styleSelected().Render(padLine(title, w))
				lines[cy+1] = styleSelected().Render(padLine(meta, w))
			} else {
				lines[cy] = padLine(title, w)
				lines[cy+1] = styleMuted().Render(padLine(meta, w))
			}
		}
	}
	return lines
}

// slotIndicatorRow maps the session's target slot to a content row: the
// top of the card currently at that slot, or the lane's trailing row when
// appending / dropping into an empty lane.
func (h *host) slotIndicatorRow(s *dnd.Session) (int, bool) {
	if !s.HasTarget() {
		return 0, false
	}
	for _, lb := range h.boxes {
		if lb.lane.ID != s.TargetLaneID {
			continue
		}
		var slots []cardBox
		for _, cb := range lb.cards {
			if cb.card.ID != s.ItemID {
				slots = append(slots, cb)
			}
		}
		if s.TargetIndex < len(slots) {
			return int(slots[s.TargetIndex].rect.Top()), true
		}
		return int(lb.rect.Bottom()) - laneFooterRows, true
	}
	return 0, false
}

func (m appModel) renderDetail(width int) string {
	h := m.h
	c, ok := h.board.FindCard(m.selectedID)
	if !ok {
		return styleMuted().Render("No card selected.")
	}
	title := lipgloss.NewStyle().Bold(true).Render(padLine(c.Title, width))
	lane := ""
	if l, ok := h.board.FindLane(c.LaneID); ok {
		lane = styleMuted().Render(padLine(l.Title+" · slot "+fmt.Sprint(c.Order), width))
	}
	body := renderMarkdown(c.Description, width)
	if body == "" {
		body = styleMuted().Render("(no description)")
	}
	return strings.Join([]string{title, lane, "", body}, "\n")
}

func metaLine(updated time.Time) string {
	if updated.IsZero() {
		return ""
	}
	d := time.Since(updated)
	switch {
	case d < time.Minute:
		return "updated just now"
	case d < time.Hour:
		return fmt.Sprintf("updated %dm ago", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("updated %dh ago", int(d.Hours()))
	default:
		return "updated " + updated.Format("2006-01-02")
	}
}
