package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"dragboard-cli/internal/dnd"
	"dragboard-cli/internal/model"
)

// Content-space layout. Every lane is a header row, two rows per card, and
// one trailing blank row (the drop area of an empty or appended-to lane).
// The same boxes drive rendering and the engine's layout registry, so what
// you see is exactly what the hit-tester sees.
const (
	laneHeaderRows = 1
	cardRows       = 2
	laneFooterRows = 1
)

type cardBox struct {
	card model.Card
	rect dnd.Rect
}

type laneBox struct {
	lane  model.Lane
	rect  dnd.Rect
	cards []cardBox
}

// buildLayout computes content-space boxes for the whole board.
func buildLayout(b *model.Board) (boxes []laneBox, contentHeight int) {
	model.SortLanes(b.Lanes)
	y := 0.0
	for _, lane := range b.Lanes {
		lb := laneBox{lane: lane}
		top := y
		y += laneHeaderRows
		for _, c := range b.LaneCards(lane.ID) {
			lb.cards = append(lb.cards, cardBox{
				card: c,
				rect: dnd.Rect{Y: y, Height: cardRows},
			})
			y += cardRows
		}
		y += laneFooterRows
		lb.rect = dnd.Rect{Y: top, Height: y - top}
		boxes = append(boxes, lb)
	}
	return boxes, int(y)
}

// registerLayout feeds the boxes into the engine registry and prunes
// entries for cards that no longer exist (the registry keeps late
// registrations around; pruning is the caller's job).
func registerLayout(reg *dnd.Registry, boxes []laneBox, scrollOffset float64, prev map[string]bool) map[string]bool {
	seen := map[string]bool{}
	for _, lb := range boxes {
		reg.RegisterLane(lb.lane.ID, lb.rect, scrollOffset)
		for _, cb := range lb.cards {
			reg.RegisterItem(cb.card.ID, lb.lane.ID, cb.rect, cb.card.Order)
			seen[cb.card.ID] = true
		}
	}
	for id := range prev {
		if !seen[id] {
			reg.RemoveItem(id)
		}
	}
	return seen
}

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines, keeping split-pane joins stable.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = padLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// padLine truncates (with ellipsis) or pads one line to width columns.
func padLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		if width <= 0 {
			return ""
		}
		if width == 1 {
			return xansi.Cut(ln, 0, 1)
		}
		ln = xansi.Cut(ln, 0, width-1) + "…"
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}
