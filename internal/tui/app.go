package tui

import (
	"context"
	"time"

	"dragboard-cli/internal/dnd"
	"dragboard-cli/internal/model"
	"dragboard-cli/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen rows above/below the board area.
const (
	headerRows = 1
	footerRows = 1
)

// One UI frame while a gesture is live. The engine is tick-driven: hold
// timing, auto-scroll and the settle animation all advance here.
const frameInterval = 33 * time.Millisecond

type frameMsg time.Time

// host carries all mutable board/engine state behind one stable pointer,
// so the engine hooks and the (value-copied) Bubble Tea model always see
// the same data. Everything here is touched only from the update loop;
// that loop is the single serialized tick context the engine requires.
type host struct {
	store store.Store
	board *model.Board

	reg  *dnd.Registry
	orch *dnd.Orchestrator

	boxes         []laneBox
	contentHeight int
	known         map[string]bool

	boardWidth  int
	boardHeight int

	yOffset   int
	scrollRem float64

	lastMouse  dnd.Point // content space
	status     string
	statusTime time.Time
}

type appModel struct {
	h *host

	width  int
	height int

	selectedID string
	showDetail bool
	keys       keyMap
}

func newAppModel(s store.Store, b *model.Board) appModel {
	h := &host{
		store: s,
		board: b,
		reg:   dnd.NewRegistry(),
		known: map[string]bool{},
	}
	cfg := dnd.DefaultConfig()
	// Cell-sized geometry: a shallow edge band, one cell of tap slack.
	cfg.AutoScroll = dnd.AutoScroll{Zone: 3, Gain: 0.5}
	cfg.TapTolerance = 1
	h.orch = dnd.NewOrchestrator(h.reg, cfg, h.hooks())
	h.relayout()

	m := appModel{h: h, keys: defaultKeyMap()}
	if cards := flattenCards(b); len(cards) > 0 {
		m.selectedID = cards[0].ID
	}
	return m
}

func (h *host) hooks() dnd.Hooks {
	return dnd.Hooks{
		OnPickup: func(itemID string) {
			if c, ok := h.board.FindCard(itemID); ok {
				h.setStatus("moving “" + c.Title + "”")
			}
		},
		OnTargetChanged: func(laneID string, index int) {
			// Rendering picks the slot up from the session; nothing to do.
		},
		OnDropValid: func(d dnd.Drop) {
			h.setStatus("dropped")
		},
		OnDropInvalid: func(itemID string) {
			h.setStatus("drop cancelled")
		},
		OnAutoScroll: func(delta float64) {
			h.scrollBy(delta)
		},
		OnCommit: func(d dnd.Drop) {
			h.applyDrop(d)
		},
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case frameMsg:
		return m.updateFrame(time.Time(msg))

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *appModel) resize() {
	h := m.h
	h.boardWidth = m.width
	if m.showDetail {
		h.boardWidth = m.width / 2
	}
	h.boardHeight = m.height - headerRows - footerRows
	if h.boardHeight < 3 {
		h.boardHeight = 3
	}
	h.clampScroll()
	h.syncViewport()
}

func (m appModel) updateFrame(now time.Time) (tea.Model, tea.Cmd) {
	h := m.h
	before := h.yOffset
	h.orch.Tick(now)
	if h.yOffset != before && h.orch.State() == dnd.StateDragging {
		// Auto-scroll moved the content under a stationary pointer; its
		// content-space position changed even though the screen position
		// did not.
		h.lastMouse.Y += float64(h.yOffset - before)
		h.orch.UpdateDrag(h.lastMouse, now)
	}
	h.syncViewport()
	if h.orch.State() != dnd.StateIdle {
		return m, frameCmd()
	}
	return m, nil
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	h := m.h
	now := time.Now()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if !h.orch.Session().ScrollLocked {
			h.scrollBy(-2)
			h.syncViewport()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if !h.orch.Session().ScrollLocked {
			h.scrollBy(2)
			h.syncViewport()
		}
		return m, nil
	}

	pt, onBoard := h.contentPoint(msg.X, msg.Y)
	if onBoard {
		h.lastMouse = pt
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onBoard {
			return m, nil
		}
		if cb, lane, ok := h.cardAt(pt.Y); ok {
			m.selectedID = cb.card.ID
			if h.orch.BeginDrag(cb.card.ID, lane.ID, cb.rect, pt, now) {
				return m, frameCmd()
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		h.orch.UpdateDrag(pt, now)
		return m, nil

	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			h.orch.EndDrag(now)
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.h
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		// Esc interrupts an in-flight drag like a platform gesture cancel.
		if h.orch.Session().Active() {
			h.orch.CancelDrag()
			return m, nil
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if b, err := h.store.Load(context.Background()); err == nil {
			h.board = b
			h.relayout()
		}
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.selectedID = h.neighborCard(m.selectedID, -1)
		h.scrollToCard(m.selectedID)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.selectedID = h.neighborCard(m.selectedID, +1)
		h.scrollToCard(m.selectedID)
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		h.moveSelected(m.selectedID, 0, -1)
		return m, nil

	case key.Matches(msg, m.keys.MoveDown):
		h.moveSelected(m.selectedID, 0, +1)
		return m, nil

	case key.Matches(msg, m.keys.MovePrevLane):
		h.moveSelected(m.selectedID, -1, 0)
		return m, nil

	case key.Matches(msg, m.keys.MoveNextLane):
		h.moveSelected(m.selectedID, +1, 0)
		return m, nil
	}
	return m, nil
}

// contentPoint maps a screen cell to content space. ok is false outside
// the board area.
func (h *host) contentPoint(x, y int) (dnd.Point, bool) {
	cy := float64(y-headerRows) + float64(h.yOffset)
	ok := y >= headerRows && y < headerRows+h.boardHeight && x < h.boardWidth
	return dnd.Point{X: float64(x), Y: cy}, ok
}

func (h *host) cardAt(contentY float64) (cardBox, model.Lane, bool) {
	for _, lb := range h.boxes {
		for _, cb := range lb.cards {
			if cb.rect.ContainsY(contentY) {
				return cb, lb.lane, true
			}
		}
	}
	return cardBox{}, model.Lane{}, false
}

// relayout rebuilds boxes from the board and refreshes the registry. Runs
// after every board mutation; the per-frame hit-tests then see current
// geometry.
func (h *host) relayout() {
	h.boxes, h.contentHeight = buildLayout(h.board)
	h.known = registerLayout(h.reg, h.boxes, float64(h.yOffset), h.known)
	h.clampScroll()
	h.syncViewport()
}

func (h *host) syncViewport() {
	h.orch.SetViewport(dnd.Rect{
		Y:      float64(h.yOffset),
		Width:  float64(h.boardWidth),
		Height: float64(h.boardHeight),
	})
}

func (h *host) scrollBy(delta float64) {
	h.scrollRem += delta
	step := int(h.scrollRem)
	h.scrollRem -= float64(step)
	h.yOffset += step
	h.clampScroll()
}

func (h *host) clampScroll() {
	max := h.contentHeight - h.boardHeight
	if max < 0 {
		max = 0
	}
	if h.yOffset > max {
		h.yOffset = max
	}
	if h.yOffset < 0 {
		h.yOffset = 0
	}
}

func (h *host) scrollToCard(id string) {
	for _, lb := range h.boxes {
		for _, cb := range lb.cards {
			if cb.card.ID != id {
				continue
			}
			top := int(cb.rect.Top())
			bottom := int(cb.rect.Bottom())
			if top < h.yOffset {
				h.yOffset = top
			}
			if bottom > h.yOffset+h.boardHeight {
				h.yOffset = bottom - h.boardHeight
			}
			h.clampScroll()
			return
		}
	}
}

// applyDrop feeds a finished drag through the commit transform and
// persists the result. The engine never touches the store.
func (h *host) applyDrop(d dnd.Drop) {
	cards, err := dnd.Commit(h.board.Cards, d.ItemID, d.SourceLaneID, d.TargetLaneID, d.TargetIndex)
	if err != nil {
		h.setStatus("move failed: " + err.Error())
		return
	}
	h.board.Cards = cards
	if c, ok := h.board.FindCard(d.ItemID); ok {
		c.UpdatedAt = time.Now().UTC()
	}
	if err := h.store.Save(context.Background(), h.board); err != nil {
		h.setStatus("save failed: " + err.Error())
	}
	h.relayout()
}

// moveSelected is the keyboard fallback: dLane steps across lanes, dPos
// within the lane. Both paths go through the same commit transform.
func (h *host) moveSelected(id string, dLane, dPos int) {
	if id == "" {
		return
	}
	c, ok := h.board.FindCard(id)
	if !ok {
		return
	}
	laneCards := h.board.LaneCards(c.LaneID)
	pos := 0
	for i, lc := range laneCards {
		if lc.ID == id {
			pos = i
		}
	}

	target := c.LaneID
	index := pos + dPos
	if dLane != 0 {
		model.SortLanes(h.board.Lanes)
		cur := 0
		for i, l := range h.board.Lanes {
			if l.ID == c.LaneID {
				cur = i
			}
		}
		next := cur + dLane
		if next < 0 || next >= len(h.board.Lanes) {
			return
		}
		target = h.board.Lanes[next].ID
		index = pos
	} else if index < 0 {
		return
	}

	h.applyDrop(dnd.Drop{
		ItemID:       id,
		SourceLaneID: c.LaneID,
		TargetLaneID: target,
		TargetIndex:  index,
	})
	h.scrollToCard(id)
}

// neighborCard returns the card dPos steps away in the flattened board
// order, staying on the current card at either end.
func (h *host) neighborCard(id string, dPos int) string {
	cards := flattenCards(h.board)
	if len(cards) == 0 {
		return ""
	}
	cur := -1
	for i, c := range cards {
		if c.ID == id {
			cur = i
			break
		}
	}
	if cur < 0 {
		return cards[0].ID
	}
	next := cur + dPos
	if next < 0 || next >= len(cards) {
		return id
	}
	return cards[next].ID
}

func flattenCards(b *model.Board) []model.Card {
	model.SortLanes(b.Lanes)
	var out []model.Card
	for _, l := range b.Lanes {
		out = append(out, b.LaneCards(l.ID)...)
	}
	return out
}

func (h *host) setStatus(s string) {
	h.status = s
	h.statusTime = time.Now()
}
