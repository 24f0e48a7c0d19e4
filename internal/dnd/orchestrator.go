package dnd

import "time"

// State is the orchestrator's gesture phase.
type State int

const (
	// StateIdle: no gesture in progress.
	StateIdle State = iota
	// StatePressed: pointer down on a card, waiting out the hold threshold.
	StatePressed
	// StateDragging: session open, ghost following the pointer.
	StateDragging
	// StateSettling: pointer released on a valid target; ghost animating
	// into its slot, commit pending.
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateDragging:
		return "dragging"
	case StateSettling:
		return "settling"
	}
	return "unknown"
}

// Drop is the snapshot handed to the commit hook: the hit-test result
// captured when the pointer was released, never recomputed afterwards.
type Drop struct {
	ItemID       string
	SourceLaneID string
	TargetLaneID string
	TargetIndex  int
}

// Hooks are fire-and-forget notifications to the host (ghost rendering,
// haptic/bell feedback, scroll application, the commit itself). They run
// synchronously inside the tick context; hosts must not block in them.
// Any hook may be nil.
type Hooks struct {
	// OnPickup fires when a press survives the hold threshold and the drag
	// actually begins.
	OnPickup func(itemID string)
	// OnTargetChanged fires whenever the active lane or slot changes
	// between ticks, including to/from "no target" (laneID "", index -1).
	OnTargetChanged func(laneID string, index int)
	// OnDropValid fires when the pointer is released over a valid slot.
	OnDropValid func(drop Drop)
	// OnDropInvalid fires when the drag ends with nowhere to land
	// (also for external cancellation).
	OnDropInvalid func(itemID string)
	// OnAutoScroll asks the host to scroll its viewport by delta. The host
	// owns clamping and must re-register layouts it moves.
	OnAutoScroll func(delta float64)
	// OnCommit delivers the final drop after the settle animation. The
	// host applies it (typically via Commit) to the collection it owns.
	OnCommit func(drop Drop)
}

// Config tunes the orchestrator's timing and scroll behavior.
type Config struct {
	// HoldDelay is how long a press must survive before a drag begins.
	HoldDelay time.Duration
	// TapTolerance is how far the pointer may wander during the hold
	// before the press reverts to an ordinary tap/scroll.
	TapTolerance float64
	// SettleDuration is the length of the drop animation, after which the
	// commit hook fires.
	SettleDuration time.Duration
	// AutoScroll is the edge policy applied every tick while dragging.
	AutoScroll AutoScroll
}

// DefaultConfig returns the stock gesture tuning.
func DefaultConfig() Config {
	return Config{
		HoldDelay:      400 * time.Millisecond,
		TapTolerance:   1,
		SettleDuration: 120 * time.Millisecond,
		AutoScroll:     DefaultAutoScroll,
	}
}

// Orchestrator owns the per-card gesture state machine. It drives the
// session, the hit-tester and the auto-scroll policy each tick, and issues
// the final commit callback.
//
// Not safe for concurrent use: every method must be called from the same
// serialized tick context that owns the registry.
type Orchestrator struct {
	reg     *Registry
	cfg     Config
	hooks   Hooks
	session Session

	state    State
	viewport Rect

	// Pressed bookkeeping.
	pressedAt    time.Time
	pressPointer Point
	pressOrigin  Rect
	pressItemID  string
	pressLaneID  string

	// Dragging bookkeeping.
	pointer Point

	// Settling bookkeeping.
	settleStart  time.Time
	settleFrom   Point
	settleTo     Point
	settleDrop   Drop
	settleLayout *Registry
}

func NewOrchestrator(reg *Registry, cfg Config, hooks Hooks) *Orchestrator {
	o := &Orchestrator{reg: reg, cfg: cfg, hooks: hooks}
	o.session.Reset()
	return o
}

func (o *Orchestrator) State() State { return o.state }

// Session exposes the live drag blackboard for rendering. Read-only for
// everyone but the orchestrator.
func (o *Orchestrator) Session() *Session { return &o.session }

// SetViewport tells the auto-scroll policy where the visible window is, in
// the same coordinate space as registered layouts.
func (o *Orchestrator) SetViewport(r Rect) { o.viewport = r }

// BeginDrag starts the gesture on pointer-down. The drag itself only
// begins once the hold threshold elapses (see Tick). Returns false when a
// gesture is already in progress; the second pickup is ignored with no
// state change.
func (o *Orchestrator) BeginDrag(itemID, laneID string, origin Rect, pointer Point, now time.Time) bool {
	if o.state != StateIdle {
		return false
	}
	o.state = StatePressed
	o.pressedAt = now
	o.pressPointer = pointer
	o.pressOrigin = origin
	o.pressItemID = itemID
	o.pressLaneID = laneID
	o.pointer = pointer
	return true
}

// UpdateDrag feeds a pointer-move sample. While Pressed, movement beyond
// the tap tolerance aborts the hold (the gesture was a tap or a scroll).
// While Dragging, the ghost follows the pointer and the target slot is
// re-derived from the freshest registry state.
func (o *Orchestrator) UpdateDrag(pointer Point, now time.Time) {
	switch o.state {
	case StatePressed:
		dx := pointer.X - o.pressPointer.X
		dy := pointer.Y - o.pressPointer.Y
		if abs(dx) > o.cfg.TapTolerance || abs(dy) > o.cfg.TapTolerance {
			o.abortPress()
			return
		}
		o.pointer = pointer
	case StateDragging:
		o.pointer = pointer
		o.session.Follower = Point{
			X: o.session.FollowerOrigin.X + (pointer.X - o.pressPointer.X),
			Y: o.session.FollowerOrigin.Y + (pointer.Y - o.pressPointer.Y),
		}
		o.retarget()
	}
}

// EndDrag handles pointer-up. Before the hold threshold it is an ordinary
// tap (no drag side effects). During a drag it either enters Settling
// (valid target) or cancels (no target).
func (o *Orchestrator) EndDrag(now time.Time) {
	switch o.state {
	case StatePressed:
		o.abortPress()
	case StateDragging:
		if !o.session.HasTarget() {
			o.cancelDragging()
			return
		}
		o.enterSettling(now)
	}
}

// CancelDrag handles external interruption (terminal focus loss, gesture
// takeover). Treated like an invalid drop; cleanup runs exactly once, so
// overlapping cancellation triggers are harmless.
func (o *Orchestrator) CancelDrag() {
	switch o.state {
	case StatePressed:
		o.abortPress()
	case StateDragging, StateSettling:
		o.cancelDragging()
	}
}

// Tick advances the time-driven phases: the hold threshold while Pressed,
// auto-scroll while Dragging, and the settle animation (ending in the
// commit callback) while Settling. Call once per frame during a gesture.
func (o *Orchestrator) Tick(now time.Time) {
	switch o.state {
	case StatePressed:
		if now.Sub(o.pressedAt) >= o.cfg.HoldDelay {
			o.activateDrag()
		}
	case StateDragging:
		if delta := o.cfg.AutoScroll.Delta(o.pointer.Y, o.viewport); delta != 0 && o.hooks.OnAutoScroll != nil {
			o.hooks.OnAutoScroll(delta)
		}
		// Geometry may have shifted under the pointer (scroll, reflow);
		// correctness depends on re-testing against the fresh registry.
		o.retarget()
	case StateSettling:
		elapsed := now.Sub(o.settleStart)
		if elapsed < o.cfg.SettleDuration {
			t := float64(elapsed) / float64(o.cfg.SettleDuration)
			o.session.Follower = Point{
				X: o.settleFrom.X + (o.settleTo.X-o.settleFrom.X)*t,
				Y: o.settleFrom.Y + (o.settleTo.Y-o.settleFrom.Y)*t,
			}
			return
		}
		drop := o.settleDrop
		o.finish()
		if o.hooks.OnCommit != nil {
			o.hooks.OnCommit(drop)
		}
	}
}

// activateDrag is the Pressed -> Dragging transition: open the session,
// hide the source row (the host reads Session.ItemID for that), lock the
// scroll container, and run one hit-test at the origin.
func (o *Orchestrator) activateDrag() {
	o.state = StateDragging
	o.session = Session{
		ItemID:       o.pressItemID,
		SourceLaneID: o.pressLaneID,
		Follower:     Point{X: o.pressOrigin.X, Y: o.pressOrigin.Y},
		FollowerOrigin: Point{
			X: o.pressOrigin.X,
			Y: o.pressOrigin.Y,
		},
		TargetIndex:  -1,
		ScrollLocked: true,
	}
	if o.hooks.OnPickup != nil {
		o.hooks.OnPickup(o.session.ItemID)
	}
	o.retarget()
}

// retarget re-runs the hit-test and notifies on slot changes.
func (o *Orchestrator) retarget() {
	tgt := o.reg.HitTest(o.pointer.Y, o.session.ItemID)
	if tgt.LaneID == o.session.TargetLaneID && tgt.Index == o.session.TargetIndex {
		return
	}
	o.session.TargetLaneID = tgt.LaneID
	o.session.TargetIndex = tgt.Index
	if o.hooks.OnTargetChanged != nil {
		o.hooks.OnTargetChanged(tgt.LaneID, tgt.Index)
	}
}

// enterSettling snapshots the drop and the registry at release time. The
// settle animation and the commit both read this snapshot; later layout
// mutations must not change where the card lands.
func (o *Orchestrator) enterSettling(now time.Time) {
	o.state = StateSettling
	o.settleStart = now
	o.settleFrom = o.session.Follower
	o.settleLayout = o.reg.Clone()
	o.settleDrop = Drop{
		ItemID:       o.session.ItemID,
		SourceLaneID: o.session.SourceLaneID,
		TargetLaneID: o.session.TargetLaneID,
		TargetIndex:  o.session.TargetIndex,
	}
	o.settleTo = o.slotPosition(o.settleLayout, o.settleDrop)
	if o.hooks.OnDropValid != nil {
		o.hooks.OnDropValid(o.settleDrop)
	}
}

// slotPosition derives the ghost's landing point from the snapshot: the
// top of the row currently at the target index, or the end of the lane.
func (o *Orchestrator) slotPosition(reg *Registry, drop Drop) Point {
	items := reg.laneItemsExcluding(drop.TargetLaneID, drop.ItemID)
	x := o.session.FollowerOrigin.X
	if drop.TargetIndex < len(items) {
		return Point{X: x, Y: items[drop.TargetIndex].Rect.Top()}
	}
	if len(items) > 0 {
		return Point{X: x, Y: items[len(items)-1].Rect.Bottom()}
	}
	if lane, ok := reg.Lane(drop.TargetLaneID); ok {
		return Point{X: x, Y: lane.Rect.Top()}
	}
	return o.session.FollowerOrigin
}

// abortPress is the Pressed -> Idle path (tap, or wander past tolerance).
// No drag side effects have happened yet.
func (o *Orchestrator) abortPress() {
	o.state = StateIdle
	o.pressItemID = ""
	o.pressLaneID = ""
}

// cancelDragging is the Cancelled path: full cleanup, then the failure
// notification.
func (o *Orchestrator) cancelDragging() {
	itemID := o.session.ItemID
	o.finish()
	if o.hooks.OnDropInvalid != nil && itemID != "" {
		o.hooks.OnDropInvalid(itemID)
	}
}

// finish is the single cleanup point every terminal path funnels through:
// restore the source row, unlock scrolling, clear the session. Running it
// against an already-clean orchestrator is a no-op.
func (o *Orchestrator) finish() {
	o.state = StateIdle
	o.pressItemID = ""
	o.pressLaneID = ""
	o.settleLayout = nil
	o.session.Reset()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
