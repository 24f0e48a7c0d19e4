package dnd

import (
	"testing"
	"time"
)

type hookLog struct {
	pickups []string
	targets []Target
	valid   []Drop
	invalid []string
	scrolls []float64
	commits []Drop
}

func (h *hookLog) hooks() Hooks {
	return Hooks{
		OnPickup:        func(id string) { h.pickups = append(h.pickups, id) },
		OnTargetChanged: func(lane string, idx int) { h.targets = append(h.targets, Target{LaneID: lane, Index: idx}) },
		OnDropValid:     func(d Drop) { h.valid = append(h.valid, d) },
		OnDropInvalid:   func(id string) { h.invalid = append(h.invalid, id) },
		OnAutoScroll:    func(d float64) { h.scrolls = append(h.scrolls, d) },
		OnCommit:        func(d Drop) { h.commits = append(h.commits, d) },
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AutoScroll = AutoScroll{Zone: 2, Gain: 1}
	return cfg
}

// press-and-hold a0 until the drag activates.
func holdUntilDragging(t *testing.T, o *Orchestrator, now time.Time) time.Time {
	t.Helper()
	if !o.BeginDrag("a0", "A", Rect{Y: 1, Height: 2}, Point{X: 0, Y: 2}, now) {
		t.Fatalf("BeginDrag refused")
	}
	if o.State() != StatePressed {
		t.Fatalf("state after press: %v", o.State())
	}
	now = now.Add(DefaultConfig().HoldDelay)
	o.Tick(now)
	if o.State() != StateDragging {
		t.Fatalf("state after hold: %v", o.State())
	}
	return now
}

func TestOrchestrator_FullDragCommits(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())
	o.SetViewport(Rect{Y: 0, Height: 20})

	now := time.Unix(0, 0)
	now = holdUntilDragging(t, o, now)

	if len(log.pickups) != 1 || log.pickups[0] != "a0" {
		t.Fatalf("pickups: %v", log.pickups)
	}
	s := o.Session()
	if !s.Active() || !s.ScrollLocked {
		t.Fatalf("session after activation: %+v", s)
	}

	// Drag into lane B between b0 and b1 (midpoints 12 and 14).
	o.UpdateDrag(Point{X: 0, Y: 13.5}, now)
	if s.TargetLaneID != "B" || s.TargetIndex != 1 {
		t.Fatalf("target after move: %q/%d", s.TargetLaneID, s.TargetIndex)
	}

	o.EndDrag(now)
	if o.State() != StateSettling {
		t.Fatalf("state after release: %v", o.State())
	}
	if len(log.valid) != 1 || log.valid[0].TargetLaneID != "B" || log.valid[0].TargetIndex != 1 {
		t.Fatalf("drop-valid: %+v", log.valid)
	}
	if len(log.commits) != 0 {
		t.Fatalf("commit fired before settle finished")
	}

	// Mid-settle the follower moves toward the slot.
	now = now.Add(testConfig().SettleDuration / 2)
	o.Tick(now)
	if o.State() != StateSettling {
		t.Fatalf("settle ended early")
	}

	now = now.Add(testConfig().SettleDuration)
	o.Tick(now)
	if o.State() != StateIdle {
		t.Fatalf("state after settle: %v", o.State())
	}
	if len(log.commits) != 1 {
		t.Fatalf("commits: %+v", log.commits)
	}
	d := log.commits[0]
	if d.ItemID != "a0" || d.SourceLaneID != "A" || d.TargetLaneID != "B" || d.TargetIndex != 1 {
		t.Fatalf("commit drop: %+v", d)
	}
	if o.Session().Active() {
		t.Fatalf("session not cleared after commit")
	}
}

func TestOrchestrator_SettleUsesReleaseSnapshot(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())
	o.SetViewport(Rect{Y: 0, Height: 20})

	now := time.Unix(0, 0)
	now = holdUntilDragging(t, o, now)
	o.UpdateDrag(Point{X: 0, Y: 13.5}, now)
	o.EndDrag(now)

	// Layout churn after release must not change where the card lands.
	reg.RegisterItem("b1", "B", Rect{Y: 30, Height: 2}, 1)
	reg.RemoveLane("B")

	now = now.Add(2 * testConfig().SettleDuration)
	o.Tick(now)
	if len(log.commits) != 1 {
		t.Fatalf("commits: %+v", log.commits)
	}
	if d := log.commits[0]; d.TargetLaneID != "B" || d.TargetIndex != 1 {
		t.Fatalf("commit drifted from release snapshot: %+v", d)
	}
}

func TestOrchestrator_TapReleasesBeforeHold(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())

	now := time.Unix(0, 0)
	o.BeginDrag("a0", "A", Rect{Y: 1, Height: 2}, Point{X: 0, Y: 2}, now)
	o.EndDrag(now.Add(50 * time.Millisecond))
	if o.State() != StateIdle {
		t.Fatalf("state after tap: %v", o.State())
	}
	if len(log.pickups) != 0 || len(log.commits) != 0 || len(log.invalid) != 0 {
		t.Fatalf("tap must have no drag side effects: %+v", log)
	}
}

func TestOrchestrator_MoveDuringHoldAborts(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())

	now := time.Unix(0, 0)
	o.BeginDrag("a0", "A", Rect{Y: 1, Height: 2}, Point{X: 0, Y: 2}, now)
	o.UpdateDrag(Point{X: 0, Y: 5}, now.Add(10*time.Millisecond))
	if o.State() != StateIdle {
		t.Fatalf("wandering press must abort, state=%v", o.State())
	}
	// The hold timer must not fire afterwards.
	o.Tick(now.Add(time.Second))
	if o.State() != StateIdle || len(log.pickups) != 0 {
		t.Fatalf("aborted press came back: %v %+v", o.State(), log.pickups)
	}
}

func TestOrchestrator_InvalidDropCancels(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())
	o.SetViewport(Rect{Y: 0, Height: 20})

	now := time.Unix(0, 0)
	now = holdUntilDragging(t, o, now)
	o.UpdateDrag(Point{X: 0, Y: 500}, now) // over no lane
	if o.Session().HasTarget() {
		t.Fatalf("expected no target at y=500")
	}
	o.EndDrag(now)
	if o.State() != StateIdle {
		t.Fatalf("state after invalid drop: %v", o.State())
	}
	if len(log.invalid) != 1 || log.invalid[0] != "a0" {
		t.Fatalf("drop-invalid: %v", log.invalid)
	}
	if len(log.commits) != 0 {
		t.Fatalf("invalid drop must not commit")
	}
}

func TestOrchestrator_CancelTwiceIsIdempotent(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())

	now := time.Unix(0, 0)
	holdUntilDragging(t, o, now)

	o.CancelDrag()
	after := *o.Session()
	o.CancelDrag()
	if o.State() != StateIdle {
		t.Fatalf("state after double cancel: %v", o.State())
	}
	if *o.Session() != after {
		t.Fatalf("second cancel changed the session: %+v vs %+v", *o.Session(), after)
	}
	if len(log.invalid) != 1 {
		t.Fatalf("cleanup feedback must run exactly once: %v", log.invalid)
	}
}

func TestOrchestrator_SecondPressIgnored(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())

	now := time.Unix(0, 0)
	now = holdUntilDragging(t, o, now)
	if o.BeginDrag("b0", "B", Rect{Y: 11, Height: 2}, Point{X: 0, Y: 12}, now) {
		t.Fatalf("second pickup must be ignored while a drag is open")
	}
	if o.Session().ItemID != "a0" {
		t.Fatalf("second pickup disturbed the open session: %+v", o.Session())
	}
}

func TestOrchestrator_AutoScrollFiresNearEdge(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())
	o.SetViewport(Rect{Y: 0, Height: 16})

	now := time.Unix(0, 0)
	now = holdUntilDragging(t, o, now)

	// Pointer deep in the bottom edge zone (zone=2 in testConfig).
	o.UpdateDrag(Point{X: 0, Y: 15.5}, now)
	o.Tick(now.Add(time.Millisecond))
	if len(log.scrolls) == 0 || log.scrolls[0] <= 0 {
		t.Fatalf("expected positive scroll delta near bottom edge: %v", log.scrolls)
	}

	// Away from both edges: no further deltas.
	n := len(log.scrolls)
	o.UpdateDrag(Point{X: 0, Y: 8}, now)
	o.Tick(now.Add(2 * time.Millisecond))
	if len(log.scrolls) != n {
		t.Fatalf("scroll fired away from edges: %v", log.scrolls)
	}
}

func TestOrchestrator_TargetChangeNotifications(t *testing.T) {
	reg := boardRegistry()
	var log hookLog
	o := NewOrchestrator(reg, testConfig(), log.hooks())
	o.SetViewport(Rect{Y: 0, Height: 20})

	now := time.Unix(0, 0)
	now = holdUntilDragging(t, o, now)
	base := len(log.targets)

	o.UpdateDrag(Point{X: 0, Y: 13.5}, now)
	if len(log.targets) != base+1 {
		t.Fatalf("slot change must notify once: %d -> %d", base, len(log.targets))
	}
	// Same slot again: no notification.
	o.UpdateDrag(Point{X: 0, Y: 13.6}, now)
	if len(log.targets) != base+1 {
		t.Fatalf("unchanged slot must not re-notify: %+v", log.targets)
	}
}
