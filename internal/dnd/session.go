package dnd

// Session is the shared blackboard describing the in-flight drag. It is
// created on pickup, mutated every tick by the orchestrator, and reset on
// drop or cancellation. At most one session is open at a time.
type Session struct {
	ItemID       string
	SourceLaneID string

	// Follower is the current position of the floating ghost;
	// FollowerOrigin is where it started (the picked-up card's rect).
	Follower       Point
	FollowerOrigin Point

	// TargetLaneID == "" / TargetIndex == -1 mean "no valid target".
	TargetLaneID string
	TargetIndex  int

	// ScrollLocked tells the host to ignore user-initiated scrolling while
	// the drag owns the viewport (auto-scroll still applies).
	ScrollLocked bool
}

// Active reports whether a drag session is open.
func (s *Session) Active() bool { return s.ItemID != "" }

// HasTarget reports whether the last hit-test produced a valid slot.
func (s *Session) HasTarget() bool { return s.TargetLaneID != "" && s.TargetIndex >= 0 }

// Reset returns the session to its empty state. Safe to call repeatedly;
// cleanup paths can overlap (normal completion racing an interruption) and
// must converge on the same empty record.
func (s *Session) Reset() {
	*s = Session{TargetIndex: -1}
}
