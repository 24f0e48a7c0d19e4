package dnd

import "testing"

func TestAutoScroll_ZeroOutsideZones(t *testing.T) {
	a := AutoScroll{Zone: 10, Gain: 0.5}
	vp := Rect{Y: 0, Height: 100}
	for _, y := range []float64{10, 50, 90} {
		if d := a.Delta(y, vp); d != 0 {
			t.Fatalf("Delta(%v) = %v, want 0", y, d)
		}
	}
}

func TestAutoScroll_TopZoneNegativeAndProportional(t *testing.T) {
	a := AutoScroll{Zone: 10, Gain: 0.5}
	vp := Rect{Y: 0, Height: 100}
	near := a.Delta(2, vp)
	far := a.Delta(8, vp)
	if near >= 0 || far >= 0 {
		t.Fatalf("top-zone deltas must be negative: near=%v far=%v", near, far)
	}
	if !(near < far) {
		t.Fatalf("closer to the edge must scroll faster: near=%v far=%v", near, far)
	}
}

func TestAutoScroll_BottomZoneSymmetric(t *testing.T) {
	a := AutoScroll{Zone: 10, Gain: 0.5}
	vp := Rect{Y: 0, Height: 100}
	top := a.Delta(3, vp)
	bottom := a.Delta(97, vp)
	if bottom <= 0 {
		t.Fatalf("bottom-zone delta must be positive, got %v", bottom)
	}
	if top != -bottom {
		t.Fatalf("edge policy not symmetric: top=%v bottom=%v", top, bottom)
	}
}

func TestAutoScroll_PointerPastEdgeClampsDistance(t *testing.T) {
	a := AutoScroll{Zone: 10, Gain: 1}
	vp := Rect{Y: 20, Height: 50}
	// Past the top edge: full zone magnitude, no overshoot beyond it.
	if d := a.Delta(15, vp); d != -10 {
		t.Fatalf("Delta above viewport = %v, want -10", d)
	}
	if d := a.Delta(80, vp); d != 10 {
		t.Fatalf("Delta below viewport = %v, want 10", d)
	}
}

func TestAutoScroll_DisabledConfig(t *testing.T) {
	vp := Rect{Y: 0, Height: 40}
	if d := (AutoScroll{}).Delta(1, vp); d != 0 {
		t.Fatalf("zero-value policy must be inert, got %v", d)
	}
}
