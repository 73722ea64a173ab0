package game

import (
	"testing"

	"github.com/Garsondee/Soccer-Sense/internal/config"
)

func TestPlayerAt_PicksNearest(t *testing.T) {
	tm := NewTestMatch(
		WithPlayerAt("R1", 9, 7),
		WithPlayerAt("R2", 9, 6.4),
	)
	p := tm.PlayerAt(Vec2{9, 6.8}, pickRadius)
	if p == nil || p.Label != "R1" {
		t.Fatalf("expected R1, got %v", p)
	}
	p = tm.PlayerAt(Vec2{9, 6.5}, pickRadius)
	if p == nil || p.Label != "R2" {
		t.Fatalf("expected R2, got %v", p)
	}
}

func TestPlayerAt_EmptyGrass(t *testing.T) {
	tm := NewTestMatch(WithPlayerAt("R1", 9, 7))
	if p := tm.PlayerAt(Vec2{9.3, 7}, 0.1); p != nil {
		t.Fatalf("expected no player, got %s", p.Label)
	}
}

func TestToPitch_InvertsToScreen(t *testing.T) {
	g := &Game{cfg: config.Default(), offX: borderWidth, offY: borderWidth}
	want := Vec2{2.5, -1.25}
	x, y := g.toScreen(want)
	got := g.toPitch(int(x), int(y))
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRoleDuty(t *testing.T) {
	tm := NewTestMatch(WithKickOffDone())
	r1 := tm.PlayerByLabel("R1")
	r2 := tm.PlayerByLabel("R2")
	tm.Red().SetControl(r1)
	if got := roleDuty(r1); got != "on the ball" {
		t.Fatalf("expected on the ball, got %q", got)
	}
	tm.Red().supportingPlayer = r2
	if got := roleDuty(r2); got != "supporting" {
		t.Fatalf("expected supporting, got %q", got)
	}
}
