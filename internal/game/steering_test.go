package game

import (
	"math"
	"testing"
)

func TestSeek_PullsTowardTarget(t *testing.T) {
	f := seek(Vec2{}, Vec2{}, Vec2{10, 0}, 1.6)
	if !approx(f.X, 1.6*steerGain) || !approx(f.Y, 0) {
		t.Fatalf("expected (%.1f,0), got %+v", 1.6*steerGain, f)
	}
}

func TestArrive_SlowsNearTarget(t *testing.T) {
	far := arrive(Vec2{}, Vec2{}, Vec2{5, 0}, 1.6)
	near := arrive(Vec2{}, Vec2{}, Vec2{0.4, 0}, 1.6)
	if near.X >= far.X {
		t.Fatalf("expected a weaker pull inside the slowing radius, far=%+v near=%+v", far, near)
	}
	// 1.6 * 0.4/0.8 = 0.8 m/s desired.
	if !approx(near.X, 0.8*steerGain) {
		t.Fatalf("expected %.2f, got %.2f", 0.8*steerGain, near.X)
	}
	brake := arrive(Vec2{}, Vec2{1, 0}, Vec2{}, 1.6)
	if brake.X >= 0 {
		t.Fatalf("expected braking on the target, got %+v", brake)
	}
}

func TestSteering_Flags(t *testing.T) {
	var s Steering
	s.SeekOn()
	s.ArriveOn()
	if !s.Active(behSeek) || !s.Active(behArrive) {
		t.Fatalf("expected seek and arrive active")
	}
	s.SeekOff()
	if s.Active(behSeek) || !s.Active(behArrive) {
		t.Fatalf("expected only arrive active")
	}
	s.InterposeOn(2)
	if !s.Active(behInterpose) || s.interposeDist != 2 {
		t.Fatalf("expected interpose at 2m")
	}
}

func TestSteering_ForceCapped(t *testing.T) {
	tm := NewTestMatch()
	p := tm.PlayerByLabel("R1")
	s := p.Steering()
	s.SeekOn()
	s.Target = Vec2{-10, 0}
	p.setVelocity(Vec2{1.6, 0})
	f := s.calculate(p, 6)
	if f.Length() > 6+1e-9 {
		t.Fatalf("expected force capped at 6, got %.3f", f.Length())
	}
	if f.X >= 0 {
		t.Fatalf("expected a pull toward -X, got %+v", f)
	}
}

func TestSeparation_PushesApart(t *testing.T) {
	tm := NewTestMatch(
		WithPlayerAt("R1", 0, 0),
		WithPlayerAt("R2", 0.5, 0),
	)
	f := separation(tm.PlayerByLabel("R1"), Vec2{})
	if f.X >= 0 {
		t.Fatalf("expected R1 pushed away from R2, got %+v", f)
	}
}

func TestVec2_Helpers(t *testing.T) {
	if got := (Vec2{3, 4}).Truncate(1); !approx(got.Length(), 1) {
		t.Fatalf("expected unit length, got %v", got.Length())
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Fatalf("expected zero vector to stay zero, got %+v", got)
	}
	local := ToLocal(Vec2{1, 2}, Vec2{0, 1}, Vec2{1, 0})
	if !approx(local.X, 2) || !approx(local.Y, 0) {
		t.Fatalf("expected (2,0) in the rotated frame, got %+v", local)
	}
	rot := (Vec2{1, 0}).Rotate(math.Pi / 2)
	if !approx(rot.X, 0) || !approx(rot.Y, 1) {
		t.Fatalf("expected (0,1), got %+v", rot)
	}
}

func TestTangentPoints(t *testing.T) {
	if _, _, ok := TangentPoints(Vec2{}, 1, Vec2{0.5, 0}); ok {
		t.Fatalf("expected no tangents from inside the circle")
	}
	t1, t2, ok := TangentPoints(Vec2{}, 1, Vec2{2, 0})
	if !ok {
		t.Fatalf("expected tangents from outside the circle")
	}
	for _, tp := range []Vec2{t1, t2} {
		if !approx(tp.Length(), 1) {
			t.Fatalf("expected tangent point on the circle, got %+v", tp)
		}
		// Radius is perpendicular to the tangent line.
		if !approx(tp.Dot(Vec2{2, 0}.Sub(tp)), 0) {
			t.Fatalf("expected perpendicular radius at %+v", tp)
		}
	}
}
