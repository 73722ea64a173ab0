package game

import (
	"math"

	"github.com/Garsondee/Soccer-Sense/internal/config"
	"github.com/mlange-42/ark/ecs"
)

// Ball is the match ball. Its motion is closed-form: constant friction
// deceleration along the direction of travel, reflection off the touch lines
// and the end lines outside the goal mouths.
type Ball struct {
	world    *World
	entity   ecs.Entity
	friction float64
	prev     Vec2
}

// NewBall spawns the ball at the centre spot.
func NewBall(w *World, cfg config.Ball) *Ball {
	e := w.Spawn(
		Transform{Heading: Vec2{1, 0}},
		Motion{Mass: cfg.Mass},
		Body{Radius: cfg.Radius, Kind: KindBall},
	)
	return &Ball{world: w, entity: e, friction: cfg.Friction}
}

// Position is the ball's current location.
func (b *Ball) Position() Vec2 { return b.world.Transform(b.entity).Position }

// PrevPosition is where the ball was before the last integration step.
func (b *Ball) PrevPosition() Vec2 { return b.prev }

// Velocity is the ball's current velocity.
func (b *Ball) Velocity() Vec2 { return b.world.Motion(b.entity).Velocity }

// Mass is the ball's mass.
func (b *Ball) Mass() float64 { return b.world.Motion(b.entity).Mass }

// Radius is the ball's radius.
func (b *Ball) Radius() float64 { return b.world.Body(b.entity).Radius }

// Friction is the (negative) deceleration in m/s².
func (b *Ball) Friction() float64 { return b.friction }

// Kick sets the ball moving along direction with speed force/mass.
func (b *Ball) Kick(direction Vec2, force float64) {
	m := b.world.Motion(b.entity)
	m.Velocity = direction.Normalize().Scale(force / m.Mass)
}

// Trap stops the ball dead.
func (b *Ball) Trap() {
	b.world.Motion(b.entity).Velocity = Vec2{}
}

// PlaceAt moves the ball to pos and stops it.
func (b *Ball) PlaceAt(pos Vec2) {
	b.world.Transform(b.entity).Position = pos
	b.world.Motion(b.entity).Velocity = Vec2{}
	b.prev = pos
}

// TimeToCoverDistance returns the seconds a ball kicked with force needs to
// travel from a to b, or -1 if friction stops it first.
func (b *Ball) TimeToCoverDistance(from, to Vec2, force float64) float64 {
	speed := force / b.Mass()
	distance := from.Distance(to)
	term := speed*speed + 2*distance*b.friction
	if term <= 0 {
		return -1
	}
	v := math.Sqrt(term)
	return (v - speed) / b.friction
}

// FuturePosition predicts where the ball will be after t seconds, ignoring walls.
func (b *Ball) FuturePosition(t float64) Vec2 {
	vel := b.Velocity()
	speed := vel.Length()
	if speed < 1e-9 {
		return b.Position()
	}
	// The ball stops once friction has eaten its speed.
	stop := -speed / b.friction
	if t > stop {
		t = stop
	}
	ut := vel.Scale(t)
	halfAT2 := 0.5 * b.friction * t * t
	return b.Position().Add(ut).Add(vel.Normalize().Scale(halfAT2))
}

// applyFriction slows the ball for one step of dt seconds.
func (b *Ball) applyFriction(dt float64) {
	b.prev = b.Position()
	m := b.world.Motion(b.entity)
	speed := m.Velocity.Length()
	if speed < 1e-9 {
		m.Velocity = Vec2{}
		return
	}
	next := speed + b.friction*dt
	if next <= 0 {
		m.Velocity = Vec2{}
		return
	}
	m.Velocity = m.Velocity.Scale(next / speed)
}

// resolveBoundaries reflects the ball off the lines. Inside a goal mouth the
// ball may reach the end line itself; the goal check runs before this.
func (b *Ball) resolveBoundaries(p *Pitch) {
	t := b.world.Transform(b.entity)
	m := b.world.Motion(b.entity)
	r := b.Radius()
	hw, hh := p.Width/2, p.Height/2

	if t.Position.Y < -hh+r {
		t.Position.Y = -hh + r
		m.Velocity.Y = math.Abs(m.Velocity.Y)
	} else if t.Position.Y > hh-r {
		t.Position.Y = hh - r
		m.Velocity.Y = -math.Abs(m.Velocity.Y)
	}

	limit := hw - r
	if math.Abs(t.Position.Y) < p.BlueGoal.Width/2 {
		limit = hw
	}
	if t.Position.X < -limit {
		t.Position.X = -limit
		m.Velocity.X = math.Abs(m.Velocity.X)
	} else if t.Position.X > limit {
		t.Position.X = limit
		m.Velocity.X = -math.Abs(m.Velocity.X)
	}
}
