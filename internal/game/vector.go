package game

import "math"

// Vec2 is a point or direction on the pitch plane. X runs along the length of
// the pitch (goal to goal), Y across it.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistanceSq(o Vec2) float64 { return v.Sub(o).LengthSq() }
func (v Vec2) Distance(o Vec2) float64 { return v.Sub(o).Length() }

// Perp is v rotated 90° anticlockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Normalize returns the unit vector of v, or the zero vector for zero input.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Truncate caps the length of v at max.
func (v Vec2) Truncate(max float64) Vec2 {
	l := v.Length()
	if l <= max || l < 1e-12 {
		return v
	}
	return v.Scale(max / l)
}

// Rotate turns v by angle radians anticlockwise.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// ToLocal expresses point p in the frame whose origin is origin and whose +X
// axis is heading (unit length).
func ToLocal(p, heading, origin Vec2) Vec2 {
	d := p.Sub(origin)
	return Vec2{d.Dot(heading), d.Dot(heading.Perp())}
}

// TangentPoints returns the two points on the circle (center, radius) whose
// tangents pass through p. ok is false when p lies inside the circle.
func TangentPoints(center Vec2, radius float64, p Vec2) (t1, t2 Vec2, ok bool) {
	pmc := p.Sub(center)
	sqrLen := pmc.LengthSq()
	rSqr := radius * radius
	if sqrLen <= rSqr {
		return Vec2{}, Vec2{}, false
	}
	invSqrLen := 1 / sqrLen
	root := math.Sqrt(math.Abs(sqrLen - rSqr))

	t1 = Vec2{
		X: center.X + radius*(radius*pmc.X-pmc.Y*root)*invSqrLen,
		Y: center.Y + radius*(radius*pmc.Y+pmc.X*root)*invSqrLen,
	}
	t2 = Vec2{
		X: center.X + radius*(radius*pmc.X+pmc.Y*root)*invSqrLen,
		Y: center.Y + radius*(radius*pmc.Y-pmc.X*root)*invSqrLen,
	}
	return t1, t2, true
}
