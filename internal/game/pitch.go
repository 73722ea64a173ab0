package game

import (
	"math"

	"github.com/Garsondee/Soccer-Sense/internal/config"
)

// RegionMode selects how much of a region counts as "inside".
type RegionMode int

const (
	RegionNormal   RegionMode = iota // full extent
	RegionHalfSize                   // middle half in each axis
)

// Region is one cell of the pitch grid used for home positions.
type Region struct {
	ID     int
	Left   float64
	Top    float64 // smaller Y
	Right  float64
	Bottom float64 // larger Y
}

// Center is the region's midpoint.
func (r Region) Center() Vec2 {
	return Vec2{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Width is the region's extent along X.
func (r Region) Width() float64 { return r.Right - r.Left }

// Height is the region's extent along Y.
func (r Region) Height() float64 { return r.Bottom - r.Top }

// Contains reports whether p lies inside the region under mode.
func (r Region) Contains(p Vec2, mode RegionMode) bool {
	if mode == RegionHalfSize {
		mx := r.Width() * 0.25
		my := r.Height() * 0.25
		return p.X > r.Left+mx && p.X < r.Right-mx && p.Y > r.Top+my && p.Y < r.Bottom-my
	}
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Goal is a goal mouth on one end line. Facing points into the pitch.
type Goal struct {
	Owner     TeamColor // team defending this goal
	Center    Vec2
	LeftPost  Vec2
	RightPost Vec2
	Facing    Vec2
	Width     float64
}

func newGoal(owner TeamColor, center, facing Vec2, width float64) *Goal {
	half := width / 2
	return &Goal{
		Owner:     owner,
		Center:    center,
		LeftPost:  Vec2{center.X, center.Y - half},
		RightPost: Vec2{center.X, center.Y + half},
		Facing:    facing,
		Width:     width,
	}
}

// Scored reports whether a ball moving from prev to cur crossed the goal line
// between the posts, travelling into the goal.
func (g *Goal) Scored(prev, cur Vec2) bool {
	before := prev.Sub(g.Center).Dot(g.Facing)
	after := cur.Sub(g.Center).Dot(g.Facing)
	if before < 0 || after >= 0 {
		return false
	}
	t := before / (before - after)
	crossing := prev.Add(cur.Sub(prev).Scale(t))
	return math.Abs(crossing.Y-g.Center.Y) < g.Width/2
}

// Pitch is the playing area, its region grid, both goals and the match flags
// the agents consult.
type Pitch struct {
	Width   float64
	Height  float64
	Regions []Region
	cols    int
	rows    int

	BlueGoal *Goal // at -X, defended by blue
	RedGoal  *Goal // at +X, defended by red

	// IsPlaying is false between a goal and the following kick-off.
	IsPlaying bool
	// GoalkeeperHasBall is set while a keeper holds the ball.
	GoalkeeperHasBall bool
}

// NewPitch builds the pitch centred on the origin. Region IDs are assigned
// column-major from the -X end: id = col*rows + row.
func NewPitch(cfg config.Pitch) *Pitch {
	p := &Pitch{
		Width:  cfg.Width,
		Height: cfg.Height,
		cols:   cfg.RegionCols,
		rows:   cfg.RegionRows,
	}
	rw := cfg.Width / float64(cfg.RegionCols)
	rh := cfg.Height / float64(cfg.RegionRows)
	left := -cfg.Width / 2
	top := -cfg.Height / 2
	for col := 0; col < cfg.RegionCols; col++ {
		for row := 0; row < cfg.RegionRows; row++ {
			p.Regions = append(p.Regions, Region{
				ID:     col*cfg.RegionRows + row,
				Left:   left + float64(col)*rw,
				Top:    top + float64(row)*rh,
				Right:  left + float64(col+1)*rw,
				Bottom: top + float64(row+1)*rh,
			})
		}
	}
	p.BlueGoal = newGoal(ColorBlue, Vec2{-cfg.Width / 2, 0}, Vec2{1, 0}, cfg.GoalWidth)
	p.RedGoal = newGoal(ColorRed, Vec2{cfg.Width / 2, 0}, Vec2{-1, 0}, cfg.GoalWidth)
	return p
}

// RegionByID looks up a region.
func (p *Pitch) RegionByID(id int) (Region, bool) {
	if id < 0 || id >= len(p.Regions) {
		return Region{}, false
	}
	return p.Regions[id], true
}

// PlayingArea is the whole pitch as a region.
func (p *Pitch) PlayingArea() Region {
	return Region{ID: -1, Left: -p.Width / 2, Top: -p.Height / 2, Right: p.Width / 2, Bottom: p.Height / 2}
}

// Center is the kick-off spot.
func (p *Pitch) Center() Vec2 { return Vec2{} }

// GoalOf returns the goal defended by color.
func (p *Pitch) GoalOf(color TeamColor) *Goal {
	if color == ColorRed {
		return p.RedGoal
	}
	return p.BlueGoal
}

// ClampInside keeps pos within the playing area shrunk by margin.
func (p *Pitch) ClampInside(pos Vec2, margin float64) Vec2 {
	hw := p.Width/2 - margin
	hh := p.Height/2 - margin
	pos.X = math.Max(-hw, math.Min(hw, pos.X))
	pos.Y = math.Max(-hh, math.Min(hh, pos.Y))
	return pos
}
