package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// minIntentLength hides intent lines for players already at their target.
const minIntentLength = 0.4

// intentTarget is where p's steering is currently taking it.
func intentTarget(p *Player) (Vec2, bool) {
	st := &p.steering
	switch {
	case st.Active(behPursuit):
		return p.ball().Position(), true
	case st.Active(behSeek), st.Active(behArrive):
		return st.Target, true
	}
	return Vec2{}, false
}

// drawIntentLines draws faint dashed lines from each player to where it is
// heading. The selected player's line is brighter and gets a destination
// marker; an incoming pass is drawn from the ball to the receiver's spot.
func (g *Game) drawIntentLines(screen *ebiten.Image) {
	for _, p := range g.match.Players() {
		dest, ok := intentTarget(p)
		if !ok || p.Position().Distance(dest) < minIntentLength {
			continue
		}
		selected := g.inspector.selected == p
		col := kitOf(p.team.Color)
		col.A = 40
		thickness := float32(0.75)
		if selected {
			col.A = 120
			thickness = 1.5
		}
		sx, sy := g.toScreen(p.Position())
		ex, ey := g.toScreen(dest)
		dashedLine(screen, sx, sy, ex, ey, thickness, col)
		if selected {
			vector.StrokeCircle(screen, ex, ey, 4, 1, color.RGBA{R: 255, G: 240, B: 60, A: 120}, true)
		}
	}

	for _, t := range g.match.Teams() {
		r := t.receivingPlayer
		if r == nil {
			continue
		}
		bx, by := g.toScreen(g.match.ball.Position())
		rx, ry := g.toScreen(r.steering.Target)
		dashedLine(screen, bx, by, rx, ry, 1, color.RGBA{R: 255, G: 255, B: 255, A: 90})
	}
}

func dashedLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float32, col color.RGBA) {
	const dashLen, gapLen = 8, 6
	dx, dy := x2-x1, y2-y1
	total := float32(Vec2{float64(dx), float64(dy)}.Length())
	if total == 0 {
		return
	}
	nx, ny := dx/total, dy/total
	for drawn := float32(0); drawn < total; drawn += dashLen + gapLen {
		end := drawn + dashLen
		if end > total {
			end = total
		}
		vector.StrokeLine(screen, x1+nx*drawn, y1+ny*drawn, x1+nx*end, y1+ny*end, thickness, col, false)
	}
}
