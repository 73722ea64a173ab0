package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 200
	inspBufH  = 230
	inspPad   = 4
	inspLineH = 13

	// pickRadius is how far (in metres) a click may land from a player.
	pickRadius = 0.6
)

// Inspector holds the selected player and view toggle state.
type Inspector struct {
	selected *Player
	rawView  bool
}

// PlayerAt returns the player nearest pos within radius, or nil.
func (m *Match) PlayerAt(pos Vec2, radius float64) *Player {
	var hit *Player
	best := radius * radius
	for _, p := range m.Players() {
		if d := p.Position().DistanceSq(pos); d <= best {
			best = d
			hit = p
		}
	}
	return hit
}

// toPitch is the inverse of toScreen.
func (g *Game) toPitch(x, y int) Vec2 {
	return Vec2{
		X: (float64(x)-float64(g.offX))/pixelsPerMetre - g.cfg.Pitch.Width/2,
		Y: (float64(y)-float64(g.offY))/pixelsPerMetre - g.cfg.Pitch.Height/2,
	}
}

// handleInspectorClick selects the player under the cursor. A click on
// empty grass clears the selection.
func (g *Game) handleInspectorClick(mx, my int) {
	g.inspector.selected = g.match.PlayerAt(g.toPitch(mx, my), pickRadius)
}

func (g *Game) drawInspector(screen *ebiten.Image) {
	p := g.inspector.selected
	if p == nil {
		return
	}

	buf := g.inspBuf
	buf.Clear()
	bw, bh := float32(inspBufW), float32(inspBufH)

	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)
	vector.FillRect(buf, 1, 1, 4, bh-2, kitOf(p.team.Color), false)

	lx, ly := inspPad+6, inspPad
	title := fmt.Sprintf("[ %s %s ]", strings.ToUpper(p.team.Color.String()), p.Label)
	if p.IsControllingPlayer() {
		title += " *"
	}
	ebitenutil.DebugPrintAt(buf, title, lx, ly)
	ly += inspLineH + 2

	viewName := "CURATED"
	if g.inspector.rawView {
		viewName = "RAW"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] toggle", viewName), lx, ly)
	ly += inspLineH + 4
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-inspPad, float32(ly), 1.0, panelBorder, false)
	ly += 4

	if g.inspector.rawView {
		g.drawInspectorRaw(buf, p, lx, ly)
	} else {
		g.drawInspectorCurated(buf, p, lx, ly)
	}

	px := g.offX + g.gameWidth - inspBufW*inspScale - 8
	py := g.offY + 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}

// roleDuty describes what the team currently expects of p.
func roleDuty(p *Player) string {
	t := p.team
	switch {
	case p.IsControllingPlayer():
		return "on the ball"
	case t.receivingPlayer == p:
		return "receiving"
	case t.supportingPlayer == p:
		return "supporting"
	case t.playerClosestToBall == p:
		return "closest to ball"
	default:
		return "positional"
	}
}

func (g *Game) drawInspectorCurated(buf *ebiten.Image, p *Player, lx, ly int) {
	line := func(text string) {
		ebitenutil.DebugPrintAt(buf, text, lx, ly)
		ly += inspLineH
	}
	section := func(title string) {
		ly += 3
		ebitenutil.DebugPrintAt(buf, "-- "+title+" --", lx, ly)
		ly += inspLineH
	}

	section("SITUATION")
	line(fmt.Sprintf("%s, %s", p.role, p.StateName()))
	line("duty: " + roleDuty(p))
	home := "home"
	if !p.IsInHomeRegion() {
		home = "away"
	}
	line(fmt.Sprintf("region %d (%s)", p.homeRegion, home))
	line(fmt.Sprintf("team: %s", p.team.StateName()))

	section("MOVEMENT")
	speed := p.Velocity().Length()
	line(fmt.Sprintf("speed %.2f / %.2f", speed, p.MaxSpeed()))
	line(fmt.Sprintf("to ball %.1fm", p.Position().Distance(p.ball().Position())))
	if p.IsThreatened() {
		line("under pressure")
	}

	section("MATCH")
	s := p.Stats
	line(fmt.Sprintf("goals %d  shots %d", s.Goals, s.Shots))
	line(fmt.Sprintf("passes %d  recv %d", s.Passes, s.Receptions))
	line(fmt.Sprintf("won %d  saves %d", s.ControlGains, s.Saves))
	line(fmt.Sprintf("ran %.0fm", s.Distance))

	if p.thought != "" {
		section("THINKING")
		line(p.thought)
	}
}

// drawInspectorRaw dumps the player's internals verbatim.
func (g *Game) drawInspectorRaw(buf *ebiten.Image, p *Player, lx, ly int) {
	line := func(text string) {
		ebitenutil.DebugPrintAt(buf, text, lx, ly)
		ly += inspLineH
	}
	pos, vel, hd := p.Position(), p.Velocity(), p.Heading()
	st := &p.steering

	line(fmt.Sprintf("id=%d role=%d", p.ID, p.role))
	line(fmt.Sprintf("pos=(%.2f,%.2f)", pos.X, pos.Y))
	line(fmt.Sprintf("vel=(%.2f,%.2f)", vel.X, vel.Y))
	line(fmt.Sprintf("hdg=(%.2f,%.2f)", hd.X, hd.Y))
	line(fmt.Sprintf("home=%d default=%d", p.homeRegion, p.defaultRegion))
	line(fmt.Sprintf("state=%s", p.StateName()))
	line(fmt.Sprintf("steer=%05b", st.flags))
	line(fmt.Sprintf("target=(%.2f,%.2f)", st.Target.X, st.Target.Y))
	line(fmt.Sprintf("interpose=%.2f", st.interposeDist))
	line(fmt.Sprintf("kick next=%d every=%d", p.kick.next, p.kick.interval))
	line(fmt.Sprintf("hold=%d", p.holdTicks))
	line(fmt.Sprintf("kickRange=%v recvRange=%v", p.BallWithinKickingRange(), p.BallWithinReceivingRange()))
	if p.IsGoalkeeper() {
		line(fmt.Sprintf("keeperRange=%v far=%v", p.BallWithinKeeperRange(), p.TooFarFromGoalMouth()))
	}
}
