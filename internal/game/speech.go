package game

import (
	"image/color"

	"github.com/Garsondee/Soccer-Sense/internal/fsm"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// callLifetime is how many ticks a call bubble stays visible (~2 seconds).
const callLifetime = 120

// callCooldown is the minimum ticks between calls from one player.
const callCooldown = 90

// Call is something a player shouted to a team-mate.
type Call struct {
	Player *Player
	Text   string
	Tick   int
}

// callText is what the sender of a handled telegram shouts, or "".
func callText(t fsm.Telegram) string {
	to, _ := t.Receiver.(*Player)
	switch t.Message {
	case MsgPassToMe:
		return "Pass!"
	case MsgReceiveBall:
		if to != nil {
			return "Yours, " + to.Label
		}
	case MsgSupportAttacker:
		return "Get forward!"
	case MsgGoHome:
		return "Drop back!"
	}
	return ""
}

// shout records a call from p unless p called out recently.
func (m *Match) shout(p *Player, text string) {
	if p == nil || text == "" {
		return
	}
	for _, c := range m.calls {
		if c.Player == p && m.tick-c.Tick < callCooldown {
			return
		}
	}
	m.calls = append(m.calls, &Call{Player: p, Text: text, Tick: m.tick})
}

// ageCalls drops calls older than callLifetime.
func (m *Match) ageCalls() {
	kept := m.calls[:0]
	for _, c := range m.calls {
		if m.tick-c.Tick < callLifetime {
			kept = append(kept, c)
		}
	}
	m.calls = kept
}

// Calls are the player calls still on screen.
func (m *Match) Calls() []*Call { return m.calls }

// drawCalls renders call bubbles above the players who made them.
func (g *Game) drawCalls(screen *ebiten.Image) {
	const charW = 6
	const lineH = 14
	const padX = 5
	const padY = 3

	stacked := make(map[int]float32) // player ID -> top of the highest bubble so far
	for _, c := range g.match.Calls() {
		p := c.Player
		progress := float64(g.match.tick-c.Tick) / float64(callLifetime)
		alpha := float32(1.0)
		if progress > 0.70 {
			alpha = float32(1.0 - (progress-0.70)/0.30)
		}
		if alpha < 0.05 {
			continue
		}

		bgW := float32(len(c.Text)*charW + padX*2)
		bgH := float32(lineH + padY*2)
		sx, sy := g.toScreen(p.Position())
		top := sy - float32(p.Radius()*pixelsPerMetre)
		baseY := top - bgH - 4
		if prev, ok := stacked[p.ID]; ok && baseY+bgH > prev {
			baseY = prev - bgH - 2
		}
		stacked[p.ID] = baseY
		bgX := sx - bgW/2

		vector.FillRect(screen, bgX, baseY, bgW, bgH, color.RGBA{R: 20, G: 22, B: 20, A: uint8(210 * alpha)}, false)
		accent := kitOf(p.team.Color)
		accent.A = uint8(220 * alpha)
		vector.FillRect(screen, bgX, baseY, 3, bgH, accent, false)
		vector.StrokeRect(screen, bgX, baseY, bgW, bgH, 0.5,
			color.RGBA{R: 100, G: 100, B: 100, A: uint8(80 * alpha)}, false)
		ebitenutil.DebugPrintAt(screen, c.Text, int(bgX)+padX+1, int(baseY)+padY)
		vector.StrokeLine(screen, sx, baseY+bgH, sx, top,
			0.5, color.RGBA{R: 100, G: 100, B: 100, A: uint8(60 * alpha)}, false)
	}
}
