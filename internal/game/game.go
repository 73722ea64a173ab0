package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Soccer-Sense/internal/assets"
	"github.com/Garsondee/Soccer-Sense/internal/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
)

// borderWidth is the pixel gap between the window edge and the pitch.
const borderWidth = 24

// pixelsPerMetre scales pitch coordinates to screen pixels.
const pixelsPerMetre = 48

// hudScale is the integer upscale factor applied to the key legend.
const hudScale = 2

// toastTicks is how long a status message stays on screen (~2s at 60 TPS).
const toastTicks = 120

var (
	redKit    = color.RGBA{R: 210, G: 60, B: 60, A: 255}
	blueKit   = color.RGBA{R: 60, G: 100, B: 215, A: 255}
	lineWhite = color.RGBA{R: 235, G: 240, B: 235, A: 220}
	keeperTag = color.RGBA{R: 250, G: 220, B: 40, A: 255}
)

// TextureSource is what the renderer needs from the asset manager.
type TextureSource interface {
	Texture(key string) (*assets.Texture, bool)
}

// Game is the ebiten front end: it steps a Match and draws it.
type Game struct {
	width      int
	height     int
	gameWidth  int // pitch width in pixels (log panel takes the rest)
	gameHeight int
	offX       int
	offY       int

	cfg    config.Config
	logger *zap.Logger
	match  *Match

	pitchImage *ebiten.Image
	hudBuf     *ebiten.Image
	face       *text.GoXFace

	showRegions bool
	showHUD     bool
	prevKeys    map[ebiten.Key]bool

	// Player inspector (click-to-select panel).
	inspector     Inspector
	inspBuf       *ebiten.Image
	prevMouseLeft bool

	// Simulation speed control.
	paused    bool
	simSpeed  float64 // ticks per frame
	tickAccum float64

	toast      string
	toastUntil int
	frame      int
}

// New builds the renderer around a fresh match. The pitch texture is taken
// from textures when available; otherwise the pitch is drawn flat.
func New(cfg config.Config, textures TextureSource, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m, err := NewMatch(cfg, WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("start match: %w", err)
	}
	pitchW := int(cfg.Pitch.Width * pixelsPerMetre)
	pitchH := int(cfg.Pitch.Height * pixelsPerMetre)
	g := &Game{
		width:      borderWidth + pitchW + borderWidth + logPanelWidth,
		height:     borderWidth + pitchH + borderWidth,
		gameWidth:  pitchW,
		gameHeight: pitchH,
		offX:       borderWidth,
		offY:       borderWidth,
		cfg:        cfg,
		logger:     logger,
		match:      m,
		face:       text.NewGoXFace(basicfont.Face7x13),
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		simSpeed:   1,
	}
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	if textures != nil {
		if tex, ok := textures.Texture(assets.PitchTexture); ok && tex.Image != nil {
			g.pitchImage = ebiten.NewImageFromImage(assets.Resize(tex.Image, pitchW, pitchH))
		} else {
			logger.Warn("pitch texture missing, drawing flat pitch")
		}
	}
	return g, nil
}

// Match is the match being shown.
func (g *Game) Match() *Match { return g.match }

func (g *Game) Update() error {
	g.frame++
	g.handleInput()
	if g.paused {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.match.Update()
	}
	return nil
}

// justPressed is edge-triggered key detection against the previous frame.
func (g *Game) justPressed(k ebiten.Key, current map[ebiten.Key]bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

// handleInput processes keypresses (edge-triggered).
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	// R: region grid overlay.
	if g.justPressed(ebiten.KeyR, currentKeys) {
		g.showRegions = !g.showRegions
	}
	// H: key legend.
	if g.justPressed(ebiten.KeyH, currentKeys) {
		g.showHUD = !g.showHUD
	}
	// Space: pause / resume.
	if g.justPressed(ebiten.KeySpace, currentKeys) {
		g.paused = !g.paused
	}

	// 1-4: simulation speed.
	speedKeys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}
	speeds := []float64{1, 2, 4, 8}
	for i, k := range speedKeys {
		if g.justPressed(k, currentKeys) {
			g.simSpeed = speeds[i]
		}
	}

	// C: copy the selected player's debug report, or the match report.
	if g.justPressed(ebiten.KeyC, currentKeys) {
		report, what := BuildReport(g.match).Format(), "report"
		if sel := g.inspector.selected; sel != nil {
			report, what = PlayerDebugReport(g.match, sel, debugReportTicks), sel.Label+" report"
		}
		if err := setClipboardText(report); err != nil {
			g.logger.Warn("copy report", zap.Error(err))
			g.showToast("clipboard unavailable")
		} else {
			g.showToast(what + " copied")
		}
	}

	// Left mouse click: select a player.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	// I: inspector raw/curated view.
	if g.justPressed(ebiten.KeyI, currentKeys) {
		g.inspector.rawView = !g.inspector.rawView
	}

	g.prevKeys = currentKeys
}

func (g *Game) showToast(msg string) {
	g.toast = msg
	g.toastUntil = g.frame + toastTicks
}

// toScreen converts pitch coordinates to window pixels.
func (g *Game) toScreen(p Vec2) (float32, float32) {
	x := float64(g.offX) + (p.X+g.cfg.Pitch.Width/2)*pixelsPerMetre
	y := float64(g.offY) + (p.Y+g.cfg.Pitch.Height/2)*pixelsPerMetre
	return float32(x), float32(y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 20, B: 14, A: 255})

	g.drawPitch(screen)
	if g.showRegions {
		g.drawRegions(screen)
	}
	g.drawSupportSpots(screen)
	g.drawIntentLines(screen)
	g.drawPlayers(screen)
	g.drawCalls(screen)
	g.drawBall(screen)
	g.drawScoreboard(screen)
	g.drawInspector(screen)

	g.match.thoughts.Draw(screen, g.offX+g.gameWidth+borderWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawPitch(screen *ebiten.Image) {
	ox, oy := float32(g.offX), float32(g.offY)
	w, h := float32(g.gameWidth), float32(g.gameHeight)

	if g.pitchImage != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(ox), float64(oy))
		screen.DrawImage(g.pitchImage, op)
	} else {
		vector.FillRect(screen, ox, oy, w, h, color.RGBA{R: 40, G: 110, B: 45, A: 255}, false)
	}

	// Touch lines, halfway line and centre circle.
	vector.StrokeRect(screen, ox, oy, w, h, 2, lineWhite, false)
	vector.StrokeLine(screen, ox+w/2, oy, ox+w/2, oy+h, 2, lineWhite, false)
	cx, cy := g.toScreen(Vec2{})
	vector.StrokeCircle(screen, cx, cy, 1.5*pixelsPerMetre, 2, lineWhite, true)
	vector.FillCircle(screen, cx, cy, 3, lineWhite, true)

	// Goals sit behind the end lines.
	for _, goal := range []*Goal{g.match.pitch.BlueGoal, g.match.pitch.RedGoal} {
		x1, y1 := g.toScreen(goal.LeftPost)
		_, y2 := g.toScreen(goal.RightPost)
		depth := float32(0.45 * pixelsPerMetre)
		kit := blueKit
		if goal.Owner == ColorRed {
			kit = redKit
		}
		gx := x1 - depth
		if goal.Facing.X < 0 {
			gx = x1
		}
		vector.FillRect(screen, gx, y1, depth, y2-y1, color.RGBA{R: 230, G: 230, B: 230, A: 90}, false)
		vector.StrokeRect(screen, gx, y1, depth, y2-y1, 2, kit, false)
	}
}

func (g *Game) drawRegions(screen *ebiten.Image) {
	c := color.RGBA{R: 255, G: 255, B: 255, A: 70}
	for _, r := range g.match.pitch.Regions {
		x1, y1 := g.toScreen(Vec2{r.Left, r.Top})
		x2, y2 := g.toScreen(Vec2{r.Right, r.Bottom})
		vector.StrokeRect(screen, x1, y1, x2-x1, y2-y1, 1, c, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", r.ID), int(x1)+4, int(y1)+2)
	}
}

// drawSupportSpots shades the attacking team's support grid by score.
func (g *Game) drawSupportSpots(screen *ebiten.Image) {
	for _, t := range g.match.Teams() {
		if !t.InState(teamAttacking) {
			continue
		}
		best := t.SupportSpot()
		for _, s := range t.support.Spots() {
			x, y := g.toScreen(s.Pos)
			r := float32(1.5 + s.Score)
			vector.StrokeCircle(screen, x, y, r, 1, color.RGBA{R: 255, G: 255, B: 255, A: 60}, true)
		}
		x, y := g.toScreen(best)
		vector.StrokeCircle(screen, x, y, 6, 2, kitOf(t.Color), true)
	}
}

func kitOf(c TeamColor) color.RGBA {
	if c == ColorRed {
		return redKit
	}
	return blueKit
}

func (g *Game) drawPlayers(screen *ebiten.Image) {
	for _, p := range g.match.Players() {
		x, y := g.toScreen(p.Position())
		r := float32(p.Radius() * pixelsPerMetre)
		vector.FillCircle(screen, x, y, r, kitOf(p.team.Color), true)
		if p.IsGoalkeeper() {
			vector.StrokeCircle(screen, x, y, r, 2, keeperTag, true)
		}
		if p.IsControllingPlayer() {
			vector.StrokeCircle(screen, x, y, r+4, 1.5, lineWhite, true)
		}
		if p == g.inspector.selected {
			vector.StrokeCircle(screen, x, y, r+7, 2, color.RGBA{R: 255, G: 240, B: 60, A: 220}, true)
		}
		h := p.Heading()
		hx := x + float32(h.X)*r*1.6
		hy := y + float32(h.Y)*r*1.6
		vector.StrokeLine(screen, x, y, hx, hy, 2, color.Black, true)
		ebitenutil.DebugPrintAt(screen, p.Label, int(x)-7, int(y+r)+1)
	}
}

func (g *Game) drawBall(screen *ebiten.Image) {
	b := g.match.ball
	x, y := g.toScreen(b.Position())
	r := float32(math.Max(b.Radius()*pixelsPerMetre, 3))
	vector.FillCircle(screen, x, y, r, color.White, true)
	vector.StrokeCircle(screen, x, y, r, 1, color.Black, true)
}

// drawScoreboard prints the score and clock above the pitch.
func (g *Game) drawScoreboard(screen *ebiten.Image) {
	red, blue := g.match.Score()
	secs := int(float64(g.match.tick) * g.cfg.TickDuration())
	line := fmt.Sprintf("RED %d - %d BLUE   %02d:%02d", red, blue, secs/60, secs%60)
	if !g.match.pitch.IsPlaying {
		line += "   kick-off"
	}
	if g.paused {
		line += "   PAUSED"
	}
	if g.toast != "" && g.frame < g.toastUntil {
		line += "   " + g.toast
	}

	tw, _ := text.Measure(line, g.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(g.offX)+float64(g.gameWidth)/2-tw/2, 5)
	op.ColorScale.ScaleWithColor(lineWhite)
	text.Draw(screen, line, g.face, op)
}

// drawHUD renders keyboard shortcut hints in the bottom-left corner.
// Text is drawn into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	speedStr := fmt.Sprintf("%.0fx", g.simSpeed)
	if g.paused {
		speedStr = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  Space=pause  1-4=speed", speedStr),
		fmt.Sprintf("Red: %s  Blue: %s", g.match.red.StateName(), g.match.blue.StateName()),
		"[R] regions  [C] copy report  [H] hide",
		"click player to inspect  [I] raw view",
	}

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bufH := float32(g.height / hudScale)
	bx := float32(4)
	by := bufH - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the native window size in pixels.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
