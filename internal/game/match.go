package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Garsondee/Soccer-Sense/internal/config"
	"github.com/Garsondee/Soccer-Sense/internal/fsm"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KickKind classifies a kick for stats and logs.
type KickKind int

const (
	KickPass KickKind = iota
	KickShot
	KickDribble
	KickClearance
)

func (k KickKind) String() string {
	switch k {
	case KickPass:
		return "pass"
	case KickShot:
		return "shot"
	case KickDribble:
		return "dribble"
	case KickClearance:
		return "clearance"
	default:
		return "unknown"
	}
}

// EventSink observes match events. The metrics package implements it.
type EventSink interface {
	OnTick(tick int)
	OnKick(team TeamColor, kind KickKind)
	OnControlChange(team TeamColor)
	OnGoal(scorer TeamColor, red, blue int)
}

type nopSink struct{}

func (nopSink) OnTick(int) {}
func (nopSink) OnKick(TeamColor, KickKind) {}
func (nopSink) OnControlChange(TeamColor) {}
func (nopSink) OnGoal(TeamColor, int, int) {}

// MatchOption configures a Match at construction.
type MatchOption func(*Match)

// WithLogger sets the zap logger. The default discards everything.
func WithLogger(l *zap.Logger) MatchOption {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithEventSink attaches an observer for goals, kicks and control changes.
func WithEventSink(s EventSink) MatchOption {
	return func(m *Match) {
		if s != nil {
			m.sink = s
		}
	}
}

// WithVerboseLog records per-tick detail (telegrams, positions) in the SimLog.
func WithVerboseLog() MatchOption {
	return func(m *Match) { m.log = NewSimLog(true) }
}

// Match owns one game: the pitch, the ball, both teams and the clock.
// It is not safe for concurrent use; the host loop calls Update once per tick.
type Match struct {
	ID string

	cfg    config.Config
	logger *zap.Logger
	sink   EventSink

	world      *World
	pitch      *Pitch
	ball       *Ball
	red        *Team
	blue       *Team
	dispatcher *fsm.Dispatcher
	rng        *rand.Rand
	seed       int64
	tick       int

	log      *SimLog
	thoughts *ThoughtLog
	calls    []*Call

	lastKicker *Player
}

// NewMatch validates cfg and sets up a match ready for kick-off.
func NewMatch(cfg config.Config, opts ...MatchOption) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	seed := cfg.Match.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m := &Match{
		ID:         uuid.NewString(),
		cfg:        cfg,
		logger:     zap.NewNop(),
		sink:       nopSink{},
		world:      NewWorld(),
		pitch:      NewPitch(cfg.Pitch),
		dispatcher: fsm.NewDispatcher(),
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
		seed:       seed,
		log:        NewSimLog(false),
		thoughts:   NewThoughtLog(),
	}
	for _, o := range opts {
		o(m)
	}
	m.logger = m.logger.With(zap.String("match", m.ID))
	m.dispatcher.OnDeliver = m.onDeliver

	m.ball = NewBall(m.world, cfg.Ball)
	m.red = NewTeam(m, ColorRed)
	m.blue = NewTeam(m, ColorBlue)
	m.red.opposingTeam = m.blue
	m.blue.opposingTeam = m.red
	m.red.SetupTeamPositions()
	m.blue.SetupTeamPositions()

	m.red.sm.ChangeTo(teamPrepareForKickOff)
	m.blue.sm.ChangeTo(teamPrepareForKickOff)

	m.logger.Info("match created",
		zap.Int64("seed", seed),
		zap.Int("ticks_per_second", cfg.Match.TicksPerSecond),
		zap.Int("entities", m.world.Count()),
	)
	return m, nil
}

// Config returns the configuration the match was built with.
func (m *Match) Config() config.Config { return m.cfg }

// Seed is the RNG seed in use.
func (m *Match) Seed() int64 { return m.seed }

// Tick is the number of completed updates.
func (m *Match) Tick() int { return m.tick }

// Pitch returns the pitch.
func (m *Match) Pitch() *Pitch { return m.pitch }

// Ball returns the ball.
func (m *Match) Ball() *Ball { return m.ball }

// Red returns the red team.
func (m *Match) Red() *Team { return m.red }

// Blue returns the blue team.
func (m *Match) Blue() *Team { return m.blue }

// TeamOf returns the team playing in color.
func (m *Match) TeamOf(color TeamColor) *Team {
	if color == ColorRed {
		return m.red
	}
	return m.blue
}

// Teams returns both teams, red first.
func (m *Match) Teams() [2]*Team { return [2]*Team{m.red, m.blue} }

// Dispatcher exposes the telegram dispatcher.
func (m *Match) Dispatcher() *fsm.Dispatcher { return m.dispatcher }

// SimLog returns the structured event log.
func (m *Match) SimLog() *SimLog { return m.log }

// Thoughts returns the UI thought log.
func (m *Match) Thoughts() *ThoughtLog { return m.thoughts }

// Score returns the goals scored by red and blue.
func (m *Match) Score() (red, blue int) {
	return m.red.Stats.Goals, m.blue.Stats.Goals
}

// Players returns all ten players, red first.
func (m *Match) Players() []*Player {
	out := make([]*Player, 0, 2*teamSize)
	out = append(out, m.red.players...)
	return append(out, m.blue.players...)
}

// PlayerByLabel finds a player by label, or nil.
func (m *Match) PlayerByLabel(label string) *Player {
	for _, p := range m.Players() {
		if p.Label == label {
			return p
		}
	}
	return nil
}

// Update advances the match by one tick.
func (m *Match) Update() {
	m.tick++
	dt := m.cfg.TickDuration()

	m.ageCalls()
	m.dispatcher.DeliverDelayed(m.tick)
	m.ball.applyFriction(dt)

	m.red.Update()
	m.blue.Update()
	for _, p := range m.Players() {
		p.Update(dt)
	}

	m.world.Integrate(dt)
	for _, p := range m.Players() {
		t := m.world.Transform(p.entity)
		t.Position = m.pitch.ClampInside(t.Position, p.Radius())
	}

	if !m.checkGoal() {
		m.ball.resolveBoundaries(m.pitch)
	}

	for _, t := range m.Teams() {
		if t.InControl() {
			t.Stats.PossessionTicks++
		}
	}
	if m.log.verbose {
		bp := m.ball.Position()
		m.log.AddVerbose(m.tick, "--", "--", "ball", "position", fmt.Sprintf("(%.2f, %.2f)", bp.X, bp.Y), m.ball.Velocity().Length())
	}
	m.sink.OnTick(m.tick)
}

// checkGoal scores a ball that crossed a goal line this tick and resets for
// the kick-off.
func (m *Match) checkGoal() bool {
	prev, cur := m.ball.PrevPosition(), m.ball.Position()
	for _, goal := range []*Goal{m.pitch.BlueGoal, m.pitch.RedGoal} {
		if !goal.Scored(prev, cur) {
			continue
		}
		scorer := m.red
		if goal.Owner == ColorRed {
			scorer = m.blue
		}
		scorer.Stats.Goals++

		label := "--"
		if k := m.lastKicker; k != nil && k.team == scorer {
			k.Stats.Goals++
			label = k.Label
			m.calls = append(m.calls, &Call{Player: k, Text: "GOAL!", Tick: m.tick})
		}
		red, blue := m.Score()
		m.log.Add(m.tick, label, scorer.Color.String(), "goal", "scored",
			fmt.Sprintf("red %d - %d blue", red, blue), float64(scorer.Stats.Goals))
		m.logger.Info("goal",
			zap.Stringer("scorer", scorer.Color),
			zap.String("player", label),
			zap.Int("red", red),
			zap.Int("blue", blue),
			zap.Int("tick", m.tick),
		)
		m.sink.OnGoal(scorer.Color, red, blue)
		m.resetForKickOff()
		return true
	}
	return false
}

func (m *Match) resetForKickOff() {
	m.pitch.IsPlaying = false
	m.pitch.GoalkeeperHasBall = false
	m.ball.PlaceAt(m.pitch.Center())
	m.dispatcher.Clear()
	m.lastKicker = nil
	m.red.sm.ChangeTo(teamPrepareForKickOff)
	m.blue.sm.ChangeTo(teamPrepareForKickOff)
}

// sendMessage delivers msg to to immediately. A nil receiver is ignored.
func (m *Match) sendMessage(from, to *Player, msg fsm.Message, data any) {
	if to == nil {
		return
	}
	var sender fsm.Receiver
	if from != nil {
		sender = from
	}
	m.dispatcher.Dispatch(m.tick, sender, to, msg, 0, data)
}

func (m *Match) onDeliver(t fsm.Telegram, handled bool) {
	if from, ok := t.Sender.(*Player); ok {
		m.shout(from, callText(t))
	}
	if !m.log.verbose {
		return
	}
	to, _ := t.Receiver.(*Player)
	from := "--"
	if p, ok := t.Sender.(*Player); ok {
		from = p.Label
	}
	label, team := "--", "--"
	if to != nil {
		label, team = to.Label, to.team.Color.String()
	}
	m.log.AddVerbose(m.tick, label, team, "msg", string(t.Message),
		fmt.Sprintf("from %s handled=%t", from, handled), 0)
}

func (m *Match) recordKick(p *Player, kind KickKind, target Vec2, force float64) {
	t := p.team
	switch kind {
	case KickPass:
		t.Stats.Passes++
		p.Stats.Passes++
	case KickShot:
		t.Stats.Shots++
		p.Stats.Shots++
	case KickClearance:
		t.Stats.Clearances++
	}
	m.lastKicker = p
	if kind == KickDribble {
		m.log.AddVerbose(m.tick, p.Label, t.Color.String(), "kick", kind.String(),
			fmt.Sprintf("toward (%.1f, %.1f)", target.X, target.Y), force)
	} else {
		m.log.Add(m.tick, p.Label, t.Color.String(), "kick", kind.String(),
			fmt.Sprintf("toward (%.1f, %.1f)", target.X, target.Y), force)
	}
	m.logger.Debug("kick",
		zap.String("player", p.Label),
		zap.Stringer("kind", kind),
		zap.Float64("force", force),
	)
	m.sink.OnKick(t.Color, kind)
}

func (m *Match) controlChanged(t *Team, p *Player) {
	m.log.Add(m.tick, p.Label, t.Color.String(), "control", "gained", p.role.String(), 0)
	m.logger.Debug("control change", zap.Stringer("team", t.Color), zap.String("player", p.Label))
	m.sink.OnControlChange(t.Color)
}
