package game

import (
	"github.com/Garsondee/Soccer-Sense/internal/config"
	"go.uber.org/zap"
)

// TestMatch is a headless match harness used by tests and the batch
// reporter. It wraps Match with deterministic seeding and scenario setup.
type TestMatch struct {
	*Match

	cfg     config.Config
	verbose bool
	logger  *zap.Logger
	sink    EventSink
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // config, seed, verbose: applied before the match exists
	simOptSetup                       // ball and player placement: applied after construction
)

// SimOption is a builder function applied to a TestMatch during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestMatch)
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg config.Config) SimOption {
	return SimOption{simOptConfig, func(tm *TestMatch) {
		tm.cfg = cfg
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(tm *TestMatch) {
		tm.cfg.Match.Seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptConfig, func(tm *TestMatch) {
		tm.verbose = v
	}}
}

// WithSimLogger routes the match's zap output to l.
func WithSimLogger(l *zap.Logger) SimOption {
	return SimOption{simOptConfig, func(tm *TestMatch) {
		tm.logger = l
	}}
}

// WithSink attaches an event sink.
func WithSink(s EventSink) SimOption {
	return SimOption{simOptConfig, func(tm *TestMatch) {
		tm.sink = s
	}}
}

// WithBallAt places the ball at (x, y) at rest.
func WithBallAt(x, y float64) SimOption {
	return SimOption{simOptSetup, func(tm *TestMatch) {
		tm.ball.PlaceAt(Vec2{x, y})
	}}
}

// WithBallVelocity sets the ball moving.
func WithBallVelocity(vx, vy float64) SimOption {
	return SimOption{simOptSetup, func(tm *TestMatch) {
		tm.world.Motion(tm.ball.entity).Velocity = Vec2{vx, vy}
	}}
}

// WithPlayerAt teleports the player with label (e.g. "R2") to (x, y).
func WithPlayerAt(label string, x, y float64) SimOption {
	return SimOption{simOptSetup, func(tm *TestMatch) {
		if p := tm.PlayerByLabel(label); p != nil {
			p.PlaceAt(Vec2{x, y})
		}
	}}
}

// WithKickOffDone skips the walk home: play is live from the first tick and
// both teams start out defending.
func WithKickOffDone() SimOption {
	return SimOption{simOptSetup, func(tm *TestMatch) {
		tm.pitch.IsPlaying = true
		for _, t := range tm.Teams() {
			t.sm.ChangeTo(teamDefending)
		}
	}}
}

// NewTestMatch constructs a TestMatch from the given options in two ordered
// passes: configuration first, then placement on the built match. It panics
// on an invalid configuration.
func NewTestMatch(opts ...SimOption) *TestMatch {
	cfg := config.Default()
	cfg.Match.Seed = 1
	tm := &TestMatch{cfg: cfg, logger: zap.NewNop()}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(tm)
		}
	}

	matchOpts := []MatchOption{WithLogger(tm.logger), WithEventSink(tm.sink)}
	if tm.verbose {
		matchOpts = append(matchOpts, WithVerboseLog())
	}
	m, err := NewMatch(tm.cfg, matchOpts...)
	if err != nil {
		panic(err)
	}
	tm.Match = m

	for _, o := range opts {
		if o.kind == simOptSetup {
			o.fn(tm)
		}
	}
	return tm
}

// RunTicks advances the match n ticks.
func (tm *TestMatch) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tm.Update()
	}
}

// RunUntil advances the match up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (tm *TestMatch) RunUntil(predicate func(*TestMatch) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tm.Update()
		if predicate(tm) {
			return tm.tick
		}
	}
	return -1
}

// ControllingPlayers counts controlling players across both teams.
func (tm *TestMatch) ControllingPlayers() int {
	n := 0
	for _, t := range tm.Teams() {
		if t.InControl() {
			n++
		}
	}
	return n
}
