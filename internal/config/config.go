package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every environment override, e.g. SOCCER_MATCH_SEED.
const envPrefix = "SOCCER_"

// Config is the full tunable surface of a match. Distances are metres, speeds
// metres per second, forces are impulses divided by ball mass on kick.
type Config struct {
	Match      Match      `yaml:"match" envPrefix:"MATCH_"`
	Pitch      Pitch      `yaml:"pitch" envPrefix:"PITCH_"`
	Ball       Ball       `yaml:"ball" envPrefix:"BALL_"`
	Player     Player     `yaml:"player" envPrefix:"PLAYER_"`
	Goalkeeper Goalkeeper `yaml:"goalkeeper" envPrefix:"GOALKEEPER_"`
	Support    Support    `yaml:"support" envPrefix:"SUPPORT_"`
	Log        Log        `yaml:"log" envPrefix:"LOG_"`
	Assets     Assets     `yaml:"assets" envPrefix:"ASSETS_"`
	Spectator  Spectator  `yaml:"spectator" envPrefix:"SPECTATOR_"`
}

// Match controls the simulation clock.
type Match struct {
	TicksPerSecond int   `yaml:"ticks_per_second" env:"TICKS_PER_SECOND"`
	Seed           int64 `yaml:"seed" env:"SEED"` // 0 = seed from the wall clock
}

// Pitch describes the playing area and its region grid.
type Pitch struct {
	Width      float64 `yaml:"width" env:"WIDTH"`
	Height     float64 `yaml:"height" env:"HEIGHT"`
	RegionCols int     `yaml:"region_cols" env:"REGION_COLS"`
	RegionRows int     `yaml:"region_rows" env:"REGION_ROWS"`
	GoalWidth  float64 `yaml:"goal_width" env:"GOAL_WIDTH"`
}

// Ball holds the ball's kinematic constants.
type Ball struct {
	Mass     float64 `yaml:"mass" env:"MASS"`
	Friction float64 `yaml:"friction" env:"FRICTION"` // deceleration, must be negative
	Radius   float64 `yaml:"radius" env:"RADIUS"`
}

// Player holds the field player tuning.
type Player struct {
	Radius                 float64 `yaml:"radius" env:"RADIUS"`
	MaxSpeedWithBall       float64 `yaml:"max_speed_with_ball" env:"MAX_SPEED_WITH_BALL"`
	MaxSpeedWithoutBall    float64 `yaml:"max_speed_without_ball" env:"MAX_SPEED_WITHOUT_BALL"`
	MaxForce               float64 `yaml:"max_force" env:"MAX_FORCE"`
	ComfortZone            float64 `yaml:"comfort_zone" env:"COMFORT_ZONE"`
	InTargetRange          float64 `yaml:"in_target_range" env:"IN_TARGET_RANGE"`
	KickFrequency          float64 `yaml:"kick_frequency" env:"KICK_FREQUENCY"` // kicks per second
	KickingRange           float64 `yaml:"kicking_range" env:"KICKING_RANGE"`
	KickingAccuracy        float64 `yaml:"kicking_accuracy" env:"KICKING_ACCURACY"`
	ReceivingRange         float64 `yaml:"receiving_range" env:"RECEIVING_RANGE"`
	MaxDribbleForce        float64 `yaml:"max_dribble_force" env:"MAX_DRIBBLE_FORCE"`
	MaxDribbleAndTurnForce float64 `yaml:"max_dribble_and_turn_force" env:"MAX_DRIBBLE_AND_TURN_FORCE"`
	MaxPassingForce        float64 `yaml:"max_passing_force" env:"MAX_PASSING_FORCE"`
	MaxShootingForce       float64 `yaml:"max_shooting_force" env:"MAX_SHOOTING_FORCE"`
	MinPassDistance        float64 `yaml:"min_pass_distance" env:"MIN_PASS_DISTANCE"`
	StrikeAttempts         int     `yaml:"strike_attempts" env:"STRIKE_ATTEMPTS"`
	PassInterceptScale     float64 `yaml:"pass_intercept_scale" env:"PASS_INTERCEPT_SCALE"`
	PassRequestSuccess     float64 `yaml:"pass_request_success" env:"PASS_REQUEST_SUCCESS"`
	PassThreatRadius       float64 `yaml:"pass_threat_radius" env:"PASS_THREAT_RADIUS"`
	ChancePotShot          float64 `yaml:"chance_pot_shot" env:"CHANCE_POT_SHOT"`
	ChanceArriveReceive    float64 `yaml:"chance_arrive_receive" env:"CHANCE_ARRIVE_RECEIVE"`
}

// Goalkeeper holds keeper-only tuning.
type Goalkeeper struct {
	InTargetRange   float64 `yaml:"in_target_range" env:"IN_TARGET_RANGE"`
	InterceptRange  float64 `yaml:"intercept_range" env:"INTERCEPT_RANGE"`
	MinPassDistance float64 `yaml:"min_pass_distance" env:"MIN_PASS_DISTANCE"`
	TendingDistance float64 `yaml:"tending_distance" env:"TENDING_DISTANCE"`
	BallRange       float64 `yaml:"ball_range" env:"BALL_RANGE"`
}

// Support tunes the supporting-spot calculator.
type Support struct {
	SliceX           int     `yaml:"slice_x" env:"SLICE_X"`
	SliceY           int     `yaml:"slice_y" env:"SLICE_Y"`
	ScoreCanPass     float64 `yaml:"score_can_pass" env:"SCORE_CAN_PASS"`
	ScoreCanScore    float64 `yaml:"score_can_score" env:"SCORE_CAN_SCORE"`
	ScoreDistance    float64 `yaml:"score_distance" env:"SCORE_DISTANCE"`
	OptimalDistance  float64 `yaml:"optimal_distance" env:"OPTIMAL_DISTANCE"`
	UpdatesPerSecond float64 `yaml:"updates_per_second" env:"UPDATES_PER_SECOND"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
	Format      string `yaml:"format" env:"FORMAT"` // "console" or "json"
}

// Assets points the asset manager at an override directory.
type Assets struct {
	Dir string `yaml:"dir" env:"DIR"` // empty = embedded textures
}

// Spectator configures the read-only HTTP server.
type Spectator struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// Default returns the tuned defaults.
func Default() Config {
	return Config{
		Match: Match{
			TicksPerSecond: 60,
		},
		Pitch: Pitch{
			Width:      20,
			Height:     15,
			RegionCols: 6,
			RegionRows: 3,
			GoalWidth:  3,
		},
		Ball: Ball{
			Mass:     0.44,
			Friction: -0.8,
			Radius:   0.1,
		},
		Player: Player{
			Radius:                 0.3,
			MaxSpeedWithBall:       1.2,
			MaxSpeedWithoutBall:    1.6,
			MaxForce:               6,
			ComfortZone:            2.5,
			InTargetRange:          0.25,
			KickFrequency:          1,
			KickingRange:           0.4,
			KickingAccuracy:        0.99,
			ReceivingRange:         1,
			MaxDribbleForce:        0.6,
			MaxDribbleAndTurnForce: 0.4,
			MaxPassingForce:        3,
			MaxShootingForce:       4,
			MinPassDistance:        5,
			StrikeAttempts:         5,
			PassInterceptScale:     0.3,
			PassRequestSuccess:     0.1,
			PassThreatRadius:       3,
			ChancePotShot:          0.005,
			ChanceArriveReceive:    0.5,
		},
		Goalkeeper: Goalkeeper{
			InTargetRange:   0.5,
			InterceptRange:  4,
			MinPassDistance: 5,
			TendingDistance: 2,
			BallRange:       0.5,
		},
		Support: Support{
			SliceX:           12,
			SliceY:           5,
			ScoreCanPass:     2,
			ScoreCanScore:    1,
			ScoreDistance:    2,
			OptimalDistance:  5,
			UpdatesPerSecond: 1,
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Spectator: Spectator{
			Addr: ":8080",
		},
	}
}

// Load builds a Config from defaults, the optional YAML file at path, and
// SOCCER_* environment overrides, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, v))
		}
	}

	if c.Match.TicksPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("match.ticks_per_second must be > 0, got %d", c.Match.TicksPerSecond))
	}
	positive("pitch.width", c.Pitch.Width)
	positive("pitch.height", c.Pitch.Height)
	positive("pitch.goal_width", c.Pitch.GoalWidth)
	if c.Pitch.GoalWidth >= c.Pitch.Height {
		errs = append(errs, fmt.Errorf("pitch.goal_width %v must be narrower than pitch.height %v", c.Pitch.GoalWidth, c.Pitch.Height))
	}
	if c.Pitch.RegionCols <= 0 || c.Pitch.RegionRows <= 0 {
		errs = append(errs, fmt.Errorf("pitch region grid must be positive, got %dx%d", c.Pitch.RegionCols, c.Pitch.RegionRows))
	} else if c.Pitch.RegionCols*c.Pitch.RegionRows < 18 {
		// The fixed home-region tables reference IDs up to 16.
		errs = append(errs, fmt.Errorf("pitch region grid %dx%d has fewer than 18 regions", c.Pitch.RegionCols, c.Pitch.RegionRows))
	}

	positive("ball.mass", c.Ball.Mass)
	positive("ball.radius", c.Ball.Radius)
	if c.Ball.Friction >= 0 {
		errs = append(errs, fmt.Errorf("ball.friction must be < 0, got %v", c.Ball.Friction))
	}

	p := c.Player
	positive("player.radius", p.Radius)
	positive("player.max_speed_with_ball", p.MaxSpeedWithBall)
	positive("player.max_speed_without_ball", p.MaxSpeedWithoutBall)
	positive("player.max_force", p.MaxForce)
	positive("player.kick_frequency", p.KickFrequency)
	positive("player.kicking_range", p.KickingRange)
	positive("player.receiving_range", p.ReceivingRange)
	positive("player.max_passing_force", p.MaxPassingForce)
	positive("player.max_shooting_force", p.MaxShootingForce)
	if p.MaxSpeedWithBall > p.MaxSpeedWithoutBall {
		errs = append(errs, fmt.Errorf("player.max_speed_with_ball %v exceeds max_speed_without_ball %v", p.MaxSpeedWithBall, p.MaxSpeedWithoutBall))
	}
	if p.StrikeAttempts <= 0 {
		errs = append(errs, fmt.Errorf("player.strike_attempts must be > 0, got %d", p.StrikeAttempts))
	}
	probability("player.kicking_accuracy", p.KickingAccuracy)
	probability("player.pass_request_success", p.PassRequestSuccess)
	probability("player.chance_pot_shot", p.ChancePotShot)
	probability("player.chance_arrive_receive", p.ChanceArriveReceive)

	positive("goalkeeper.intercept_range", c.Goalkeeper.InterceptRange)
	positive("goalkeeper.tending_distance", c.Goalkeeper.TendingDistance)
	positive("goalkeeper.ball_range", c.Goalkeeper.BallRange)

	// At least one column of spots per half.
	if c.Support.SliceX < 4 || c.Support.SliceY <= 0 {
		errs = append(errs, fmt.Errorf("support grid needs at least 4x1 slices, got %dx%d", c.Support.SliceX, c.Support.SliceY))
	}
	positive("support.updates_per_second", c.Support.UpdatesPerSecond)

	return errors.Join(errs...)
}

// TickDuration is the simulated seconds per tick.
func (c Config) TickDuration() float64 {
	return 1.0 / float64(c.Match.TicksPerSecond)
}
