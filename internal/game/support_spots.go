package game

import "math"

// SupportSpot is a candidate position for the supporting attacker.
type SupportSpot struct {
	Pos   Vec2
	Score float64
}

// SupportSpotCalculator scores a grid of positions in the opponents' half
// and remembers the best one. Rescoring is rate limited.
type SupportSpotCalculator struct {
	team      *Team
	spots     []SupportSpot
	best      *SupportSpot
	regulator *Regulator
}

// NewSupportSpotCalculator lays out the spot grid for t's attacking half.
func NewSupportSpotCalculator(t *Team) *SupportSpotCalculator {
	cfg := t.match.cfg
	pitch := t.pitch
	width := pitch.Width * 0.6
	height := pitch.Height * 0.8
	sliceX := width / float64(cfg.Support.SliceX)
	sliceY := height / float64(cfg.Support.SliceY)
	left := -width/2 + sliceX/2
	top := -height/2 + sliceY/2

	// Red attacks -X, blue attacks +X.
	sign := 1.0
	if t.Color == ColorRed {
		sign = -1.0
	}

	c := &SupportSpotCalculator{
		team:      t,
		regulator: NewRegulator(cfg.Support.UpdatesPerSecond, cfg.Match.TicksPerSecond),
	}
	for x := 0; x < cfg.Support.SliceX/2-1; x++ {
		for y := 0; y < cfg.Support.SliceY; y++ {
			c.spots = append(c.spots, SupportSpot{
				Pos: Vec2{X: -sign * (left + float64(x)*sliceX), Y: top + float64(y)*sliceY},
			})
		}
	}
	return c
}

// Spots returns the grid with its last scores.
func (c *SupportSpotCalculator) Spots() []SupportSpot { return c.spots }

// DetermineBestSupportingPosition rescores every spot against the current
// controlling player and returns the winner. Between rescoring windows it
// returns the previous winner.
func (c *SupportSpotCalculator) DetermineBestSupportingPosition() Vec2 {
	t := c.team
	if !c.regulator.Ready(t.match.tick) && c.best != nil {
		return c.best.Pos
	}
	ctrl := t.controllingPlayer
	if ctrl == nil {
		return c.BestSpot()
	}

	cfg := t.match.cfg
	c.best = nil
	bestScore := 0.0
	for i := range c.spots {
		spot := &c.spots[i]
		spot.Score = 1

		if t.IsPassSafeFromAllOpponents(ctrl.Position(), spot.Pos, nil, cfg.Player.MaxPassingForce) {
			spot.Score += cfg.Support.ScoreCanPass
		}
		if _, ok := t.CanShoot(spot.Pos, cfg.Player.MaxShootingForce); ok {
			spot.Score += cfg.Support.ScoreCanScore
		}
		if t.supportingPlayer != nil {
			optimal := cfg.Support.OptimalDistance
			dist := ctrl.Position().Distance(spot.Pos)
			if off := math.Abs(optimal - dist); off < optimal {
				spot.Score += cfg.Support.ScoreDistance * (optimal - off) / optimal
			}
		}

		if spot.Score > bestScore {
			bestScore = spot.Score
			c.best = spot
		}
	}
	if c.best == nil {
		return c.team.pitch.Center()
	}
	return c.best.Pos
}

// BestSpot is the last winning spot, computing one if none exists yet.
func (c *SupportSpotCalculator) BestSpot() Vec2 {
	if c.best != nil {
		return c.best.Pos
	}
	if c.team.controllingPlayer != nil {
		return c.DetermineBestSupportingPosition()
	}
	// No evaluation possible yet: the middle of the grid.
	if len(c.spots) == 0 {
		return c.team.pitch.Center()
	}
	return c.spots[len(c.spots)/2].Pos
}
