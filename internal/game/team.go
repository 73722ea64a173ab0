package game

import (
	"fmt"
	"math"

	"github.com/Garsondee/Soccer-Sense/internal/fsm"
	"go.uber.org/zap"
)

// TeamColor identifies a side.
type TeamColor int

const (
	ColorRed TeamColor = iota
	ColorBlue
)

func (c TeamColor) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// Region layouts by roster index: goalkeeper, attacker, attacker, defender, defender.
var (
	blueDefendingRegions = [teamSize]int{1, 6, 8, 3, 5}
	redDefendingRegions  = [teamSize]int{16, 9, 11, 12, 14}
	blueAttackingRegions = [teamSize]int{1, 12, 14, 6, 4}
	redAttackingRegions  = [teamSize]int{16, 3, 5, 9, 13}
)

const teamSize = 5

// TeamStats counts what a team did over a match.
type TeamStats struct {
	Goals           int
	Shots           int
	Passes          int
	Clearances      int
	ControlChanges  int
	PossessionTicks int
}

// Team is one side: five players, the shared coordination pointers and the
// team-level state machine that picks formations.
type Team struct {
	Color TeamColor

	match        *Match
	ball         *Ball
	pitch        *Pitch
	homeGoal     *Goal
	opposingGoal *Goal
	opposingTeam *Team

	players []*Player

	controllingPlayer   *Player
	receivingPlayer     *Player
	supportingPlayer    *Player
	playerClosestToBall *Player
	closestDistSq       float64

	sm      *fsm.StateMachine[*Team]
	support *SupportSpotCalculator
	logger  *zap.Logger

	Stats TeamStats
}

// NewTeam builds a team with its roster in fixed order: one goalkeeper, two
// attackers, two defenders. The opposing team is wired by the match.
func NewTeam(m *Match, color TeamColor) *Team {
	t := &Team{
		Color:  color,
		match:  m,
		ball:   m.ball,
		pitch:  m.pitch,
		logger: m.logger.With(zap.Stringer("team", color)),
	}
	if color == ColorRed {
		t.homeGoal, t.opposingGoal = m.pitch.RedGoal, m.pitch.BlueGoal
	} else {
		t.homeGoal, t.opposingGoal = m.pitch.BlueGoal, m.pitch.RedGoal
	}
	t.sm = fsm.New(t)
	t.sm.OnChange = func(from, to fsm.State[*Team]) {
		fromName := "none"
		if from != nil {
			fromName = from.Name()
		}
		m.log.Add(m.tick, "--", color.String(), "team", "state", fromName+" → "+to.Name(), 0)
		t.logger.Debug("team state", zap.String("from", fromName), zap.String("to", to.Name()))
	}
	t.support = NewSupportSpotCalculator(t)
	t.createPlayers()
	return t
}

func (t *Team) createPlayers() {
	// Players face the opponents' goal.
	heading := t.homeGoal.Facing
	prefix := "B"
	if t.Color == ColorRed {
		prefix = "R"
	}
	roles := [teamSize]Role{RoleGoalkeeper, RoleAttacker, RoleAttacker, RoleDefender, RoleDefender}
	for i, role := range roles {
		id := int(t.Color)*teamSize + i
		t.players = append(t.players, newPlayer(id, fmt.Sprintf("%s%d", prefix, i), role, t, heading))
	}
}

// Players returns the roster in creation order.
func (t *Team) Players() []*Player { return t.players }

// Goalkeeper returns the team's keeper.
func (t *Team) Goalkeeper() *Player { return t.players[0] }

// OpposingTeam is the other side.
func (t *Team) OpposingTeam() *Team { return t.opposingTeam }

// HomeGoal is the goal this team defends.
func (t *Team) HomeGoal() *Goal { return t.homeGoal }

// OpposingGoal is the goal this team attacks.
func (t *Team) OpposingGoal() *Goal { return t.opposingGoal }

// ControllingPlayer is the player in control of the ball, or nil.
func (t *Team) ControllingPlayer() *Player { return t.controllingPlayer }

// ReceivingPlayer is the player a pass is aimed at, or nil.
func (t *Team) ReceivingPlayer() *Player { return t.receivingPlayer }

// SupportingPlayer is the attacker moving to support, or nil.
func (t *Team) SupportingPlayer() *Player { return t.supportingPlayer }

// PlayerClosestToBall is the result of the last closest-player scan.
func (t *Team) PlayerClosestToBall() *Player { return t.playerClosestToBall }

// StateName is the team state machine's current state.
func (t *Team) StateName() string { return t.sm.CurrentName() }

// InState reports whether the team state machine is in s.
func (t *Team) InState(s fsm.State[*Team]) bool { return t.sm.InState(s) }

// GoalsScored is the number of goals this team has scored.
func (t *Team) GoalsScored() int { return t.Stats.Goals }

// Update finds the player closest to the ball, then runs the team state machine.
func (t *Team) Update() {
	t.computePlayerClosestToBall()
	t.sm.Update()
}

func (t *Team) computePlayerClosestToBall() {
	ballPos := t.ball.Position()
	closest := math.Inf(1)
	for _, p := range t.players {
		d := p.Position().DistanceSq(ballPos)
		if d < closest {
			closest = d
			t.playerClosestToBall = p
		}
	}
	t.closestDistSq = closest
}

// InControl reports whether one of this team's players controls the ball.
func (t *Team) InControl() bool { return t.controllingPlayer != nil }

// AreAllPlayersAtHome reports whether every player is inside its home region.
func (t *Team) AreAllPlayersAtHome() bool {
	for _, p := range t.players {
		if !p.IsInHomeRegion() {
			return false
		}
	}
	return true
}

// IsOpponentWithinRadius reports whether any opponent is within radius of p.
func (t *Team) IsOpponentWithinRadius(p *Player, radius float64) bool {
	r2 := radius * radius
	for _, opp := range t.opposingTeam.players {
		if opp.Position().DistanceSq(p.Position()) <= r2 {
			return true
		}
	}
	return false
}

// LostControl clears the controlling, receiving and supporting players.
func (t *Team) LostControl() {
	t.controllingPlayer = nil
	t.receivingPlayer = nil
	t.supportingPlayer = nil
}

// SetControl hands the ball to p; the opposing team loses control.
func (t *Team) SetControl(p *Player) {
	if t.controllingPlayer != p {
		t.Stats.ControlChanges++
		p.Stats.ControlGains++
		t.match.controlChanged(t, p)
	}
	t.controllingPlayer = p
	t.opposingTeam.LostControl()
}

// SetupTeamPositions assigns each player its defending home region and
// places it on the region centre.
func (t *Team) SetupTeamPositions() {
	regions := blueDefendingRegions
	if t.Color == ColorRed {
		regions = redDefendingRegions
	}
	for i, p := range t.players {
		region, ok := t.pitch.RegionByID(regions[i])
		if !ok {
			t.logger.Warn("unknown home region", zap.String("player", p.Label), zap.Int("region", regions[i]))
			continue
		}
		p.homeRegion = region.ID
		p.defaultRegion = region.ID
		p.PlaceAt(region.Center())
	}
}

func (t *Team) changeHomeRegions(regions [teamSize]int) {
	for i, p := range t.players {
		p.SetHomeRegion(regions[i])
	}
}

func (t *Team) defendingRegions() [teamSize]int {
	if t.Color == ColorRed {
		return redDefendingRegions
	}
	return blueDefendingRegions
}

func (t *Team) attackingRegions() [teamSize]int {
	if t.Color == ColorRed {
		return redAttackingRegions
	}
	return blueAttackingRegions
}

// UpdateSteeringTargetOfPlayers points idle field players at their home
// region after the layout changes.
func (t *Team) UpdateSteeringTargetOfPlayers() {
	for _, p := range t.players {
		if p.IsGoalkeeper() {
			continue
		}
		if p.InState(fieldWait) || p.InState(fieldReturnHome) {
			if region, ok := t.pitch.RegionByID(p.homeRegion); ok {
				p.steering.Target = region.Center()
			}
		}
	}
}

// ReturnAllFieldPlayersToHome sends GO_HOME to every field player.
func (t *Team) ReturnAllFieldPlayersToHome() {
	for _, p := range t.players {
		if p.IsGoalkeeper() {
			continue
		}
		t.match.sendMessage(nil, p, MsgGoHome, nil)
	}
}

// RequestPass asks the controlling player for the ball on behalf of
// requester. Requests are rationed and only made when the pass is safe.
func (t *Team) RequestPass(requester *Player) {
	cfg := t.match.cfg.Player
	if t.match.rng.Float64() > cfg.PassRequestSuccess {
		return
	}
	ctrl := t.controllingPlayer
	if ctrl == nil || ctrl == requester {
		return
	}
	if t.IsPassSafeFromAllOpponents(ctrl.Position(), requester.Position(), requester, cfg.MaxPassingForce) {
		t.match.sendMessage(requester, ctrl, MsgPassToMe, requester)
	}
}

// IsPassSafeFromOpponent reports whether opp cannot intercept a ball kicked
// with force from from toward target. receiver may be nil.
func (t *Team) IsPassSafeFromOpponent(from, target Vec2, receiver, opp *Player, force float64) bool {
	toTarget := target.Sub(from).Normalize()
	local := ToLocal(opp.Position(), toTarget, from)

	// Behind the kicker.
	if local.X < 0 {
		return true
	}

	// Further from the kicker than the target: safe unless the opponent is
	// nearer the target than the receiver.
	if from.DistanceSq(target) < opp.Position().DistanceSq(from) {
		if receiver == nil {
			return true
		}
		return target.DistanceSq(opp.Position()) > target.DistanceSq(receiver.Position())
	}

	time := t.ball.TimeToCoverDistance(Vec2{}, Vec2{X: local.X}, force)
	if time < 0 {
		return true
	}
	reach := opp.MaxSpeed()*time + t.ball.Radius() + opp.Radius()
	return math.Abs(local.Y) >= reach
}

// IsPassSafeFromAllOpponents checks IsPassSafeFromOpponent against every opponent.
func (t *Team) IsPassSafeFromAllOpponents(from, target Vec2, receiver *Player, force float64) bool {
	for _, opp := range t.opposingTeam.players {
		if !t.IsPassSafeFromOpponent(from, target, receiver, opp, force) {
			return false
		}
	}
	return true
}

// CanShoot samples random points in the opposing goal mouth and returns the
// first one a ball kicked from with power can reach unintercepted.
func (t *Team) CanShoot(from Vec2, power float64) (Vec2, bool) {
	goal := t.opposingGoal
	rng := t.match.rng
	half := goal.Width/2 - t.ball.Radius()
	for i := 0; i < t.match.cfg.Player.StrikeAttempts; i++ {
		target := goal.Center
		target.Y = goal.Center.Y - half + rng.Float64()*2*half
		if t.ball.TimeToCoverDistance(from, target, power) < 0 {
			continue
		}
		if t.IsPassSafeFromAllOpponents(from, target, nil, power) {
			return target, true
		}
	}
	return Vec2{}, false
}

// FindPass picks the teammate at least minPassDistance away whose best pass
// target is nearest the opponents' goal line.
func (t *Team) FindPass(passer *Player, power, minPassDistance float64) (*Player, Vec2, bool) {
	var (
		best     *Player
		bestPos  Vec2
		bestDist = math.Inf(1)
	)
	goalX := t.opposingGoal.Center.X
	for _, r := range t.players {
		if r == passer || passer.Position().DistanceSq(r.Position()) < minPassDistance*minPassDistance {
			continue
		}
		target, ok := t.GetBestPassToReceiver(passer, r, power)
		if !ok {
			continue
		}
		if d := math.Abs(target.X - goalX); d < bestDist {
			best, bestPos, bestDist = r, target, d
		}
	}
	return best, bestPos, best != nil
}

// GetBestPassToReceiver considers passing to the receiver's feet and to the
// two points where the receiver could intercept the ball, keeping the safe
// candidate nearest the opponents' goal line.
func (t *Team) GetBestPassToReceiver(passer, receiver *Player, power float64) (Vec2, bool) {
	ballPos := t.ball.Position()
	time := t.ball.TimeToCoverDistance(ballPos, receiver.Position(), power)
	if time < 0 {
		return Vec2{}, false
	}
	interceptRange := time * receiver.MaxSpeed() * t.match.cfg.Player.PassInterceptScale

	candidates := []Vec2{receiver.Position()}
	if t1, t2, ok := TangentPoints(receiver.Position(), interceptRange, ballPos); ok {
		candidates = []Vec2{t1, receiver.Position(), t2}
	}

	area := t.pitch.PlayingArea()
	goalX := t.opposingGoal.Center.X
	var (
		best     Vec2
		found    bool
		bestDist = math.Inf(1)
	)
	for _, c := range candidates {
		if !area.Contains(c, RegionNormal) {
			continue
		}
		if !t.IsPassSafeFromAllOpponents(ballPos, c, receiver, power) {
			continue
		}
		if d := math.Abs(c.X - goalX); d < bestDist {
			best, found, bestDist = c, true, d
		}
	}
	return best, found
}

// DetermineBestSupportingAttacker returns the attacker, other than the
// controlling player, nearest the best support spot.
func (t *Team) DetermineBestSupportingAttacker() *Player {
	spot := t.SupportSpot()
	var (
		best     *Player
		bestDist = math.Inf(1)
	)
	for _, p := range t.players {
		if p.role != RoleAttacker || p == t.controllingPlayer {
			continue
		}
		if d := p.Position().DistanceSq(spot); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// SupportSpot is the best supporting position from the last evaluation.
func (t *Team) SupportSpot() Vec2 { return t.support.BestSpot() }
