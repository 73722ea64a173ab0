package game

import (
	"fmt"
	"math"

	"github.com/Garsondee/Soccer-Sense/internal/fsm"
	"github.com/mlange-42/ark/ecs"
)

// Role is a player's position in the roster.
type Role int

const (
	RoleGoalkeeper Role = iota
	RoleAttacker
	RoleDefender
)

func (r Role) String() string {
	switch r {
	case RoleGoalkeeper:
		return "goalkeeper"
	case RoleAttacker:
		return "attacker"
	case RoleDefender:
		return "defender"
	default:
		return "unknown"
	}
}

const headingSpeedThreshold = 0.05 // below this speed the heading is left alone

// PlayerStats counts what a player did over a match.
type PlayerStats struct {
	Passes       int
	Shots        int
	Goals        int
	Receptions   int
	ControlGains int
	Saves        int
	Distance     float64
}

// Player is one agent on a team. Field players and goalkeepers share this
// type; their behaviour differs only by the states installed in sm.
type Player struct {
	ID    int
	Label string // e.g. "R0", "B3"

	role   Role
	team   *Team
	world  *World
	entity ecs.Entity

	homeRegion    int
	defaultRegion int

	steering Steering
	sm       *fsm.StateMachine[*Player]
	kick     *Regulator

	// holdTicks counts how long a goalkeeper has held the ball.
	holdTicks int
	thought   string

	Stats PlayerStats
}

func newPlayer(id int, label string, role Role, team *Team, heading Vec2) *Player {
	m := team.match
	p := &Player{
		ID:    id,
		Label: label,
		role:  role,
		team:  team,
		world: m.world,
		kick:  NewRegulator(m.cfg.Player.KickFrequency, m.cfg.Match.TicksPerSecond),
	}
	p.entity = m.world.Spawn(
		Transform{Heading: heading},
		Motion{MaxSpeed: m.cfg.Player.MaxSpeedWithoutBall, Mass: 1},
		Body{Radius: m.cfg.Player.Radius, Kind: KindPlayer},
	)
	p.sm = fsm.New(p)
	if role == RoleGoalkeeper {
		p.sm.SetGlobal(keeperGlobal)
		p.sm.SetCurrent(keeperTendGoal)
		keeperTendGoal.Enter(p)
	} else {
		p.sm.SetGlobal(fieldGlobal)
		p.sm.SetCurrent(fieldWait)
	}
	p.sm.OnChange = func(from, to fsm.State[*Player]) {
		fromName := "none"
		if from != nil {
			fromName = from.Name()
		}
		m.log.Add(m.tick, p.Label, p.team.Color.String(), "state", "change",
			fmt.Sprintf("%s → %s", fromName, to.Name()), 0)
	}
	p.steering.SeparationOn()
	return p
}

// Role is the player's roster role.
func (p *Player) Role() Role { return p.role }

// Team is the player's team.
func (p *Player) Team() *Team { return p.team }

// IsGoalkeeper reports whether the player keeps goal.
func (p *Player) IsGoalkeeper() bool { return p.role == RoleGoalkeeper }

// Position is the player's location on the pitch.
func (p *Player) Position() Vec2 { return p.world.Transform(p.entity).Position }

// Heading is the unit vector the player faces.
func (p *Player) Heading() Vec2 { return p.world.Transform(p.entity).Heading }

// Velocity is the player's current velocity.
func (p *Player) Velocity() Vec2 { return p.world.Motion(p.entity).Velocity }

// MaxSpeed is the player's current speed cap.
func (p *Player) MaxSpeed() float64 { return p.world.Motion(p.entity).MaxSpeed }

// Radius is the player's bounding radius.
func (p *Player) Radius() float64 { return p.world.Body(p.entity).Radius }

// Steering exposes the player's steering behaviours.
func (p *Player) Steering() *Steering { return &p.steering }

// HomeRegion is the region the player returns to in the current team state.
func (p *Player) HomeRegion() int { return p.homeRegion }

// DefaultRegion is the region assigned at kick-off.
func (p *Player) DefaultRegion() int { return p.defaultRegion }

// SetHomeRegion changes the player's home region.
func (p *Player) SetHomeRegion(id int) { p.homeRegion = id }

// StateName is the name of the player's current state.
func (p *Player) StateName() string { return p.sm.CurrentName() }

// InState reports whether the player's machine is in s.
func (p *Player) InState(s fsm.State[*Player]) bool { return p.sm.InState(s) }

// ChangeState moves the player's machine to s.
func (p *Player) ChangeState(s fsm.State[*Player]) { p.sm.ChangeTo(s) }

// HandleMessage routes a telegram through the player's state machine.
func (p *Player) HandleMessage(t fsm.Telegram) bool {
	return p.sm.HandleMessage(t)
}

// PlaceAt teleports the player and stops it.
func (p *Player) PlaceAt(pos Vec2) {
	p.world.Transform(p.entity).Position = pos
	p.world.Motion(p.entity).Velocity = Vec2{}
}

func (p *Player) setHeading(h Vec2) {
	if h.LengthSq() < 1e-12 {
		return
	}
	p.world.Transform(p.entity).Heading = h.Normalize()
}

func (p *Player) setMaxSpeed(s float64) { p.world.Motion(p.entity).MaxSpeed = s }

func (p *Player) setVelocity(v Vec2) { p.world.Motion(p.entity).Velocity = v }

// Update runs the state machine and turns the steering force into velocity.
// Positions are advanced later by the world's motion system.
func (p *Player) Update(dt float64) {
	p.sm.Update()

	cfg := p.match().cfg.Player
	m := p.world.Motion(p.entity)
	force := p.steering.calculate(p, cfg.MaxForce)
	m.Velocity = m.Velocity.Add(force.Scale(dt)).Truncate(m.MaxSpeed)

	speed := m.Velocity.Length()
	p.Stats.Distance += speed * dt
	if p.role == RoleGoalkeeper {
		p.TrackBall()
		return
	}
	if speed > headingSpeedThreshold {
		p.setHeading(m.Velocity)
	}
}

func (p *Player) match() *Match { return p.team.match }

func (p *Player) ball() *Ball { return p.team.ball }

func (p *Player) pitch() *Pitch { return p.team.pitch }

// think records a thought for the UI log when it differs from the last one.
func (p *Player) think(msg string) {
	if msg == p.thought {
		return
	}
	p.thought = msg
	m := p.match()
	m.thoughts.Add(m.tick, p.Label, p.team.Color, msg)
}

// TrackBall turns the player to face the ball.
func (p *Player) TrackBall() {
	p.setHeading(p.ball().Position().Sub(p.Position()))
}

// IsInHomeRegion reports whether the player stands in its home region.
// Field players must be inside the middle half of the region.
func (p *Player) IsInHomeRegion() bool {
	region, ok := p.pitch().RegionByID(p.homeRegion)
	if !ok {
		return false
	}
	if p.role == RoleGoalkeeper {
		return region.Contains(p.Position(), RegionNormal)
	}
	return region.Contains(p.Position(), RegionHalfSize)
}

// AtTarget reports whether the player has reached its steering target.
func (p *Player) AtTarget() bool {
	r := p.match().cfg.Player.InTargetRange
	if p.role == RoleGoalkeeper {
		r = p.match().cfg.Goalkeeper.InTargetRange
	}
	return p.Position().DistanceSq(p.steering.Target) < r*r
}

// IsClosestTeamMemberToBall reports whether p is its team's closest player.
func (p *Player) IsClosestTeamMemberToBall() bool {
	return p.team.playerClosestToBall == p
}

// IsClosestPlayerOnPitchToBall reports whether p is closer than every
// player of either team.
func (p *Player) IsClosestPlayerOnPitchToBall() bool {
	return p.IsClosestTeamMemberToBall() && p.team.closestDistSq < p.team.opposingTeam.closestDistSq
}

// IsControllingPlayer reports whether p controls the ball.
func (p *Player) IsControllingPlayer() bool {
	return p.team.controllingPlayer == p
}

// BallWithinKickingRange reports whether the ball is close enough to kick.
func (p *Player) BallWithinKickingRange() bool {
	r := p.match().cfg.Player.KickingRange
	return p.Position().DistanceSq(p.ball().Position()) < r*r
}

// BallWithinReceivingRange reports whether the ball is close enough to receive.
func (p *Player) BallWithinReceivingRange() bool {
	r := p.match().cfg.Player.ReceivingRange
	return p.Position().DistanceSq(p.ball().Position()) < r*r
}

// BallWithinKeeperRange reports whether a goalkeeper can take the ball.
func (p *Player) BallWithinKeeperRange() bool {
	r := p.match().cfg.Goalkeeper.BallRange
	return p.Position().DistanceSq(p.ball().Position()) < r*r
}

// BallWithinRangeForIntercept reports whether the ball is close enough to the
// home goal for the keeper to come out.
func (p *Player) BallWithinRangeForIntercept() bool {
	r := p.match().cfg.Goalkeeper.InterceptRange
	return p.team.homeGoal.Center.DistanceSq(p.ball().Position()) <= r*r
}

// TooFarFromGoalMouth reports whether a keeper has strayed beyond its intercept range.
func (p *Player) TooFarFromGoalMouth() bool {
	r := p.match().cfg.Goalkeeper.InterceptRange
	return p.Position().DistanceSq(p.RearInterposeTarget()) > r*r
}

// RearInterposeTarget is the point on the goal line the keeper guards. It
// slides along the mouth in proportion to the ball's position across the pitch.
func (p *Player) RearInterposeTarget() Vec2 {
	goal := p.team.homeGoal
	pitch := p.pitch()
	y := -goal.Width/2 + (p.ball().Position().Y+pitch.Height/2)*goal.Width/pitch.Height
	return Vec2{goal.Center.X, goal.Center.Y + y}
}

// InHotRegion reports whether p is within a third of the pitch of the opponents' goal.
func (p *Player) InHotRegion() bool {
	return math.Abs(p.Position().X-p.team.opposingGoal.Center.X) < p.pitch().Width/3
}

// IsAheadOfAttacker reports whether p is closer to the opponents' goal than
// the controlling player.
func (p *Player) IsAheadOfAttacker() bool {
	ctrl := p.team.controllingPlayer
	if ctrl == nil {
		return false
	}
	goalX := p.team.opposingGoal.Center.X
	return math.Abs(p.Position().X-goalX) < math.Abs(ctrl.Position().X-goalX)
}

// PositionInFrontOfPlayer reports whether pos lies in p's forward half-plane.
func (p *Player) PositionInFrontOfPlayer(pos Vec2) bool {
	return pos.Sub(p.Position()).Dot(p.Heading()) > 0
}

// IsThreatened reports whether an opponent stands in front of p inside its comfort zone.
func (p *Player) IsThreatened() bool {
	r := p.match().cfg.Player.ComfortZone
	for _, opp := range p.team.opposingTeam.players {
		if p.PositionInFrontOfPlayer(opp.Position()) && p.Position().DistanceSq(opp.Position()) < r*r {
			return true
		}
	}
	return false
}

// IsReadyForNextKick reports whether the kick regulator allows a kick now.
// A true result consumes the window.
func (p *Player) IsReadyForNextKick() bool {
	return p.kick.Ready(p.match().tick)
}

// FindSupport makes sure the best supporting attacker is on its way.
func (p *Player) FindSupport() {
	t := p.team
	best := t.DetermineBestSupportingAttacker()
	if best == nil || best == t.supportingPlayer {
		return
	}
	if t.supportingPlayer != nil {
		t.match.sendMessage(p, t.supportingPlayer, MsgGoHome, nil)
	}
	t.supportingPlayer = best
	t.match.sendMessage(p, best, MsgSupportAttacker, nil)
}

// addNoiseToKick perturbs a kick aimed at target by an angle that shrinks as
// KickingAccuracy approaches 1.
func (p *Player) addNoiseToKick(from, target Vec2) Vec2 {
	acc := p.match().cfg.Player.KickingAccuracy
	displacement := (math.Pi - math.Pi*acc) * (p.match().rng.Float64()*2 - 1)
	return from.Add(target.Sub(from).Rotate(displacement))
}

// kickBall kicks toward target with force and records the kick.
func (p *Player) kickBall(target Vec2, force float64, kind KickKind) {
	ball := p.ball()
	ball.Kick(target.Sub(ball.Position()), force)
	p.match().recordKick(p, kind, target, force)
}
