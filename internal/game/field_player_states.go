package game

import (
	"math"

	"github.com/Garsondee/Soccer-Sense/internal/fsm"
)

// playerState carries the name every player state reports. Keeping a field
// here also gives each state value a distinct address.
type playerState struct {
	fsm.BaseState[*Player]
	name string
}

func (s *playerState) Name() string { return s.name }

type (
	fieldGlobalState     struct{ playerState }
	chaseBallState       struct{ playerState }
	dribbleState         struct{ playerState }
	kickBallState        struct{ playerState }
	receiveBallState     struct{ playerState }
	supportAttackerState struct{ playerState }
	fieldReturnHomeState struct{ playerState }
	waitState            struct{ playerState }
)

// Field player states. They hold no per-player data, so one value of each is
// shared by every field player.
var (
	fieldGlobal          = &fieldGlobalState{playerState{name: "Global"}}
	fieldChaseBall       = &chaseBallState{playerState{name: "ChaseBall"}}
	fieldDribble         = &dribbleState{playerState{name: "Dribble"}}
	fieldKickBall        = &kickBallState{playerState{name: "KickBall"}}
	fieldReceiveBall     = &receiveBallState{playerState{name: "ReceiveBall"}}
	fieldSupportAttacker = &supportAttackerState{playerState{name: "SupportAttacker"}}
	fieldReturnHome      = &fieldReturnHomeState{playerState{name: "ReturnHome"}}
	fieldWait            = &waitState{playerState{name: "Wait"}}
)

// ---------------------------------------------------------------------------
// Global
// ---------------------------------------------------------------------------

func (*fieldGlobalState) Execute(p *Player) {
	cfg := p.match().cfg.Player
	if p.IsControllingPlayer() && p.BallWithinReceivingRange() {
		p.setMaxSpeed(cfg.MaxSpeedWithBall)
		return
	}
	p.setMaxSpeed(cfg.MaxSpeedWithoutBall)
}

func (*fieldGlobalState) OnMessage(p *Player, t fsm.Telegram) bool {
	switch t.Message {
	case MsgReceiveBall:
		if target, ok := t.Data.(Vec2); ok {
			p.steering.Target = target
		}
		p.ChangeState(fieldReceiveBall)
		return true

	case MsgSupportAttacker:
		if p.InState(fieldSupportAttacker) {
			return true
		}
		p.steering.Target = p.team.SupportSpot()
		p.ChangeState(fieldSupportAttacker)
		return true

	case MsgGoHome:
		p.homeRegion = p.defaultRegion
		p.ChangeState(fieldReturnHome)
		return true

	case MsgWait:
		p.ChangeState(fieldWait)
		return true

	case MsgPassToMe:
		receiver, ok := t.Data.(*Player)
		if !ok || receiver == nil {
			return true
		}
		// Only the player with the ball at its feet can answer, and only
		// when no pass is already in flight.
		if p.team.receivingPlayer != nil || !p.BallWithinKickingRange() {
			return true
		}
		target := receiver.Position()
		p.kickBall(target, p.match().cfg.Player.MaxPassingForce, KickPass)
		p.think("passing to " + receiver.Label + " on request")
		p.match().sendMessage(p, receiver, MsgReceiveBall, target)
		p.ChangeState(fieldWait)
		p.FindSupport()
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// ChaseBall
// ---------------------------------------------------------------------------

func (*chaseBallState) Enter(p *Player) {
	p.steering.SeekOn()
	p.think("chasing the ball")
}

func (*chaseBallState) Execute(p *Player) {
	if p.BallWithinKickingRange() {
		p.ChangeState(fieldKickBall)
		return
	}
	if p.IsClosestTeamMemberToBall() {
		p.steering.Target = p.ball().Position()
		return
	}
	p.ChangeState(fieldReturnHome)
}

func (*chaseBallState) Exit(p *Player) {
	p.steering.SeekOff()
}

// ---------------------------------------------------------------------------
// Dribble
// ---------------------------------------------------------------------------

func (*dribbleState) Enter(p *Player) {
	p.team.SetControl(p)
	p.think("dribbling")
}

func (*dribbleState) Execute(p *Player) {
	cfg := p.match().cfg.Player
	facing := p.team.homeGoal.Facing
	heading := p.Heading()
	ballPos := p.ball().Position()

	if facing.Dot(heading) < 0 {
		// Facing our own goal: knock the ball a quarter turn toward the
		// attacking direction and keep turning.
		angle := math.Pi / 4
		if heading.Cross(facing) < 0 {
			angle = -angle
		}
		dir := heading.Rotate(angle)
		p.kickBall(ballPos.Add(dir), cfg.MaxDribbleAndTurnForce, KickDribble)
	} else {
		p.kickBall(ballPos.Add(facing), cfg.MaxDribbleForce, KickDribble)
	}
	p.ChangeState(fieldChaseBall)
}

// ---------------------------------------------------------------------------
// KickBall
// ---------------------------------------------------------------------------

func (*kickBallState) Enter(p *Player) {
	p.team.SetControl(p)
	if !p.IsReadyForNextKick() {
		p.ChangeState(fieldChaseBall)
	}
}

func (*kickBallState) Execute(p *Player) {
	m := p.match()
	cfg := m.cfg.Player
	team := p.team
	ballPos := p.ball().Position()

	dot := p.Heading().Dot(ballPos.Sub(p.Position()).Normalize())
	if team.receivingPlayer != nil || p.pitch().GoalkeeperHasBall || dot < 0 {
		p.ChangeState(fieldChaseBall)
		return
	}

	// Shot: a clear line at goal, or the occasional speculative effort.
	power := cfg.MaxShootingForce * dot
	target, canShoot := team.CanShoot(ballPos, power)
	if canShoot || m.rng.Float64() < cfg.ChancePotShot {
		if !canShoot {
			target = team.opposingGoal.Center
			p.think("pot shot")
		} else {
			p.think("shooting")
		}
		target = p.addNoiseToKick(ballPos, target)
		p.kickBall(target, power, KickShot)
		p.ChangeState(fieldWait)
		p.FindSupport()
		return
	}

	// Pass when pressed.
	power = cfg.MaxPassingForce * dot
	if p.IsThreatened() {
		if receiver, target, ok := team.FindPass(p, power, cfg.MinPassDistance); ok {
			target = p.addNoiseToKick(ballPos, target)
			p.kickBall(target, power, KickPass)
			p.think("under pressure, passing to " + receiver.Label)
			m.sendMessage(p, receiver, MsgReceiveBall, target)
			p.ChangeState(fieldWait)
			p.FindSupport()
			return
		}
	}

	p.FindSupport()
	p.ChangeState(fieldDribble)
}

// ---------------------------------------------------------------------------
// ReceiveBall
// ---------------------------------------------------------------------------

func (*receiveBallState) Enter(p *Player) {
	cfg := p.match().cfg.Player
	team := p.team
	team.receivingPlayer = p
	team.SetControl(p)

	// Arrive at the pass target when there is time; otherwise run at the ball.
	calm := !team.IsOpponentWithinRadius(p, cfg.PassThreatRadius)
	if calm && (p.InHotRegion() || p.match().rng.Float64() < cfg.ChanceArriveReceive) {
		p.steering.ArriveOn()
		p.think("waiting for the pass")
	} else {
		p.steering.PursuitOn()
		p.think("attacking the pass")
	}
}

func (*receiveBallState) Execute(p *Player) {
	if p.BallWithinReceivingRange() || !p.team.InControl() {
		if p.BallWithinReceivingRange() {
			p.Stats.Receptions++
		}
		p.ChangeState(fieldChaseBall)
		return
	}
	if p.steering.Active(behPursuit) {
		p.steering.Target = p.ball().Position()
	}
	if p.AtTarget() {
		p.steering.ArriveOff()
		p.steering.PursuitOff()
		p.TrackBall()
		p.setVelocity(Vec2{})
	}
}

func (*receiveBallState) Exit(p *Player) {
	p.steering.ArriveOff()
	p.steering.PursuitOff()
	if p.team.receivingPlayer == p {
		p.team.receivingPlayer = nil
	}
}

// ---------------------------------------------------------------------------
// SupportAttacker
// ---------------------------------------------------------------------------

func (*supportAttackerState) Enter(p *Player) {
	p.steering.ArriveOn()
	p.steering.Target = p.team.SupportSpot()
	p.think("moving to support")
}

func (*supportAttackerState) Execute(p *Player) {
	team := p.team
	if !team.InControl() {
		p.ChangeState(fieldReturnHome)
		return
	}

	if spot := team.SupportSpot(); spot != p.steering.Target {
		p.steering.Target = spot
		p.steering.ArriveOn()
	}

	// A supporter with a shot on asks for the ball straight away.
	if _, ok := team.CanShoot(p.Position(), p.match().cfg.Player.MaxShootingForce); ok {
		team.RequestPass(p)
	}

	if p.AtTarget() {
		p.steering.ArriveOff()
		p.TrackBall()
		p.setVelocity(Vec2{})
		if !p.IsThreatened() {
			team.RequestPass(p)
		}
	}
}

func (*supportAttackerState) Exit(p *Player) {
	if p.team.supportingPlayer == p {
		p.team.supportingPlayer = nil
	}
	p.steering.ArriveOff()
}

// ---------------------------------------------------------------------------
// ReturnHome
// ---------------------------------------------------------------------------

func (*fieldReturnHomeState) Enter(p *Player) {
	p.steering.ArriveOn()
	if region, ok := p.pitch().RegionByID(p.homeRegion); ok && !region.Contains(p.steering.Target, RegionHalfSize) {
		p.steering.Target = region.Center()
	}
	p.think("heading home")
}

func (*fieldReturnHomeState) Execute(p *Player) {
	pitch := p.pitch()
	if pitch.IsPlaying && p.shouldChase() {
		p.ChangeState(fieldChaseBall)
		return
	}
	if pitch.IsPlaying && p.IsInHomeRegion() {
		p.steering.Target = p.Position()
		p.ChangeState(fieldWait)
		return
	}
	if !pitch.IsPlaying && p.AtTarget() {
		p.ChangeState(fieldWait)
	}
}

func (*fieldReturnHomeState) Exit(p *Player) {
	p.steering.ArriveOff()
}

// ---------------------------------------------------------------------------
// Wait
// ---------------------------------------------------------------------------

func (*waitState) Enter(p *Player) {
	if !p.pitch().IsPlaying {
		if region, ok := p.pitch().RegionByID(p.homeRegion); ok {
			p.steering.Target = region.Center()
		}
	}
	p.think("holding position")
}

func (*waitState) Execute(p *Player) {
	team := p.team
	if p.pitch().IsPlaying && p.shouldChase() {
		p.ChangeState(fieldChaseBall)
		return
	}

	if !p.AtTarget() {
		p.steering.ArriveOn()
		return
	}
	p.steering.ArriveOff()
	p.setVelocity(Vec2{})
	p.TrackBall()

	if team.InControl() && !p.IsControllingPlayer() && p.IsAheadOfAttacker() {
		team.RequestPass(p)
	}
}

func (*waitState) Exit(p *Player) {
	p.steering.ArriveOff()
}

// shouldChase reports whether p is the team's man for a loose ball.
func (p *Player) shouldChase() bool {
	return p.IsClosestTeamMemberToBall() &&
		p.team.receivingPlayer == nil &&
		!p.pitch().GoalkeeperHasBall
}
