package game

import "github.com/Garsondee/Soccer-Sense/internal/fsm"

// clearanceSeconds is how long a keeper holds the ball looking for a safe
// pass before hoofing it upfield.
const clearanceSeconds = 3

type (
	keeperGlobalState     struct{ playerState }
	tendGoalState         struct{ playerState }
	keeperReturnHomeState struct{ playerState }
	interceptBallState    struct{ playerState }
	putBallBackState      struct{ playerState }
)

var (
	keeperGlobal            = &keeperGlobalState{playerState{name: "KeeperGlobal"}}
	keeperTendGoal          = &tendGoalState{playerState{name: "TendGoal"}}
	keeperReturnHome        = &keeperReturnHomeState{playerState{name: "KeeperReturnHome"}}
	keeperInterceptBall     = &interceptBallState{playerState{name: "InterceptBall"}}
	keeperPutBallBackInPlay = &putBallBackState{playerState{name: "PutBallBackInPlay"}}
)

func (*keeperGlobalState) OnMessage(p *Player, t fsm.Telegram) bool {
	switch t.Message {
	case MsgGoHome:
		p.homeRegion = p.defaultRegion
		p.ChangeState(keeperReturnHome)
		return true
	case MsgReceiveBall:
		p.ChangeState(keeperInterceptBall)
		return true
	}
	return false
}

// takeBall traps the ball if it is in reach and not already leaving the keeper.
func (p *Player) takeBall() bool {
	if !p.BallWithinKeeperRange() {
		return false
	}
	ball := p.ball()
	if ball.Velocity().Dot(p.Position().Sub(ball.Position())) < 0 {
		return false
	}
	ball.Trap()
	p.pitch().GoalkeeperHasBall = true
	p.Stats.Saves++
	m := p.match()
	m.log.Add(m.tick, p.Label, p.team.Color.String(), "keeper", "take_ball", "ball gathered", 0)
	p.ChangeState(keeperPutBallBackInPlay)
	return true
}

// TendGoal: stand between the ball and the goal mouth.

func (*tendGoalState) Enter(p *Player) {
	p.steering.InterposeOn(p.match().cfg.Goalkeeper.TendingDistance)
	p.steering.Target = p.RearInterposeTarget()
	p.think("tending goal")
}

func (*tendGoalState) Execute(p *Player) {
	p.steering.Target = p.RearInterposeTarget()

	if p.takeBall() {
		return
	}
	if p.BallWithinRangeForIntercept() && !p.team.InControl() {
		p.ChangeState(keeperInterceptBall)
		return
	}
	if p.TooFarFromGoalMouth() && p.team.InControl() {
		p.ChangeState(keeperReturnHome)
	}
}

func (*tendGoalState) Exit(p *Player) {
	p.steering.InterposeOff()
}

// ReturnHome: back to the home region centre.

func (*keeperReturnHomeState) Enter(p *Player) {
	p.steering.ArriveOn()
	p.think("back to goal")
}

func (*keeperReturnHomeState) Execute(p *Player) {
	if region, ok := p.pitch().RegionByID(p.homeRegion); ok {
		p.steering.Target = region.Center()
	}
	if p.IsInHomeRegion() || !p.team.InControl() {
		p.ChangeState(keeperTendGoal)
	}
}

func (*keeperReturnHomeState) Exit(p *Player) {
	p.steering.ArriveOff()
}

// InterceptBall: come out and claim a ball near goal.

func (*interceptBallState) Enter(p *Player) {
	p.steering.PursuitOn()
	p.think("coming out")
}

func (*interceptBallState) Execute(p *Player) {
	// Give up if the keeper has wandered off and someone else is nearer.
	if p.TooFarFromGoalMouth() && !p.IsClosestPlayerOnPitchToBall() {
		p.ChangeState(keeperReturnHome)
		return
	}
	p.takeBall()
}

func (*interceptBallState) Exit(p *Player) {
	p.steering.PursuitOff()
}

// PutBallBackInPlay: hold the ball while everyone resets, then distribute.

func (*putBallBackState) Enter(p *Player) {
	p.team.SetControl(p)
	p.holdTicks = 0
	p.team.opposingTeam.ReturnAllFieldPlayersToHome()
	p.team.ReturnAllFieldPlayersToHome()
	p.think("ball in hand")
}

func (*putBallBackState) Execute(p *Player) {
	m := p.match()
	ball := p.ball()
	p.setVelocity(Vec2{})
	ball.Trap()
	p.holdTicks++

	cfg := m.cfg
	if receiver, target, ok := p.team.FindPass(p, cfg.Player.MaxPassingForce, cfg.Goalkeeper.MinPassDistance); ok {
		p.kickBall(target, cfg.Player.MaxPassingForce, KickPass)
		p.pitch().GoalkeeperHasBall = false
		p.think("distributing to " + receiver.Label)
		m.sendMessage(p, receiver, MsgReceiveBall, target)
		p.ChangeState(keeperTendGoal)
		return
	}

	if p.holdTicks >= clearanceSeconds*cfg.Match.TicksPerSecond {
		target := p.addNoiseToKick(ball.Position(), p.team.opposingGoal.Center)
		p.kickBall(target, cfg.Player.MaxShootingForce, KickClearance)
		p.pitch().GoalkeeperHasBall = false
		p.think("clearing upfield")
		p.ChangeState(keeperTendGoal)
	}
}
