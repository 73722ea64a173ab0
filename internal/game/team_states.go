package game

import (
	"github.com/Garsondee/Soccer-Sense/internal/fsm"
	"go.uber.org/zap"
)

type teamState struct {
	fsm.BaseState[*Team]
	name string
}

func (s *teamState) Name() string { return s.name }

type (
	prepareForKickOffState struct{ teamState }
	defendingState         struct{ teamState }
	attackingState         struct{ teamState }
)

var (
	teamPrepareForKickOff = &prepareForKickOffState{teamState{name: "PrepareForKickOff"}}
	teamDefending         = &defendingState{teamState{name: "Defending"}}
	teamAttacking         = &attackingState{teamState{name: "Attacking"}}
)

// PrepareForKickOff: everybody home, then play starts.

func (*prepareForKickOffState) Enter(t *Team) {
	t.controllingPlayer = nil
	t.receivingPlayer = nil
	t.supportingPlayer = nil
	t.playerClosestToBall = nil
	t.ReturnAllFieldPlayersToHome()
}

func (*prepareForKickOffState) Execute(t *Team) {
	if t.AreAllPlayersAtHome() && t.opposingTeam.AreAllPlayersAtHome() {
		t.sm.ChangeTo(teamDefending)
	}
}

func (*prepareForKickOffState) Exit(t *Team) {
	if t.pitch.IsPlaying {
		return
	}
	t.pitch.IsPlaying = true
	m := t.match
	m.log.Add(m.tick, "--", "--", "match", "kick_off", "play resumes", 0)
	m.logger.Info("kick-off", zap.Int("tick", m.tick))
}

// Defending: fall back into the defensive layout until the ball is won.

func (*defendingState) Enter(t *Team) {
	t.changeHomeRegions(t.defendingRegions())
	t.UpdateSteeringTargetOfPlayers()
}

func (*defendingState) Execute(t *Team) {
	if t.InControl() {
		t.sm.ChangeTo(teamAttacking)
	}
}

// Attacking: push up and keep the support spot fresh.

func (*attackingState) Enter(t *Team) {
	t.changeHomeRegions(t.attackingRegions())
	t.UpdateSteeringTargetOfPlayers()
}

func (*attackingState) Execute(t *Team) {
	if !t.InControl() {
		t.sm.ChangeTo(teamDefending)
		return
	}
	t.support.DetermineBestSupportingPosition()
}

func (*attackingState) Exit(t *Team) {
	t.supportingPlayer = nil
}
