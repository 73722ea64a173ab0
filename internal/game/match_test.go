package game

import (
	"strings"
	"testing"

	"github.com/Garsondee/Soccer-Sense/internal/config"
)

// dumpTicks is how much history dumpLog prints.
const dumpTicks = 600

// dumpLog prints recent SimLog entries to t.Log so they appear in `go test -v` output.
func dumpLog(t *testing.T, tm *TestMatch) {
	t.Helper()
	out := tm.SimLog().FormatRange(tm.Tick()-dumpTicks, tm.Tick())
	if out == "" {
		t.Log("(no log entries)")
		return
	}
	t.Log("\n" + out)
}

type countingSink struct {
	ticks, kicks, controls, goals int
	lastRed, lastBlue             int
}

func (s *countingSink) OnTick(int) { s.ticks++ }
func (s *countingSink) OnKick(TeamColor, KickKind) { s.kicks++ }
func (s *countingSink) OnControlChange(TeamColor) { s.controls++ }

func (s *countingSink) OnGoal(_ TeamColor, red, blue int) {
	s.goals++
	s.lastRed, s.lastBlue = red, blue
}

func TestNewMatch_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Ball.Friction = 0.5
	if _, err := NewMatch(cfg); err == nil || !strings.Contains(err.Error(), "new match") {
		t.Fatalf("expected a wrapped validation error, got %v", err)
	}
}

func TestNewMatch_InitialState(t *testing.T) {
	tm := NewTestMatch()
	if tm.ID == "" {
		t.Fatalf("expected a match id")
	}
	if tm.Seed() != 1 {
		t.Fatalf("expected harness seed 1, got %d", tm.Seed())
	}
	if tm.Pitch().IsPlaying {
		t.Fatalf("expected play to wait for kick-off")
	}
	for _, team := range tm.Teams() {
		if team.StateName() != "PrepareForKickOff" {
			t.Fatalf("expected %s preparing for kick-off, got %s", team.Color, team.StateName())
		}
	}
	if tm.Ball().Position() != tm.Pitch().Center() {
		t.Fatalf("expected the ball on the centre spot")
	}
	if n := len(tm.Players()); n != 10 {
		t.Fatalf("expected 10 players, got %d", n)
	}
	if tm.world.Count() != 11 {
		t.Fatalf("expected 11 entities, got %d", tm.world.Count())
	}
}

func TestMatch_SeedZeroUsesClock(t *testing.T) {
	cfg := config.Default()
	cfg.Match.Seed = 0
	m, err := NewMatch(cfg)
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	if m.Seed() == 0 {
		t.Fatalf("expected a clock-derived seed")
	}
}

func TestScenario_KickOff(t *testing.T) {
	tm := NewTestMatch()
	tick := tm.RunUntil(func(tm *TestMatch) bool { return tm.Pitch().IsPlaying }, 600)
	if tick < 0 {
		dumpLog(t, tm)
		t.Fatalf("expected kick-off within 600 ticks")
	}
	for _, team := range tm.Teams() {
		if team.StateName() == "PrepareForKickOff" {
			t.Fatalf("expected %s to leave PrepareForKickOff", team.Color)
		}
	}
	if n := tm.SimLog().CountCategory("match", "kick_off"); n != 1 {
		t.Fatalf("expected a single kick-off entry, got %d", n)
	}
}

func TestScenario_FieldPlayersWaitAtHomeBeforeKickOff(t *testing.T) {
	tm := NewTestMatch()
	for _, p := range tm.Players() {
		if p.IsGoalkeeper() {
			if p.StateName() != "TendGoal" {
				t.Fatalf("expected %s tending goal, got %s", p.Label, p.StateName())
			}
			continue
		}
		if p.StateName() != "ReturnHome" {
			t.Fatalf("expected %s returning home, got %s", p.Label, p.StateName())
		}
	}
}

func TestScenario_AtMostOneTeamInControl(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		tm := NewTestMatch(WithSeed(seed))
		for i := 0; i < 3000; i++ {
			tm.Update()
			if n := tm.ControllingPlayers(); n > 1 {
				dumpLog(t, tm)
				t.Fatalf("seed %d tick %d: expected at most one team in control, got %d", seed, tm.Tick(), n)
			}
			for _, team := range tm.Teams() {
				if c := team.ControllingPlayer(); c != nil && c.Team() != team {
					t.Fatalf("seed %d tick %d: %s controls for the wrong team", seed, tm.Tick(), c.Label)
				}
				if r := team.ReceivingPlayer(); r != nil && r.Team() != team {
					t.Fatalf("seed %d tick %d: %s receives for the wrong team", seed, tm.Tick(), r.Label)
				}
			}
		}
	}
}

func TestScenario_PlayersStayOnPitch(t *testing.T) {
	tm := NewTestMatch(WithSeed(9))
	area := tm.Pitch().PlayingArea()
	for i := 0; i < 1500; i++ {
		tm.Update()
		for _, p := range tm.Players() {
			if !area.Contains(p.Position(), RegionNormal) {
				t.Fatalf("tick %d: %s left the pitch at %+v", tm.Tick(), p.Label, p.Position())
			}
		}
	}
}

func TestScenario_PlayIsActive(t *testing.T) {
	// Verbose so dribble touches count as kicks.
	tm := NewTestMatch(WithSeed(5), WithVerbose(true))
	tm.RunTicks(3600)
	if tm.SimLog().CountCategory("kick", "") == 0 {
		t.Log(tm.SimLog().Summary(tm.Match))
		t.Fatalf("expected kicks in a minute of play")
	}
	if tm.SimLog().CountCategory("control", "gained") == 0 {
		t.Fatalf("expected somebody to gain control")
	}
}

func TestScenario_GoalResetsForKickOff(t *testing.T) {
	sink := &countingSink{}
	tm := NewTestMatch(
		WithKickOffDone(),
		WithSink(sink),
		WithBallAt(9.5, 0),
		WithBallVelocity(5, 0),
	)
	tick := tm.RunUntil(func(tm *TestMatch) bool {
		_, blue := tm.Score()
		return blue == 1
	}, 60)
	if tick < 0 {
		dumpLog(t, tm)
		t.Fatalf("expected blue to score within 60 ticks")
	}
	if red, _ := tm.Score(); red != 0 {
		t.Fatalf("expected red still on 0, got %d", red)
	}
	if tm.Ball().Position() != tm.Pitch().Center() || tm.Ball().Velocity() != (Vec2{}) {
		t.Fatalf("expected the ball back on the centre spot")
	}
	if tm.Pitch().IsPlaying {
		t.Fatalf("expected play suspended until kick-off")
	}
	for _, team := range tm.Teams() {
		if team.StateName() != "PrepareForKickOff" || team.InControl() {
			t.Fatalf("expected %s reset for kick-off, got %s", team.Color, team.StateName())
		}
	}
	if sink.goals != 1 || sink.lastBlue != 1 {
		t.Fatalf("expected the sink to see one blue goal, got %+v", sink)
	}
	if !tm.SimLog().HasEntry("goal", "scored", "red 0 - 1 blue") {
		t.Fatalf("expected a goal entry with the score")
	}

	// Play restarts.
	if tm.RunUntil(func(tm *TestMatch) bool { return tm.Pitch().IsPlaying }, 1200) < 0 {
		t.Fatalf("expected play to restart after the goal")
	}
}

func TestScenario_GoalCreditsLastKicker(t *testing.T) {
	tm := NewTestMatch(
		WithKickOffDone(),
		WithBallAt(-9.0, 0),
		WithPlayerAt("R1", -8.0, 0),
		WithPlayerAt("B0", -9.9, 5),
	)
	r1 := tm.PlayerByLabel("R1")
	r1.kickBall(Vec2{-10, 0}, 4, KickShot)

	if tm.RunUntil(func(tm *TestMatch) bool { red, _ := tm.Score(); return red == 1 }, 30) < 0 {
		dumpLog(t, tm)
		t.Fatalf("expected red to score")
	}
	if r1.Stats.Goals != 1 || r1.Stats.Shots != 1 {
		t.Fatalf("expected R1 credited with the shot and goal, got %+v", r1.Stats)
	}
	if tm.Red().Stats.Shots != 1 {
		t.Fatalf("expected one red shot, got %d", tm.Red().Stats.Shots)
	}
}

func TestScenario_KeeperTakesBall(t *testing.T) {
	tm := NewTestMatch(
		WithKickOffDone(),
		WithBallAt(-7, 0),
		WithBallVelocity(-2, 0),
	)
	keeper := tm.Blue().Goalkeeper()
	tick := tm.RunUntil(func(tm *TestMatch) bool { return tm.Pitch().GoalkeeperHasBall }, 120)
	if tick < 0 {
		dumpLog(t, tm)
		t.Fatalf("expected the blue keeper to gather the ball")
	}
	if keeper.StateName() != "PutBallBackInPlay" {
		t.Fatalf("expected keeper in PutBallBackInPlay, got %s", keeper.StateName())
	}
	if tm.Blue().ControllingPlayer() != keeper || tm.Red().InControl() {
		t.Fatalf("expected blue in control through the keeper")
	}
	if keeper.Stats.Saves != 1 {
		t.Fatalf("expected one save, got %d", keeper.Stats.Saves)
	}
	if !tm.SimLog().HasEntry("keeper", "take_ball", "") {
		t.Fatalf("expected a take_ball entry")
	}
}

func TestScenario_KeeperReleasesBall(t *testing.T) {
	tm := NewTestMatch(
		WithKickOffDone(),
		WithBallAt(-7, 0),
		WithBallVelocity(-2, 0),
	)
	if tm.RunUntil(func(tm *TestMatch) bool { return tm.Pitch().GoalkeeperHasBall }, 120) < 0 {
		t.Fatalf("expected the keeper to gather the ball")
	}
	// A pass or, failing that, the clearance after three seconds.
	limit := clearanceSeconds*tm.Config().Match.TicksPerSecond + 10
	if tm.RunUntil(func(tm *TestMatch) bool { return !tm.Pitch().GoalkeeperHasBall }, limit) < 0 {
		dumpLog(t, tm)
		t.Fatalf("expected the keeper to release the ball within %d ticks", limit)
	}
	kicks := tm.SimLog().FilterPlayer("B0")
	released := false
	for _, e := range kicks {
		if e.Category == "kick" && (e.Key == "pass" || e.Key == "clearance") {
			released = true
		}
	}
	if !released {
		t.Fatalf("expected a keeper pass or clearance in the log")
	}
}

func TestScenario_PassToMeIgnoredWithoutBall(t *testing.T) {
	tm := NewTestMatch(WithKickOffDone(), WithBallAt(5, 5))
	r1, r2 := tm.PlayerByLabel("R1"), tm.PlayerByLabel("R2")
	before := tm.Red().Stats.Passes
	tm.sendMessage(r2, r1, MsgPassToMe, r2)
	if tm.Red().Stats.Passes != before {
		t.Fatalf("expected no pass from a player without the ball")
	}
}

func TestScenario_PassToMeKicksToRequester(t *testing.T) {
	tm := NewTestMatch(
		WithKickOffDone(),
		WithBallAt(0, 0),
		WithPlayerAt("R1", 0.2, 0),
		WithPlayerAt("R2", -4, 2),
	)
	r1, r2 := tm.PlayerByLabel("R1"), tm.PlayerByLabel("R2")
	tm.Red().SetControl(r1)
	tm.sendMessage(r2, r1, MsgPassToMe, r2)

	if tm.Red().Stats.Passes != 1 {
		t.Fatalf("expected one pass, got %d", tm.Red().Stats.Passes)
	}
	if r2.StateName() != "ReceiveBall" || tm.Red().ReceivingPlayer() != r2 {
		t.Fatalf("expected R2 receiving, got %s", r2.StateName())
	}
	if r1.IsControllingPlayer() {
		t.Fatalf("expected R1 to hand control to the receiver")
	}
	if v := tm.Ball().Velocity(); v.X >= 0 {
		t.Fatalf("expected the ball travelling toward R2, got %+v", v)
	}
}

func TestScenario_GoHomeResetsRegion(t *testing.T) {
	tm := NewTestMatch(WithKickOffDone())
	r3 := tm.PlayerByLabel("R3")
	r3.SetHomeRegion(0)
	tm.sendMessage(nil, r3, MsgGoHome, nil)
	if r3.HomeRegion() != r3.DefaultRegion() {
		t.Fatalf("expected GO_HOME to restore the default region, got %d", r3.HomeRegion())
	}
	if r3.StateName() != "ReturnHome" {
		t.Fatalf("expected ReturnHome, got %s", r3.StateName())
	}
}

func TestMatch_Deterministic(t *testing.T) {
	a := NewTestMatch(WithSeed(77))
	b := NewTestMatch(WithSeed(77))
	a.RunTicks(1200)
	b.RunTicks(1200)
	if a.Ball().Position() != b.Ball().Position() {
		t.Fatalf("expected identical ball positions, got %+v vs %+v", a.Ball().Position(), b.Ball().Position())
	}
	if len(a.SimLog().Entries()) != len(b.SimLog().Entries()) {
		t.Fatalf("expected identical logs")
	}
}

func TestMatch_VerboseLogsTelegrams(t *testing.T) {
	tm := NewTestMatch(WithVerbose(true))
	tm.RunTicks(2)
	if tm.SimLog().CountCategory("ball", "position") != 2 {
		t.Fatalf("expected one ball entry per tick")
	}
	quiet := NewTestMatch()
	quiet.RunTicks(2)
	if quiet.SimLog().CountCategory("ball", "") != 0 {
		t.Fatalf("expected no ball entries without verbose")
	}
}

func TestMatch_Snapshot(t *testing.T) {
	tm := NewTestMatch()
	tm.Red().SetControl(tm.PlayerByLabel("R1"))
	snap := tm.Snapshot()
	if snap.ID != tm.ID || snap.Tick != 0 {
		t.Fatalf("expected id and tick copied")
	}
	if len(snap.Teams) != 2 || snap.Teams[0].Color != "red" {
		t.Fatalf("expected red first, got %+v", snap.Teams)
	}
	if !snap.Teams[0].InControl || snap.Teams[1].InControl {
		t.Fatalf("expected red in control only")
	}
	ctrl := 0
	for _, p := range snap.Teams[0].Players {
		if p.Controlling {
			ctrl++
			if p.Label != "R1" {
				t.Fatalf("expected R1 flagged as controlling, got %s", p.Label)
			}
		}
	}
	if ctrl != 1 {
		t.Fatalf("expected one controlling player, got %d", ctrl)
	}
}
