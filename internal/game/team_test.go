package game

import "testing"

func TestNewTeam_Roster(t *testing.T) {
	tm := NewTestMatch()
	for _, team := range tm.Teams() {
		players := team.Players()
		if len(players) != 5 {
			t.Fatalf("expected 5 players for %s, got %d", team.Color, len(players))
		}
		want := []Role{RoleGoalkeeper, RoleAttacker, RoleAttacker, RoleDefender, RoleDefender}
		keepers := 0
		for i, p := range players {
			if p.Role() != want[i] {
				t.Fatalf("expected %s[%d] to be %s, got %s", team.Color, i, want[i], p.Role())
			}
			if p.IsGoalkeeper() {
				keepers++
			}
			if p.Team() != team {
				t.Fatalf("expected %s to belong to %s", p.Label, team.Color)
			}
			if p.Heading() != team.HomeGoal().Facing {
				t.Fatalf("expected %s to face %+v, got %+v", p.Label, team.HomeGoal().Facing, p.Heading())
			}
		}
		if keepers != 1 {
			t.Fatalf("expected exactly one goalkeeper for %s, got %d", team.Color, keepers)
		}
		if team.Goalkeeper() != players[0] {
			t.Fatalf("expected the goalkeeper first in the roster")
		}
	}
	if tm.Red().Players()[2].Label != "R2" || tm.Blue().Players()[4].Label != "B4" {
		t.Fatalf("expected R/B prefixed labels")
	}
	if tm.Red().OpposingTeam() != tm.Blue() || tm.Blue().OpposingTeam() != tm.Red() {
		t.Fatalf("expected teams to oppose each other")
	}
}

func TestNewTeam_Goals(t *testing.T) {
	tm := NewTestMatch()
	if tm.Red().HomeGoal() != tm.Pitch().RedGoal || tm.Red().OpposingGoal() != tm.Pitch().BlueGoal {
		t.Fatalf("expected red to defend the red goal and attack the blue one")
	}
	if tm.Blue().HomeGoal() != tm.Pitch().BlueGoal || tm.Blue().OpposingGoal() != tm.Pitch().RedGoal {
		t.Fatalf("expected blue to defend the blue goal and attack the red one")
	}
}

func TestSetupTeamPositions_DefendingLayout(t *testing.T) {
	tm := NewTestMatch()
	cases := []struct {
		team    *Team
		regions [teamSize]int
	}{
		{tm.Red(), [teamSize]int{16, 9, 11, 12, 14}},
		{tm.Blue(), [teamSize]int{1, 6, 8, 3, 5}},
	}
	for _, c := range cases {
		for i, p := range c.team.Players() {
			if p.HomeRegion() != c.regions[i] || p.DefaultRegion() != c.regions[i] {
				t.Fatalf("expected %s home/default region %d, got %d/%d", p.Label, c.regions[i], p.HomeRegion(), p.DefaultRegion())
			}
			region, _ := tm.Pitch().RegionByID(c.regions[i])
			if p.Position() != region.Center() {
				t.Fatalf("expected %s on region %d centre, got %+v", p.Label, c.regions[i], p.Position())
			}
		}
	}
}

func TestTeamStates_SwapRegionTables(t *testing.T) {
	tm := NewTestMatch(WithKickOffDone())
	red := tm.Red()

	red.sm.ChangeTo(teamAttacking)
	want := [teamSize]int{16, 3, 5, 9, 13}
	for i, p := range red.Players() {
		if p.HomeRegion() != want[i] {
			t.Fatalf("expected attacking region %d for %s, got %d", want[i], p.Label, p.HomeRegion())
		}
	}

	red.sm.ChangeTo(teamDefending)
	for i, p := range red.Players() {
		if p.HomeRegion() != redDefendingRegions[i] {
			t.Fatalf("expected defending region %d for %s, got %d", redDefendingRegions[i], p.Label, p.HomeRegion())
		}
	}

	blue := tm.Blue()
	blue.sm.ChangeTo(teamAttacking)
	for i, p := range blue.Players() {
		if p.HomeRegion() != blueAttackingRegions[i] {
			t.Fatalf("expected blue attacking region %d for %s, got %d", blueAttackingRegions[i], p.Label, p.HomeRegion())
		}
	}
}

func TestSetControl_ClearsOpponent(t *testing.T) {
	tm := NewTestMatch()
	red, blue := tm.Red(), tm.Blue()
	r1, b1 := red.Players()[1], blue.Players()[1]

	red.SetControl(r1)
	red.receivingPlayer = red.Players()[2]
	if !red.InControl() || red.ControllingPlayer() != r1 {
		t.Fatalf("expected red in control through R1")
	}

	blue.SetControl(b1)
	if red.InControl() || red.ReceivingPlayer() != nil || red.SupportingPlayer() != nil {
		t.Fatalf("expected red to lose control, receiver and supporter")
	}
	if !blue.InControl() {
		t.Fatalf("expected blue in control")
	}
	if tm.ControllingPlayers() != 1 {
		t.Fatalf("expected one controlling team, got %d", tm.ControllingPlayers())
	}
}

func TestSetControl_CountsChangesOnce(t *testing.T) {
	tm := NewTestMatch()
	red := tm.Red()
	r1 := red.Players()[1]
	red.SetControl(r1)
	red.SetControl(r1)
	if red.Stats.ControlChanges != 1 || r1.Stats.ControlGains != 1 {
		t.Fatalf("expected a single control change, got team=%d player=%d", red.Stats.ControlChanges, r1.Stats.ControlGains)
	}
	if n := tm.SimLog().CountCategory("control", "gained"); n != 1 {
		t.Fatalf("expected one control log entry, got %d", n)
	}
}

func TestClosestToBall_TieGoesToFirstInRoster(t *testing.T) {
	tm := NewTestMatch(
		WithBallAt(0, 0),
		WithPlayerAt("R1", 0, 1),
		WithPlayerAt("R2", 0, -1),
	)
	red := tm.Red()
	red.computePlayerClosestToBall()
	if red.PlayerClosestToBall() != red.Players()[1] {
		t.Fatalf("expected R1 to win the tie, got %s", red.PlayerClosestToBall().Label)
	}
	if !approx(red.closestDistSq, 1) {
		t.Fatalf("expected closest distance² 1, got %v", red.closestDistSq)
	}
}

func TestClosestPlayerOnPitch_StrictlyCloser(t *testing.T) {
	tm := NewTestMatch(
		WithBallAt(0, 0),
		WithPlayerAt("R1", 0, 1),
		WithPlayerAt("B1", 0, -1),
	)
	tm.Red().computePlayerClosestToBall()
	tm.Blue().computePlayerClosestToBall()
	r1, b1 := tm.PlayerByLabel("R1"), tm.PlayerByLabel("B1")
	if !r1.IsClosestTeamMemberToBall() || !b1.IsClosestTeamMemberToBall() {
		t.Fatalf("expected R1 and B1 closest on their teams")
	}
	if r1.IsClosestPlayerOnPitchToBall() || b1.IsClosestPlayerOnPitchToBall() {
		t.Fatalf("expected a tie to leave nobody closest on the pitch")
	}
}

func TestIsOpponentWithinRadius_Inclusive(t *testing.T) {
	tm := NewTestMatch(
		WithPlayerAt("R1", 5, 0),
		WithPlayerAt("B1", 7, 0),
	)
	r1 := tm.PlayerByLabel("R1")
	if !tm.Red().IsOpponentWithinRadius(r1, 2) {
		t.Fatalf("expected an opponent exactly 2m away to count")
	}
	if tm.Red().IsOpponentWithinRadius(r1, 1.999) {
		t.Fatalf("expected no opponent within 1.999m")
	}
}

func TestAreAllPlayersAtHome(t *testing.T) {
	tm := NewTestMatch()
	if !tm.Red().AreAllPlayersAtHome() {
		t.Fatalf("expected freshly placed players to be home")
	}
	tm.PlayerByLabel("R3").PlaceAt(Vec2{-9, 7})
	if tm.Red().AreAllPlayersAtHome() {
		t.Fatalf("expected a displaced defender to break the check")
	}
}

func TestIsPassSafeFromOpponent(t *testing.T) {
	tm := NewTestMatch()
	red := tm.Red()
	opp := tm.PlayerByLabel("B1")
	recv := tm.PlayerByLabel("R1")
	from, target := Vec2{0, 0}, Vec2{5, 0}
	force := 3.0

	cases := []struct {
		name string
		opp  Vec2
		recv Vec2
		want bool
	}{
		{"behind kicker", Vec2{-2, 0}, Vec2{5, 0}, true},
		{"on the line", Vec2{2, 0}, Vec2{5, 0}, false},
		{"wide of the line", Vec2{2, 3}, Vec2{5, 0}, true},
		{"beyond target, nearer than receiver", Vec2{6, 0}, Vec2{3, 0}, false},
		{"beyond target, receiver nearer", Vec2{6, 0}, Vec2{5, 0.5}, true},
	}
	for _, c := range cases {
		opp.PlaceAt(c.opp)
		recv.PlaceAt(c.recv)
		if got := red.IsPassSafeFromOpponent(from, target, recv, opp, force); got != c.want {
			t.Fatalf("%s: expected safe=%t, got %t", c.name, c.want, got)
		}
	}
}

func TestCanShoot(t *testing.T) {
	var opts []SimOption
	for i := 0; i < teamSize; i++ {
		opts = append(opts, WithPlayerAt("B"+string(rune('0'+i)), 8, float64(i)-2))
	}
	tm := NewTestMatch(opts...)
	red := tm.Red()

	target, ok := red.CanShoot(Vec2{-6, 0}, 4)
	if !ok {
		t.Fatalf("expected an open shot with every defender behind the shooter")
	}
	if !approx(target.X, -10) || target.Y < -1.4 || target.Y > 1.4 {
		t.Fatalf("expected a target inside the blue goal mouth, got %+v", target)
	}
	if _, ok := red.CanShoot(Vec2{-6, 0}, 0.1); ok {
		t.Fatalf("expected a feeble kick not to reach the goal")
	}
}

func TestCanShoot_BlockedByWall(t *testing.T) {
	// Wall the blue goal mouth with defenders.
	tm := NewTestMatch(
		WithPlayerAt("B0", -9.6, 0),
		WithPlayerAt("B1", -9.6, -1),
		WithPlayerAt("B2", -9.6, 1),
		WithPlayerAt("B3", -9.6, -0.5),
		WithPlayerAt("B4", -9.6, 0.5),
	)
	if _, ok := tm.Red().CanShoot(Vec2{-9, 0}, 4); ok {
		t.Fatalf("expected a walled goal to leave no shot")
	}
}

func TestFindPass_RespectsMinimumDistance(t *testing.T) {
	var opts []SimOption
	for i := 0; i < teamSize; i++ {
		opts = append(opts, WithPlayerAt("B"+string(rune('0'+i)), 9, float64(i)-2))
	}
	opts = append(opts,
		WithBallAt(0, 0),
		WithPlayerAt("R1", 0, 0.2),
		WithPlayerAt("R2", -2, 0),
		WithPlayerAt("R3", -6, 3),
	)
	tm := NewTestMatch(opts...)
	red := tm.Red()
	passer := tm.PlayerByLabel("R1")

	receiver, target, ok := red.FindPass(passer, 3, 5)
	if !ok {
		t.Fatalf("expected a pass to be found")
	}
	if receiver == passer || receiver.Label == "R2" {
		t.Fatalf("expected a receiver at least 5m away, got %s", receiver.Label)
	}
	if !tm.Pitch().PlayingArea().Contains(target, RegionNormal) {
		t.Fatalf("expected the pass target on the pitch, got %+v", target)
	}
}

func TestDetermineBestSupportingAttacker(t *testing.T) {
	tm := NewTestMatch()
	red := tm.Red()
	r1 := red.Players()[1]
	red.SetControl(r1)
	best := red.DetermineBestSupportingAttacker()
	if best == nil || best.Role() != RoleAttacker || best == r1 {
		t.Fatalf("expected the other attacker, got %v", best)
	}
}
