package game

import (
	"strings"
	"testing"
)

func TestPerfLetterGrade(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A+"}, {93, "A+"}, {92.9, "A"}, {85, "A"}, {78, "B+"}, {70, "B"},
		{62, "C+"}, {55, "C"}, {45, "D"}, {44.9, "F"}, {0, "F"},
	}
	for _, c := range cases {
		if got := PerfLetterGrade(c.score); got != c.want {
			t.Fatalf("expected %s for %.1f, got %s", c.want, c.score, got)
		}
	}
}

func TestPerfClamp(t *testing.T) {
	if perfClamp(-5) != 0 || perfClamp(120) != 100 || perfClamp(42) != 42 {
		t.Fatalf("expected scores clamped to [0,100]")
	}
}

func TestBuildReport_AfterGoal(t *testing.T) {
	tm := NewTestMatch(
		WithKickOffDone(),
		WithBallAt(-9.0, 0),
		WithPlayerAt("R1", -8.0, 0),
		WithPlayerAt("B0", -9.9, 5),
	)
	r1 := tm.PlayerByLabel("R1")
	r1.kickBall(Vec2{-10, 0}, 4, KickShot)
	tm.RunTicks(120)

	r := BuildReport(tm.Match)
	if r.Red.Goals != 1 || r.Blue.Goals != 0 {
		t.Fatalf("expected 1-0, got %d-%d", r.Red.Goals, r.Blue.Goals)
	}
	if r.Winner() != "red" {
		t.Fatalf("expected red to win, got %s", r.Winner())
	}
	if r.Ticks != 120 || !approx(r.Seconds, 2) {
		t.Fatalf("expected 120 ticks / 2s, got %d / %.2f", r.Ticks, r.Seconds)
	}
	if len(r.Grades) != 10 {
		t.Fatalf("expected 10 grades, got %d", len(r.Grades))
	}
	for i := 0; i < 5; i++ {
		if r.Grades[i].Team != ColorRed {
			t.Fatalf("expected red grades first")
		}
		if i > 0 && r.Grades[i].Score > r.Grades[i-1].Score {
			t.Fatalf("expected red grades sorted by score")
		}
	}
	var scorer *PlayerGrade
	for i := range r.Grades {
		if r.Grades[i].Label == "R1" {
			scorer = &r.Grades[i]
		}
	}
	if scorer == nil || scorer.Stats.Goals != 1 {
		t.Fatalf("expected R1 graded with one goal")
	}
	hasFinisher := false
	for _, tr := range scorer.Traits {
		if tr == "finisher" {
			hasFinisher = true
		}
	}
	if !hasFinisher {
		t.Fatalf("expected R1 to be marked a finisher, got %v", scorer.Traits)
	}

	text := r.Format()
	for _, want := range []string{"Score: red 1 - 0 blue", "--- RED Team ---", "--- BLUE Team ---", "Traits: finisher"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in report:\n%s", want, text)
		}
	}
}

func TestBuildReport_PossessionSplit(t *testing.T) {
	tm := NewTestMatch(WithSeed(3))
	tm.RunTicks(1800)
	r := BuildReport(tm.Match)
	total := r.Red.PossessionPct + r.Blue.PossessionPct
	if total != 0 && !approx(total, 100) {
		t.Fatalf("expected possession to split 100%%, got %.2f", total)
	}
	if r.TeamAverage(ColorRed) < 0 || r.TeamAverage(ColorRed) > 100 {
		t.Fatalf("expected team average within [0,100], got %.1f", r.TeamAverage(ColorRed))
	}
}

func TestGradePlayer_KeeperPenalisedForConceding(t *testing.T) {
	tm := NewTestMatch()
	keeper := tm.Red().Goalkeeper()
	base := gradePlayer(keeper, 0).Score
	tm.Blue().Stats.Goals = 3
	g := gradePlayer(keeper, 0)
	if g.Score >= base {
		t.Fatalf("expected conceding to lower the keeper's score, %.1f vs %.1f", g.Score, base)
	}
	leaky := false
	for _, tr := range g.Traits {
		if tr == "leaky" {
			leaky = true
		}
	}
	if !leaky {
		t.Fatalf("expected a leaky trait after conceding 3, got %v", g.Traits)
	}
}

func TestReport_DrawWinner(t *testing.T) {
	if (MatchReport{}).Winner() != "draw" {
		t.Fatalf("expected a goalless report to be a draw")
	}
}
