package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TeamReport is one side's match totals.
type TeamReport struct {
	Color          TeamColor `json:"-"`
	Name           string    `json:"color"`
	Goals          int       `json:"goals"`
	Shots          int       `json:"shots"`
	Passes         int       `json:"passes"`
	Clearances     int       `json:"clearances"`
	ControlChanges int       `json:"control_changes"`
	PossessionPct  float64   `json:"possession_pct"`
}

// PlayerGrade scores one player's contribution on a 0-100 scale.
type PlayerGrade struct {
	Label  string      `json:"label"`
	Team   TeamColor   `json:"-"`
	Role   Role        `json:"-"`
	Score  float64     `json:"score"`
	Grade  string      `json:"grade"`
	Stats  PlayerStats `json:"stats"`
	Traits []string    `json:"traits,omitempty"`
}

// MatchReport summarises a finished (or paused) match.
type MatchReport struct {
	MatchID string        `json:"match_id"`
	Seed    int64         `json:"seed"`
	Ticks   int           `json:"ticks"`
	Seconds float64       `json:"seconds"`
	Red     TeamReport    `json:"red"`
	Blue    TeamReport    `json:"blue"`
	Grades  []PlayerGrade `json:"grades"`
	Events  int           `json:"events"`
}

// BuildReport collects team totals and player grades from m.
func BuildReport(m *Match) MatchReport {
	r := MatchReport{
		MatchID: m.ID,
		Seed:    m.seed,
		Ticks:   m.tick,
		Seconds: float64(m.tick) * m.cfg.TickDuration(),
		Red:     teamReport(m.red),
		Blue:    teamReport(m.blue),
		Events:  len(m.log.Entries()),
	}
	possession := m.red.Stats.PossessionTicks + m.blue.Stats.PossessionTicks
	if possession > 0 {
		r.Red.PossessionPct = float64(m.red.Stats.PossessionTicks) / float64(possession) * 100
		r.Blue.PossessionPct = float64(m.blue.Stats.PossessionTicks) / float64(possession) * 100
	}
	for _, p := range m.Players() {
		r.Grades = append(r.Grades, gradePlayer(p, r.Seconds))
	}
	sort.SliceStable(r.Grades, func(i, j int) bool {
		if r.Grades[i].Team != r.Grades[j].Team {
			return r.Grades[i].Team < r.Grades[j].Team
		}
		return r.Grades[i].Score > r.Grades[j].Score
	})
	return r
}

func teamReport(t *Team) TeamReport {
	return TeamReport{
		Color:          t.Color,
		Name:           t.Color.String(),
		Goals:          t.Stats.Goals,
		Shots:          t.Stats.Shots,
		Passes:         t.Stats.Passes,
		Clearances:     t.Stats.Clearances,
		ControlChanges: t.Stats.ControlChanges,
	}
}

// Winner is "red", "blue" or "draw".
func (r MatchReport) Winner() string {
	switch {
	case r.Red.Goals > r.Blue.Goals:
		return ColorRed.String()
	case r.Blue.Goals > r.Red.Goals:
		return ColorBlue.String()
	default:
		return "draw"
	}
}

func gradePlayer(p *Player, seconds float64) PlayerGrade {
	s := p.Stats
	g := PlayerGrade{Label: p.Label, Team: p.team.Color, Role: p.role, Stats: s}
	conceded := p.team.opposingTeam.Stats.Goals

	score := 50.0
	switch p.role {
	case RoleGoalkeeper:
		score += 8*float64(s.Saves) + 2*float64(s.Passes) - 6*float64(conceded)
	case RoleAttacker:
		score += 12*float64(s.Goals) + 3*float64(s.Shots) + 2*float64(s.Passes) +
			1.5*float64(s.Receptions) + float64(s.ControlGains)
	case RoleDefender:
		score += 5*float64(s.Goals) + 2*float64(s.Passes) + 2*float64(s.ControlGains) +
			1.5*float64(s.Receptions) - 2*float64(conceded)
	}
	// Work rate: up to 10 points for covering ground.
	if seconds > 0 {
		score += math.Min(10, s.Distance/seconds*10)
	}
	g.Score = perfClamp(score)
	g.Grade = PerfLetterGrade(g.Score)

	if s.Goals > 0 {
		g.Traits = append(g.Traits, "finisher")
	}
	if s.Passes >= 5 {
		g.Traits = append(g.Traits, "playmaker")
	}
	if s.ControlGains >= 5 && p.role != RoleGoalkeeper {
		g.Traits = append(g.Traits, "ball winner")
	}
	if p.role == RoleAttacker && s.Shots == 0 && seconds >= 60 {
		g.Traits = append(g.Traits, "shot-shy")
	}
	if p.role == RoleGoalkeeper && conceded >= 3 {
		g.Traits = append(g.Traits, "leaky")
	}
	if seconds >= 30 && s.Distance < 0.1*seconds {
		g.Traits = append(g.Traits, "static")
	}
	return g
}

// Format returns a human-readable report.
func (r MatchReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Match %s ===\n", r.MatchID)
	fmt.Fprintf(&sb, "seed=%d  ticks=%d  time=%.0fs  events=%d\n", r.Seed, r.Ticks, r.Seconds, r.Events)
	fmt.Fprintf(&sb, "Score: red %d - %d blue  (%s)\n", r.Red.Goals, r.Blue.Goals, r.Winner())
	for _, t := range []TeamReport{r.Red, r.Blue} {
		fmt.Fprintf(&sb, "  %-4s possession=%.0f%%  shots=%d  passes=%d  clearances=%d  control_changes=%d\n",
			strings.ToUpper(t.Name), t.PossessionPct, t.Shots, t.Passes, t.Clearances, t.ControlChanges)
	}

	sb.WriteString("\n=== Player Grades ===\n")
	currentTeam := TeamColor(-1)
	for _, g := range r.Grades {
		if g.Team != currentTeam {
			currentTeam = g.Team
			fmt.Fprintf(&sb, "\n--- %s Team ---\n", strings.ToUpper(g.Team.String()))
		}
		fmt.Fprintf(&sb, "  %-3s  %-3s  %-10s  score=%.0f  goals=%d shots=%d passes=%d recv=%d won=%d saves=%d dist=%.0fm\n",
			g.Grade, g.Label, g.Role, g.Score, g.Stats.Goals, g.Stats.Shots, g.Stats.Passes,
			g.Stats.Receptions, g.Stats.ControlGains, g.Stats.Saves, g.Stats.Distance)
		if len(g.Traits) > 0 {
			fmt.Fprintf(&sb, "       Traits: %s\n", strings.Join(g.Traits, ", "))
		}
	}
	return sb.String()
}

// TeamAverage is the mean player score for color.
func (r MatchReport) TeamAverage(color TeamColor) float64 {
	sum, n := 0.0, 0
	for _, g := range r.Grades {
		if g.Team == color {
			sum += g.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}
