package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/Garsondee/Soccer-Sense/internal/config"
	"github.com/Garsondee/Soccer-Sense/internal/game"
	"github.com/fatih/color"
	"github.com/panjf2000/ants/v2"
)

type runStats struct {
	runIndex int
	seed     int64
	matchID  string

	kickOffTick   int
	firstShotTick int
	firstGoalTick int

	stateChanges   int
	teamChanges    int
	controlChanges int
	keeperTakes    int
	kicks          map[string]int

	report game.MatchReport
	err    error
}

var (
	header   = color.New(color.FgCyan, color.Bold)
	redText  = color.New(color.FgRed, color.Bold)
	blueText = color.New(color.FgBlue, color.Bold)
	dimText  = color.New(color.Faint)
)

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var workers int
	var configPath string
	var noColor bool

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "matches simulated in parallel")
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.BoolVar(&noColor, "no-color", false, "disable coloured output")
	flag.Parse()

	if noColor {
		color.NoColor = true
	}
	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	if workers <= 0 {
		workers = 1
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	header.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d workers=%d\n\n", runs, ticks, seedBase, seedStep, workers)

	all, err := runAll(cfg, runs, ticks, seedBase, seedStep, workers)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs)
	}
	printAggregate(all)
}

// runAll simulates every run on an ants pool and returns the results in run
// order.
func runAll(cfg config.Config, runs, ticks int, seedBase, seedStep int64, workers int) ([]runStats, error) {
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	all := make([]runStats, runs)
	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					all[i] = runStats{runIndex: i + 1, seed: seed, err: fmt.Errorf("panic: %v", r)}
				}
			}()
			all[i] = runMatch(cfg, i+1, seed, ticks)
		})
		if submitErr != nil {
			wg.Done()
			all[i] = runStats{runIndex: i + 1, seed: seed, err: submitErr}
		}
	}
	wg.Wait()
	return all, nil
}

func runMatch(cfg config.Config, runIndex int, seed int64, ticks int) runStats {
	tm := game.NewTestMatch(game.WithConfig(cfg), game.WithSeed(seed))
	tm.RunTicks(ticks)

	log := tm.SimLog()
	entries := log.Entries()
	kicks := map[string]int{}
	for _, e := range entries {
		if e.Category == "kick" {
			kicks[e.Key]++
		}
	}
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		matchID:        tm.ID,
		kickOffTick:    firstTick(entries, "match", "kick_off", ""),
		firstShotTick:  firstTick(entries, "kick", "shot", ""),
		firstGoalTick:  firstTick(entries, "goal", "scored", ""),
		stateChanges:   log.CountCategory("state", "change"),
		teamChanges:    log.CountCategory("team", "state"),
		controlChanges: log.CountCategory("control", "gained"),
		keeperTakes:    log.CountCategory("keeper", "take_ball"),
		kicks:          kicks,
		report:         game.BuildReport(tm.Match),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	header.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	if rs.err != nil {
		redText.Printf("failed: %v\n\n", rs.err)
		return
	}
	dimText.Printf("match=%s\n", rs.matchID)
	r := rs.report
	fmt.Printf("score: %s %d - %d %s  winner=%s\n",
		redText.Sprint("RED"), r.Red.Goals, r.Blue.Goals, blueText.Sprint("BLUE"), winnerString(r.Winner()))
	fmt.Printf("phase_markers: kick_off=%d first_shot=%d first_goal=%d\n",
		rs.kickOffTick, rs.firstShotTick, rs.firstGoalTick)
	fmt.Printf("event_totals: state_change=%d team_state=%d control_gained=%d keeper_take=%d\n",
		rs.stateChanges, rs.teamChanges, rs.controlChanges, rs.keeperTakes)
	fmt.Printf("kicks: %s\n", joinCounts(rs.kicks))
	if stale, reason := detectStalemate(rs); stale {
		color.Yellow("stalemate: %s", reason)
	}
	fmt.Print(r.Format())
	fmt.Println()
}

func winnerString(w string) string {
	switch w {
	case game.ColorRed.String():
		return redText.Sprint(w)
	case game.ColorBlue.String():
		return blueText.Sprint(w)
	default:
		return w
	}
}

// detectStalemate flags a run where neither side threatened: no goals and
// hardly any shots over a meaningful stretch of play.
func detectStalemate(rs runStats) (bool, string) {
	r := rs.report
	if r.Red.Goals+r.Blue.Goals > 0 {
		return false, "goals_scored"
	}
	if r.Seconds < 30 {
		return false, "too_short"
	}
	shots := r.Red.Shots + r.Blue.Shots
	perMinute := float64(shots) / (r.Seconds / 60)
	if perMinute >= 1 {
		return false, fmt.Sprintf("shots_per_minute=%.1f", perMinute)
	}
	return true, fmt.Sprintf("goalless with shots_per_minute=%.1f", perMinute)
}

// teamResults counts wins per colour and draws.
func teamResults(all []runStats) (redWins, blueWins, draws int) {
	for _, rs := range all {
		if rs.err != nil {
			continue
		}
		switch rs.report.Winner() {
		case game.ColorRed.String():
			redWins++
		case game.ColorBlue.String():
			blueWins++
		default:
			draws++
		}
	}
	return redWins, blueWins, draws
}

func printAggregate(all []runStats) {
	completed := 0
	totalGoals := 0
	totalShots := 0
	totalPasses := 0
	totalControl := 0
	totalKeeper := 0
	stalemates := 0
	kickOffTicks := make([]int, 0, len(all))
	goalTicks := make([]int, 0, len(all))

	type playerAgg struct {
		scoreSum float64
		count    int
		goals    int
		traits   map[string]int
	}
	playerAggs := map[string]*playerAgg{}

	for _, rs := range all {
		if rs.err != nil {
			continue
		}
		completed++
		r := rs.report
		totalGoals += r.Red.Goals + r.Blue.Goals
		totalShots += r.Red.Shots + r.Blue.Shots
		totalPasses += r.Red.Passes + r.Blue.Passes
		totalControl += rs.controlChanges
		totalKeeper += rs.keeperTakes
		if stale, _ := detectStalemate(rs); stale {
			stalemates++
		}
		if rs.kickOffTick >= 0 {
			kickOffTicks = append(kickOffTicks, rs.kickOffTick)
		}
		if rs.firstGoalTick >= 0 {
			goalTicks = append(goalTicks, rs.firstGoalTick)
		}
		for _, g := range r.Grades {
			ag, ok := playerAggs[g.Label]
			if !ok {
				ag = &playerAgg{traits: map[string]int{}}
				playerAggs[g.Label] = ag
			}
			ag.scoreSum += g.Score
			ag.count++
			ag.goals += g.Stats.Goals
			for _, t := range g.Traits {
				ag.traits[t]++
			}
		}
	}

	header.Println("=== Aggregate ===")
	fmt.Printf("runs=%d completed=%d stalemates=%d\n", len(all), completed, stalemates)
	redWins, blueWins, draws := teamResults(all)
	fmt.Printf("results: %s=%d %s=%d draw=%d\n", redText.Sprint("red"), redWins, blueText.Sprint("blue"), blueWins, draws)
	fmt.Printf("avg_per_run: goals=%.1f shots=%.1f passes=%.1f control_gained=%.1f keeper_take=%.1f\n",
		avg(totalGoals, completed), avg(totalShots, completed), avg(totalPasses, completed),
		avg(totalControl, completed), avg(totalKeeper, completed))
	fmt.Printf("phase_marker_avg_ticks: kick_off=%s first_goal=%s\n",
		avgTickString(kickOffTicks), avgTickString(goalTicks))

	header.Println("\n=== Aggregate Player Performance ===")
	labels := make([]string, 0, len(playerAggs))
	for label := range playerAggs {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		ag := playerAggs[label]
		avgS := 0.0
		if ag.count > 0 {
			avgS = ag.scoreSum / float64(ag.count)
		}
		fmt.Printf("  %s  %-2s (avg=%.1f)  goals=%d", label, game.PerfLetterGrade(avgS), avgS, ag.goals)
		if top := topTrait(ag.traits); top != "" {
			fmt.Printf("  trait=%s", top)
		}
		fmt.Println()
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func topTrait(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	best := ""
	bestN := 0
	for k, v := range counts {
		if v > bestN || (v == bestN && k < best) {
			best = k
			bestN = v
		}
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}
