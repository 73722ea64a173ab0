package game

import (
	"fmt"
	"sort"
	"strings"
)

// debugReportTicks is the default window of a player debug report (~10s).
const debugReportTicks = 600

// maxReportEvents caps the event listing of a player debug report.
const maxReportEvents = 20

// stateSpan is an inclusive tick range a player spent in one state.
type stateSpan struct {
	name     string
	from, to int
}

func (s stateSpan) ticks() int { return s.to - s.from + 1 }

// stateSpans rebuilds a player's state timeline over [fromTick, toTick] from
// its state-change entries. current names the state to assume when the log
// has no changes at all.
func stateSpans(entries []SimLogEntry, fromTick, toTick int, current string) []stateSpan {
	var spans []stateSpan
	cur := ""
	start := fromTick
	for _, e := range entries {
		if e.Category != "state" || e.Key != "change" {
			continue
		}
		prev, next, ok := strings.Cut(e.Value, " → ")
		if !ok {
			continue
		}
		if cur == "" {
			cur = prev
		}
		if e.Tick < fromTick {
			cur = next
			continue
		}
		if e.Tick > toTick {
			break
		}
		if e.Tick > start {
			spans = append(spans, stateSpan{name: cur, from: start, to: e.Tick - 1})
		}
		cur, start = next, e.Tick
	}
	if cur == "" {
		cur = current
	}
	if start <= toTick {
		spans = append(spans, stateSpan{name: cur, from: start, to: toTick})
	}
	return spans
}

// PlayerDebugReport describes what p did over the last lastTicks ticks: a
// state timeline, the time spent per state and the events it was part of.
func PlayerDebugReport(m *Match, p *Player, lastTicks int) string {
	if p == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = debugReportTicks
	}
	toTick := m.tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Soccer Sense player report ---\n")
	fmt.Fprintf(&b, "match=%s seed=%d tick_range=[%d..%d] ticks=%d\n", m.ID, m.seed, fromTick, toTick, toTick-fromTick+1)
	pos := p.Position()
	fmt.Fprintf(&b, "player=%s team=%s role=%s state=%s home=%d pos=(%.1f,%.1f)\n",
		p.Label, p.team.Color, p.role, p.StateName(), p.homeRegion, pos.X, pos.Y)
	fmt.Fprintf(&b, "duty=%s team_state=%s\n\n", roleDuty(p), p.team.StateName())

	own := m.log.FilterPlayer(p.Label)
	spans := stateSpans(own, fromTick, toTick, p.StateName())

	b.WriteString("== Timeline ==\n")
	for _, s := range spans {
		fmt.Fprintf(&b, "  [%d..%d] %s (%d ticks)\n", s.from, s.to, s.name, s.ticks())
	}

	b.WriteString("\n== Time per state ==\n")
	perState := map[string]int{}
	for _, s := range spans {
		perState[s.name] += s.ticks()
	}
	names := make([]string, 0, len(perState))
	for name := range perState {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if perState[names[i]] != perState[names[j]] {
			return perState[names[i]] > perState[names[j]]
		}
		return names[i] < names[j]
	})
	span := toTick - fromTick + 1
	for _, name := range names {
		fmt.Fprintf(&b, "  %-18s %5d  %3.0f%%\n", name, perState[name], float64(perState[name])/float64(span)*100)
	}

	b.WriteString("\n== Events ==\n")
	var events []SimLogEntry
	for _, e := range own {
		if e.Tick < fromTick || e.Tick > toTick || e.Category == "state" {
			continue
		}
		events = append(events, e)
	}
	if len(events) == 0 {
		b.WriteString("  (none)\n")
	}
	if len(events) > maxReportEvents {
		fmt.Fprintf(&b, "  ... %d earlier events\n", len(events)-maxReportEvents)
		events = events[len(events)-maxReportEvents:]
	}
	for _, e := range events {
		b.WriteString("  " + e.String() + "\n")
	}

	s := p.Stats
	fmt.Fprintf(&b, "\nmatch totals: goals=%d shots=%d passes=%d recv=%d won=%d saves=%d dist=%.0fm\n",
		s.Goals, s.Shots, s.Passes, s.Receptions, s.ControlGains, s.Saves, s.Distance)
	return b.String()
}
