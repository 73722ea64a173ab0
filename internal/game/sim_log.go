package game

import (
	"fmt"
	"sort"
	"strings"
)

// SimLogEntry is one recorded match event.
type SimLogEntry struct {
	Tick     int     `json:"tick"`
	Player   string  `json:"player"`   // label e.g. "R0", "B3", or "--" for global events
	Team     string  `json:"team"`     // "red", "blue", or "--"
	Category string  `json:"category"` // goal, kick, control, state, team, keeper, match, msg, ball
	Key      string  `json:"key"`      // specific event name within the category
	Value    string  `json:"value"`    // human-readable detail
	NumVal   float64 `json:"num"`      // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] R1   state     change           Wait → ChaseBall
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Player, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a match.
// Unlike ThoughtLog (UI ring-buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick ball positions,
// dribble touches and telegrams are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, player, team, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Player:   player,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, player, team, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, player, team, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterPlayer returns entries for a specific player label.
func (sl *SimLog) FilterPlayer(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Player == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the match state.
func (sl *SimLog) Summary(m *Match) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", m.Tick())
	red, blue := m.Score()
	fmt.Fprintf(&sb, "Score: red %d - %d blue\n", red, blue)

	for _, t := range m.Teams() {
		states := map[string]int{}
		for _, p := range t.Players() {
			states[p.StateName()]++
		}
		names := make([]string, 0, len(states))
		for name := range states {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "%s (%s): ", t.Color, t.StateName())
		for _, name := range names {
			fmt.Fprintf(&sb, "%s=%d  ", name, states[name])
		}
		sb.WriteByte('\n')
	}

	switch {
	case m.Red().InControl():
		fmt.Fprintf(&sb, "Control: %s\n", m.Red().ControllingPlayer().Label)
	case m.Blue().InControl():
		fmt.Fprintf(&sb, "Control: %s\n", m.Blue().ControllingPlayer().Label)
	default:
		sb.WriteString("Control: loose ball\n")
	}
	fmt.Fprintf(&sb, "Kicks: %d  Goals: %d  Control changes: %d\n",
		sl.CountCategory("kick", ""), sl.CountCategory("goal", ""), sl.CountCategory("control", ""))
	return sb.String()
}
