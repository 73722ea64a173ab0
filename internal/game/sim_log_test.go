package game

import (
	"strings"
	"testing"
)

func TestSimLog_FilterAndCount(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "R1", "red", "kick", "pass", "toward (1.0, 2.0)", 3)
	sl.Add(2, "B2", "blue", "kick", "shot", "toward (-10.0, 0.0)", 4)
	sl.Add(3, "R1", "red", "control", "gained", "attacker", 0)
	sl.AddVerbose(3, "--", "--", "ball", "position", "(0.00, 0.00)", 0)

	if n := len(sl.Entries()); n != 3 {
		t.Fatalf("expected verbose entry dropped, got %d entries", n)
	}
	if n := sl.CountCategory("kick", ""); n != 2 {
		t.Fatalf("expected 2 kicks, got %d", n)
	}
	if n := sl.CountCategory("kick", "shot"); n != 1 {
		t.Fatalf("expected 1 shot, got %d", n)
	}
	if n := len(sl.FilterPlayer("R1")); n != 2 {
		t.Fatalf("expected 2 R1 entries, got %d", n)
	}
	if n := len(sl.FilterTickRange(2, 3)); n != 2 {
		t.Fatalf("expected 2 entries in ticks 2..3, got %d", n)
	}
	last, ok := sl.LastOf("kick", "")
	if !ok || last.Player != "B2" {
		t.Fatalf("expected last kick by B2, got %+v", last)
	}
	if !sl.HasEntry("kick", "", "-10.0") || sl.HasEntry("kick", "", "nowhere") {
		t.Fatalf("expected substring matching on value")
	}
	if !strings.Contains(sl.Format(), "[T=002] B2") {
		t.Fatalf("expected formatted lines, got:\n%s", sl.Format())
	}
}

func TestSimLog_Verbose(t *testing.T) {
	sl := NewSimLog(true)
	sl.AddVerbose(1, "--", "--", "ball", "position", "(0.00, 0.00)", 0)
	if len(sl.Entries()) != 1 {
		t.Fatalf("expected verbose entry kept")
	}
}

func TestSimLog_Summary(t *testing.T) {
	tm := NewTestMatch()
	tm.Red().SetControl(tm.PlayerByLabel("R2"))
	s := tm.SimLog().Summary(tm.Match)
	for _, want := range []string{"Score: red 0 - 0 blue", "Control: R2", "red (PrepareForKickOff)"} {
		if !strings.Contains(s, want) {
			t.Fatalf("expected %q in summary:\n%s", want, s)
		}
	}
}

func TestThoughtLog_RingBuffer(t *testing.T) {
	tl := NewThoughtLog()
	for i := 0; i < logMaxEntries+5; i++ {
		tl.Add(i, "R1", ColorRed, "thinking")
	}
	if tl.Len() != logMaxEntries {
		t.Fatalf("expected %d entries, got %d", logMaxEntries, tl.Len())
	}
	recent := tl.Recent()
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != logMaxEntries+4 {
		t.Fatalf("expected oldest tick 5 and newest %d, got %d..%d", logMaxEntries+4, recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestThink_Deduplicates(t *testing.T) {
	tm := NewTestMatch()
	p := tm.PlayerByLabel("B3")
	before := tm.Thoughts().Len()
	p.think("same thought")
	p.think("same thought")
	p.think("another")
	if got := tm.Thoughts().Len() - before; got != 2 {
		t.Fatalf("expected 2 new thoughts, got %d", got)
	}
}
