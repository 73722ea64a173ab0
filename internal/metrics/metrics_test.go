package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Garsondee/Soccer-Sense/internal/game"
)

func scrape(t *testing.T, r *Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}
	return string(body)
}

func TestRecorder_CountsEvents(t *testing.T) {
	r := New()
	r.OnTick(1)
	r.OnTick(2)
	r.OnKick(game.ColorRed, game.KickPass)
	r.OnKick(game.ColorRed, game.KickPass)
	r.OnKick(game.ColorBlue, game.KickShot)
	r.OnControlChange(game.ColorBlue)
	r.OnGoal(game.ColorBlue, 0, 1)

	body := scrape(t, r)
	for _, want := range []string{
		"soccer_ticks_total 2",
		`soccer_kicks_total{kind="pass",team="red"} 2`,
		`soccer_kicks_total{kind="shot",team="blue"} 1`,
		`soccer_control_changes_total{team="blue"} 1`,
		`soccer_goals_total{team="blue"} 1`,
		`soccer_score{team="blue"} 1`,
		`soccer_score{team="red"} 0`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in exposition, got:\n%s", want, body)
		}
	}
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.OnTick(1)
	if body := scrape(t, b); !strings.Contains(body, "soccer_ticks_total 0") {
		t.Fatalf("expected independent registries, got:\n%s", body)
	}
}

func TestRecorder_GatherFamilies(t *testing.T) {
	r := New()
	r.OnKick(game.ColorRed, game.KickClearance)
	mfs, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "soccer_kicks_total" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected soccer_kicks_total to be gathered")
	}
}

func TestRecorder_DrivenByMatch(t *testing.T) {
	r := New()
	tm := game.NewTestMatch(game.WithSink(r))
	tm.RunTicks(30)
	if body := scrape(t, r); !strings.Contains(body, "soccer_ticks_total 30") {
		t.Fatalf("expected 30 ticks recorded, got:\n%s", body)
	}
}
