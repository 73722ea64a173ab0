// Package metrics exposes match events as Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/Garsondee/Soccer-Sense/internal/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts goals, kicks, control changes and ticks. It implements
// game.EventSink and owns a private registry so several recorders can live
// in one process (tests, batch runs).
type Recorder struct {
	reg *prometheus.Registry

	ticks          prometheus.Counter
	goals          *prometheus.CounterVec
	kicks          *prometheus.CounterVec
	controlChanges *prometheus.CounterVec
	score          *prometheus.GaugeVec
}

var _ game.EventSink = (*Recorder)(nil)

// New registers the soccer collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "soccer_ticks_total",
			Help: "Simulation ticks completed.",
		}),
		goals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soccer_goals_total",
			Help: "Goals scored, by scoring team.",
		}, []string{"team"}),
		kicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soccer_kicks_total",
			Help: "Kicks taken, by team and kind.",
		}, []string{"team", "kind"}),
		controlChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "soccer_control_changes_total",
			Help: "Times a team gained a new controlling player.",
		}, []string{"team"}),
		score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "soccer_score",
			Help: "Current goals per team.",
		}, []string{"team"}),
	}
	r.reg.MustRegister(r.ticks, r.goals, r.kicks, r.controlChanges, r.score)
	return r
}

// Registry is the underlying registry, for gathering in tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *Recorder) OnTick(int) { r.ticks.Inc() }

func (r *Recorder) OnKick(team game.TeamColor, kind game.KickKind) {
	r.kicks.WithLabelValues(team.String(), kind.String()).Inc()
}

func (r *Recorder) OnControlChange(team game.TeamColor) {
	r.controlChanges.WithLabelValues(team.String()).Inc()
}

func (r *Recorder) OnGoal(scorer game.TeamColor, red, blue int) {
	r.goals.WithLabelValues(scorer.String()).Inc()
	r.score.WithLabelValues(game.ColorRed.String()).Set(float64(red))
	r.score.WithLabelValues(game.ColorBlue.String()).Set(float64(blue))
}
