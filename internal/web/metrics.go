package web

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"kanban-cli/internal/viewsync"
)

// Metrics tracks intent traffic and board size for one server.
type Metrics struct {
	Intents        *prometheus.CounterVec
	IntentDuration prometheus.Histogram
	DragCommits    *prometheus.CounterVec
	BoardSize      *prometheus.GaugeVec
}

// NewMetrics registers the server metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Intents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kanban_intents_total",
			Help: "Intents received, by type and outcome",
		}, []string{"type", "outcome"}),
		IntentDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "kanban_intent_duration_seconds",
			Help:    "Time to apply and persist one intent",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}),
		DragCommits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "kanban_drag_commits_total",
			Help: "Finished drags, by subject kind and how they ended",
		}, []string{"kind", "how"}),
		BoardSize: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kanban_board_entities",
			Help: "Visible entities on the board after the last intent",
		}, []string{"entity"}),
	}
}

// ObserveIntent records one intent. Call with time.Now() taken before applying it.
func (m *Metrics) ObserveIntent(typ, outcome string, start time.Time) {
	m.Intents.WithLabelValues(typ, outcome).Inc()
	m.IntentDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveDrag(kind, how string) {
	m.DragCommits.WithLabelValues(kind, how).Inc()
}

func (m *Metrics) ObserveBoard(snap viewsync.Snapshot) {
	cards := 0
	for _, l := range snap.Lists {
		cards += len(l.Cards)
	}
	m.BoardSize.WithLabelValues("lists").Set(float64(len(snap.Lists)))
	m.BoardSize.WithLabelValues("cards").Set(float64(cards))
	m.BoardSize.WithLabelValues("categories").Set(float64(len(snap.Categories)))
}
