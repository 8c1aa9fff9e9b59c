// Package metrics exports match counters in the Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tomz197/smashtennis/internal/loop/match"
)

// Metrics holds the collectors of one registry.
type Metrics struct {
	reg *prometheus.Registry

	MatchesStarted  prometheus.Counter
	MatchesFinished *prometheus.CounterVec
	Points          *prometheus.CounterVec
	Smashes         *prometheus.CounterVec
	Hits            prometheus.Counter
	SmashPower      prometheus.Histogram
	Sessions        prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		MatchesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tennis",
			Name:      "matches_started_total",
			Help:      "Matches started from the idle phase.",
		}),
		MatchesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tennis",
			Name:      "matches_finished_total",
			Help:      "Matches played to the winning score, by winner.",
		}, []string{"winner"}),
		Points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tennis",
			Name:      "points_total",
			Help:      "Points scored, by scoring side.",
		}, []string{"side"}),
		Smashes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tennis",
			Name:      "smashes_total",
			Help:      "Smashes executed, by side.",
		}, []string{"side"}),
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tennis",
			Name:      "paddle_hits_total",
			Help:      "Paddle contacts of either side.",
		}),
		SmashPower: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tennis",
			Name:      "smash_power",
			Help:      "Power multiplier of executed smashes.",
			Buckets:   []float64{1.2, 1.4, 1.6, 1.8, 2.0, 2.2},
		}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tennis",
			Name:      "sessions",
			Help:      "Connected game sessions.",
		}),
	}
	m.reg.MustRegister(
		m.MatchesStarted, m.MatchesFinished, m.Points, m.Smashes,
		m.Hits, m.SmashPower, m.Sessions,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Listener returns a match listener feeding the counters.
func (m *Metrics) Listener() match.Listener {
	return match.ListenerFunc(m.observe)
}

func (m *Metrics) observe(e match.Event) {
	switch e.Kind {
	case match.EventStarted:
		m.MatchesStarted.Inc()
	case match.EventHit:
		m.Hits.Inc()
	case match.EventSmash:
		m.Smashes.WithLabelValues(e.Side.String()).Inc()
		m.SmashPower.Observe(e.Power)
	case match.EventPoint:
		m.Points.WithLabelValues(e.Side.String()).Inc()
	case match.EventGameOver:
		m.MatchesFinished.WithLabelValues(e.Side.String()).Inc()
	}
}

// SessionStarted and SessionEnded track the sessions gauge.
func (m *Metrics) SessionStarted() { m.Sessions.Inc() }
func (m *Metrics) SessionEnded()   { m.Sessions.Dec() }
