package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_matches_opened_total",
			Help: "The total number of live match sessions opened.",
		}),
		MatchesFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_matches_finalized_total",
			Help: "The total number of matches finalized.",
		}),
		StatsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_stats_logged_total",
			Help: "The total number of stat events logged during live matches.",
		}),
		Substitutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_substitutions_total",
			Help: "The total number of substitutions recorded.",
		}),
		Autosaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_autosaves_total",
			Help: "The total number of successful live-state autosaves.",
		}),
		AutosaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_autosave_failures_total",
			Help: "The total number of autosaves that failed to persist.",
		}),
		FinalizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchday_finalize_duration_seconds",
			Help:    "The duration of match finalization.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesOpened,
		s.MatchesFinalized,
		s.StatsLogged,
		s.Substitutions,
		s.Autosaves,
		s.AutosaveFailures,
		s.FinalizeDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesOpened() {
	s.MatchesOpened.Inc()
}

func (s *Service) IncMatchesFinalized() {
	s.MatchesFinalized.Inc()
}

func (s *Service) IncStatsLogged() {
	s.StatsLogged.Inc()
}

func (s *Service) IncSubstitutions() {
	s.Substitutions.Inc()
}

func (s *Service) IncAutosaves() {
	s.Autosaves.Inc()
}

func (s *Service) IncAutosaveFailures() {
	s.AutosaveFailures.Inc()
}

func (s *Service) ObserveFinalizeDuration(duration float64) {
	s.FinalizeDuration.Observe(duration)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
