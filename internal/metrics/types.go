package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MatchesOpened      prometheus.Counter
	MatchesFinalized   prometheus.Counter
	StatsLogged        prometheus.Counter
	Substitutions      prometheus.Counter
	Autosaves          prometheus.Counter
	AutosaveFailures   prometheus.Counter
	FinalizeDuration   prometheus.Histogram
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
