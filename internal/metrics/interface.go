package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesOpened()
	IncMatchesFinalized()
	IncStatsLogged()
	IncSubstitutions()
	IncAutosaves()
	IncAutosaveFailures()
	ObserveFinalizeDuration(duration float64)
	IncNotifSent()
	IncNotifFailed()
	SetStartupTime(duration float64)
}
