package metrics

import "time"

// ObserveResolution records a successful cold-start resolution.
func ObserveResolution(kind, strategy string, d time.Duration) {
	resolutionTime.WithLabelValues(kind, strategy).Observe(d.Seconds())
}

// ObserveFailure counts a failed resolution; errKind is the runtime error kind.
func ObserveFailure(errKind string) {
	if errKind == "" {
		errKind = "unknown"
	}
	resolutionFailures.WithLabelValues(errKind).Inc()
}

// ObserveHandleResolution matches construct.ResolveHook once the strategy
// kind is converted to a string.
func ObserveHandleResolution(strategy, _ string) {
	handleResolutions.WithLabelValues(strategy).Inc()
}

func ObserveInvocation(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	invocations.WithLabelValues(kind, outcome).Inc()
}
