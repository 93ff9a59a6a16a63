package reflux

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key store events.
type MetricsProvider interface {
	// OnDispatch is called after an action is successfully applied.
	// Duration is the time taken to run the pipeline and notify subscribers.
	OnDispatch(tag string, duration time.Duration)

	// OnDispatchFailure is called when a dispatch fails at any stage.
	// Stage indicates where the failure occurred: "pipeline", "validate",
	// or "persist".
	OnDispatchFailure(tag string, stage string, duration time.Duration)

	// OnThunk is called after a thunk completes, successfully or not.
	OnThunk(duration time.Duration)

	// OnNotify is called after subscribers are notified of a new state.
	OnNotify(subscribers int)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnDispatch(_ string, _ time.Duration)            {}
func (NoOpMetricsProvider) OnDispatchFailure(_, _ string, _ time.Duration)  {}
func (NoOpMetricsProvider) OnThunk(_ time.Duration)                         {}
func (NoOpMetricsProvider) OnNotify(_ int)                                  {}
