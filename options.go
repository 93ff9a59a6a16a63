package reflux

import (
	"context"

	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// config holds configuration options for a Store.
type config[S any] struct {
	clock       clockz.Clock
	metrics     MetricsProvider
	journalSize int
	validate    bool
	codec       Codec
	snapshot    string
	wrappers    []func(Middleware[S]) Middleware[S]
}

// Option configures a Store.
type Option[S any] func(*config[S])

// WithClock sets a custom clock for journal timestamps and metric durations.
// Use this with clockz.FakeClock for deterministic tests.
func WithClock[S any](clock clockz.Clock) Option[S] {
	return func(c *config[S]) {
		c.clock = clock
	}
}

// WithMetrics sets a metrics provider that receives callbacks on
// dispatches, failures, thunks, and subscriber notifications.
func WithMetrics[S any](metrics MetricsProvider) Option[S] {
	return func(c *config[S]) {
		c.metrics = metrics
	}
}

// WithJournal enables a ring buffer recording the most recent applied
// dispatches, retrievable via Store.Journal. Size 0 disables the journal.
func WithJournal[S any](size int) Option[S] {
	return func(c *config[S]) {
		c.journalSize = size
	}
}

// WithStateValidation validates the reduced state with
// go-playground/validator struct tags after every dispatch. If validation
// fails, the previous state is retained and the dispatch returns the error.
// The state type must be a struct.
func WithStateValidation[S any]() Option[S] {
	return func(c *config[S]) {
		c.validate = true
	}
}

// WithSnapshot persists the state tree to the given file after every applied
// dispatch, and hydrates the initial state from the file when it exists.
// The snapshot format defaults to JSON; see WithSnapshotCodec.
func WithSnapshot[S any](path string) Option[S] {
	return func(c *config[S]) {
		c.snapshot = path
	}
}

// WithSnapshotCodec sets the codec used for snapshot files.
func WithSnapshotCodec[S any](codec Codec) Option[S] {
	return func(c *config[S]) {
		c.codec = codec
	}
}

// WithMiddleware wraps the dispatch pipeline with a sequence of processors.
// Processors execute in order, with the terminal reduce last. Middleware may
// observe or rewrite the action before it reaches the reducers.
//
// Use the Use* functions to create processors for common patterns,
// or provide custom pipz.Chainable implementations directly.
//
// Example:
//
//	store := reflux.NewStore(reducer,
//	    reflux.WithMiddleware(
//	        reflux.UseEffect[AppState]("log", logFn),
//	        reflux.UseTransform[AppState]("stamp", stampFn),
//	    ),
//	)
func WithMiddleware[S any](processors ...Middleware[S]) Option[S] {
	return func(c *config[S]) {
		c.wrappers = append(c.wrappers, func(p Middleware[S]) Middleware[S] {
			all := make([]Middleware[S], 0, len(processors)+1)
			all = append(all, processors...)
			all = append(all, p)
			return pipz.NewSequence("middleware", all...)
		})
	}
}

// WithDispatchFilter drops actions for which the condition returns false.
// Filtered actions never reach the reducers; the state passes through
// unchanged and the dispatch returns the action without error.
func WithDispatchFilter[S any](condition func(context.Context, Action) bool) Option[S] {
	return func(c *config[S]) {
		c.wrappers = append(c.wrappers, func(p Middleware[S]) Middleware[S] {
			wrapper := func(ctx context.Context, env *Envelope[S]) bool {
				return condition(ctx, env.Action)
			}
			return pipz.NewFilter("dispatch-filter", wrapper, p)
		})
	}
}

// buildPipeline wraps a terminal with the configured pipeline wrappers.
func buildPipeline[S any](terminal Middleware[S], wrappers []func(Middleware[S]) Middleware[S]) Middleware[S] {
	pipeline := terminal
	for _, wrap := range wrappers {
		pipeline = wrap(pipeline)
	}
	return pipeline
}

// UseTransform creates a processor that transforms the envelope.
// Cannot fail. Use for pure rewrites that always succeed.
func UseTransform[S any](name string, fn func(context.Context, *Envelope[S]) *Envelope[S]) Middleware[S] {
	return pipz.Transform(pipz.Name(name), fn)
}

// UseApply creates a processor that can transform the envelope and fail.
// A failing processor aborts the dispatch before the reduce; the error
// propagates to the Dispatch caller.
func UseApply[S any](name string, fn func(context.Context, *Envelope[S]) (*Envelope[S], error)) Middleware[S] {
	return pipz.Apply(pipz.Name(name), fn)
}

// UseEffect creates a processor that performs a side effect.
// The envelope passes through unchanged. Use for logging, metrics,
// or notifications that should not affect the dispatch.
func UseEffect[S any](name string, fn func(context.Context, *Envelope[S]) error) Middleware[S] {
	return pipz.Effect(pipz.Name(name), fn)
}
