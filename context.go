package reflux

import (
	"context"
	"errors"
)

// ErrNoDispatcher is returned when a context-bound operation finds no
// dispatcher in the context.
var ErrNoDispatcher = errors.New("reflux: no dispatcher in context")

// ctxKey is the context key type for the ambient dispatcher.
type ctxKey struct{}

// WithDispatcher returns a context carrying the dispatcher, making it the
// ambient submission mechanism for Binder.BindContext and DispatcherFrom.
func WithDispatcher(ctx context.Context, d Dispatcher) context.Context {
	return context.WithValue(ctx, ctxKey{}, d)
}

// DispatcherFrom returns the dispatcher carried by the context, if any.
func DispatcherFrom(ctx context.Context) (Dispatcher, bool) {
	d, ok := ctx.Value(ctxKey{}).(Dispatcher)
	return d, ok
}
