package reflux

import (
	"context"
	"reflect"
	"sync"
)

// Dispatcher accepts a message and performs the actual state update. The
// message is either an Action or a thunk; a Dispatcher makes no other
// guarantees about what it returns, and bound senders forward its results
// unchanged.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg any) (any, error)
}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
//
// Func values have no usable identity, so a DispatcherFunc defeats Binder
// memoization: every Bind recomputes. Prefer a pointer-backed Dispatcher
// such as *Store when reference stability matters.
type DispatcherFunc func(ctx context.Context, msg any) (any, error)

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, msg any) (any, error) {
	return f(ctx, msg)
}

// NamedCreators maps sender names to message constructors. A constructor
// receives the sender's payload (nil when invoked without one) and returns
// either an Action or a thunk; no distinction is made here — interpreting
// the message belongs to the Dispatcher. Use the Loose adapters on Creator
// and CreatorWith to populate the map from typed creators.
type NamedCreators map[string]func(payload any) any

// Sender constructs a message and submits it through a Dispatcher,
// returning the Dispatcher's results unchanged.
type Sender func(ctx context.Context, payload any) (any, error)

// BoundSenders mirrors a NamedCreators map, with each creator replaced by a
// Sender that funnels the constructed message through the bound Dispatcher.
type BoundSenders map[string]Sender

// BindCreators produces a BoundSenders map over the given dispatcher.
// Each sender evaluates its creator with the payload and forwards the
// result to the dispatcher.
func BindCreators(d Dispatcher, creators NamedCreators) BoundSenders {
	bound := make(BoundSenders, len(creators))
	for name, create := range creators {
		bound[name] = func(ctx context.Context, payload any) (any, error) {
			return d.Dispatch(ctx, create(payload))
		}
	}
	return bound
}

// Bind pairs a single payload-free creator with a dispatcher.
func Bind(d Dispatcher, c Creator) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return d.Dispatch(ctx, c())
	}
}

// BindWith pairs a single typed creator with a dispatcher, preserving the
// payload type of the underlying creator.
func BindWith[P any](d Dispatcher, c CreatorWith[P]) func(context.Context, P) (any, error) {
	return func(ctx context.Context, payload P) (any, error) {
		return d.Dispatch(ctx, c(payload))
	}
}

// Binder memoizes one BoundSenders set against the identity of its inputs.
// Consumers that depend on reference stability (dependency-tracked
// re-render systems, change detection) get the identical map back as long
// as both the dispatcher and the creators map are the same references.
//
// The creators map must be a stable value declared once and reused;
// passing a freshly built map on every call silently degenerates to
// recompute-always. The same applies to dispatchers whose dynamic type is
// not comparable (for example DispatcherFunc).
type Binder struct {
	mu       sync.Mutex
	submit   Dispatcher
	creators uintptr
	cached   BoundSenders
}

// NewBinder creates an empty Binder.
func NewBinder() *Binder {
	return &Binder{}
}

// Bind returns the bound senders for the dispatcher and creators map,
// reusing the previous result when both references are unchanged.
func (b *Binder) Bind(d Dispatcher, creators NamedCreators) BoundSenders {
	key := reflect.ValueOf(creators).Pointer()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cached != nil && key == b.creators && sameDispatcher(d, b.submit) {
		return b.cached
	}

	b.cached = BindCreators(d, creators)
	b.submit = d
	b.creators = key
	return b.cached
}

// BindContext is like Bind, with the dispatcher drawn from the context via
// WithDispatcher. It fails if the context carries no dispatcher.
func (b *Binder) BindContext(ctx context.Context, creators NamedCreators) (BoundSenders, error) {
	d, ok := DispatcherFrom(ctx)
	if !ok {
		return nil, ErrNoDispatcher
	}
	return b.Bind(d, creators), nil
}

// sameDispatcher reports whether two dispatchers are the same reference.
// Dispatchers with non-comparable dynamic types never compare equal.
func sameDispatcher(a, b Dispatcher) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
