package reflux

// Reducer computes a new state value from the current value and an action.
// Reducers must be pure: same inputs, same output, no mutation of the input
// state. This package never clones state, so a reducer that mutates in place
// will alias through the identity passthrough for unhandled tags.
type Reducer[S any] func(S, Action) S

// ReducerMap maps an action tag to an ordered list of reducers. All reducers
// under one tag operate on the same state type and receive actions with that
// tag. An empty list behaves like an absent tag.
type ReducerMap[S any] map[string][]Reducer[S]

// StateReducer is anything that can seed and reduce a state value.
// Both SlicedReducer and Root implement it; stores accept it directly.
type StateReducer[S any] interface {
	// Initial returns the seed state used before any action is applied.
	Initial() S

	// Reduce computes the next state from the current state and an action.
	Reduce(S, Action) S
}

// SlicedReducer dispatches actions to reducers by tag, replacing the usual
// switch statement with a table lookup. Tags absent from the map pass the
// state through unchanged.
type SlicedReducer[S any] struct {
	initial  S
	reducers ReducerMap[S]
}

// NewSlicedReducer creates a SlicedReducer over the given map. The initial
// value seeds the state when the reducer is installed in a store.
//
// Example:
//
//	counter := reflux.NewSlicedReducer(0, reflux.ReducerMap[int]{
//	    increment.Tag(): {func(n int, _ reflux.Action) int { return n + 1 }},
//	    add.Tag():       {func(n int, a reflux.Action) int { return n + a.Payload.(int) }},
//	})
func NewSlicedReducer[S any](initial S, reducers ReducerMap[S]) *SlicedReducer[S] {
	return &SlicedReducer[S]{
		initial:  initial,
		reducers: reducers,
	}
}

// Initial returns the seed state.
func (r *SlicedReducer[S]) Initial() S {
	return r.initial
}

// Reduce applies the reducers registered for the action's tag, in declaration
// order, each consuming the previous one's output and the same action. If no
// reducers are registered for the tag, the state is returned unchanged.
func (r *SlicedReducer[S]) Reduce(state S, action Action) S {
	fns, ok := r.reducers[action.Tag]
	if !ok {
		return state
	}
	for _, fn := range fns {
		state = fn(state, action)
	}
	return state
}

// Func returns the reducer as a plain Reducer function, for composition
// under a Root or a SliceOf lens.
func (r *SlicedReducer[S]) Func() Reducer[S] {
	return r.Reduce
}

// SliceOf focuses a sliced reducer onto one slice of a larger state tree.
// get extracts the slice from the parent; set writes the reduced slice back
// and returns the new parent. Actions with tags outside the sliced reducer's
// map leave the parent untouched.
func SliceOf[Parent, S any](r *SlicedReducer[S], get func(Parent) S, set func(Parent, S) Parent) Reducer[Parent] {
	return func(parent Parent, action Action) Parent {
		before := get(parent)
		after := r.Reduce(before, action)
		return set(parent, after)
	}
}

// Root composes independent slice reducers into one reducer over a shared
// parent state. Parts run in order; each sees the output of the previous
// part. A well-formed part only touches its own slice, so parts are
// order-independent for disjoint slices.
type Root[S any] struct {
	initial S
	parts   []Reducer[S]
}

// NewRoot creates a Root over the given parts.
func NewRoot[S any](initial S, parts ...Reducer[S]) *Root[S] {
	return &Root[S]{
		initial: initial,
		parts:   parts,
	}
}

// Initial returns the seed state for the whole tree.
func (r *Root[S]) Initial() S {
	return r.initial
}

// Reduce runs every part in order over the state.
func (r *Root[S]) Reduce(state S, action Action) S {
	for _, part := range r.parts {
		state = part(state, action)
	}
	return state
}
