/*
Package reflux provides a unidirectional state store: a single state tree
updated only through pure reducers reacting to tagged actions.

reflux is designed to be embedded within applications that want
predictable state updates without dispatch boilerplate. Three small
utilities do the work: typed action creators, a sliced reducer that
replaces switch statements with a table lookup, and bound senders that
funnel constructed actions through the store automatically.

# Actions

Creators build tagged, immutable actions. Declare them once at package
level and reuse them:

	var (
	    increment = reflux.NewCreator("counter/increment")
	    add       = reflux.NewCreatorWith[int]("counter/add")
	)

	increment() // Action{Tag: "counter/increment"}
	add(5)      // Action{Tag: "counter/add", Payload: 5}

# Reducers

A SlicedReducer maps each tag to an ordered list of reducers. Tags absent
from the map pass the state through unchanged; tags present run their
reducers in declaration order, each consuming the previous output:

	counter := reflux.NewSlicedReducer(0, reflux.ReducerMap[int]{
	    increment.Tag(): {func(n int, _ reflux.Action) int { return n + 1 }},
	    add.Tag():       {func(n int, a reflux.Action) int { return n + a.Payload.(int) }},
	})

Independent slices compose into one tree with SliceOf and NewRoot:

	root := reflux.NewRoot(AppState{},
	    reflux.SliceOf(counter,
	        func(s AppState) int { return s.Count },
	        func(s AppState, n int) AppState { s.Count = n; return s },
	    ),
	    reflux.SliceOf(session, getSession, setSession),
	)

# Store

A Store owns the state tree and serializes dispatches through the reducer:

	store := reflux.NewStore(root)

	store.Dispatch(ctx, increment())
	store.State().Count // 1

	unsubscribe := store.Subscribe(func(s AppState) {
	    render(s)
	})

Thunks defer message construction; the store hands itself to the thunk for
multi-step or conditional dispatch:

	load := reflux.Thunk[AppState](func(ctx context.Context, s *reflux.Store[AppState]) (any, error) {
	    user, err := fetchUser(ctx)
	    if err != nil {
	        return nil, err
	    }
	    return s.Dispatch(ctx, setUser(user))
	})
	store.Dispatch(ctx, load)

# Bound Senders

BindCreators turns a map of named creators into same-named senders that
construct and dispatch in one call. A Binder memoizes the bound set
against the identity of the dispatcher and the creators map, so
reference-stability-sensitive consumers get the identical map back until
either input changes:

	var actions = reflux.NamedCreators{
	    "increment": increment.Loose(),
	    "add":       add.Loose(),
	}

	binder := reflux.NewBinder()
	bound := binder.Bind(store, actions)
	bound["add"](ctx, 5)

# Middleware

Dispatches flow through a pipz pipeline before the reduce. Middleware can
observe, rewrite, or drop actions:

	store := reflux.NewStore(root,
	    reflux.WithMiddleware(
	        reflux.UseEffect[AppState]("log", logAction),
	    ),
	    reflux.WithDispatchFilter[AppState](func(ctx context.Context, a reflux.Action) bool {
	        return a.Tag != "debug/noop"
	    }),
	)

# Persistence

A store can snapshot its tree to disk after every dispatch and rehydrate
on startup, with JSON or YAML codecs:

	store := reflux.NewStore(root,
	    reflux.WithSnapshot[AppState]("/var/lib/app/state.json"),
	)
	store.WatchSnapshot(ctx) // rehydrate on external rewrites

# Observability

Store lifecycle events are emitted as capitan signals (ActionDispatched,
DispatchFailed, SnapshotSaved, ...) with typed field keys, and a
MetricsProvider interface integrates with metrics systems:

	capitan.Hook(reflux.ActionDispatched, func(_ context.Context, e *capitan.Event) {
	    tag, _ := reflux.KeyTag.From(e)
	    log.Printf("dispatched %s", tag)
	})
*/
package reflux
