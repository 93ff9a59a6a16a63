package reflux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// validate is the shared validator instance.
var validate = validator.New()

// Thunk is a deferred message: dispatched in place of a ready Action, it
// receives the store itself to run multi-step or conditional dispatch logic.
// Whatever the thunk returns is returned from Dispatch unchanged.
type Thunk[S any] func(ctx context.Context, store *Store[S]) (any, error)

// Store holds a single state tree updated only through its reducer.
// Every change flows through Dispatch; reads via State never block.
type Store[S any] struct {
	reducer   StateReducer[S]
	pipeline  Middleware[S]
	clock     clockz.Clock
	metrics   MetricsProvider
	journal   *journal
	validated bool
	codec     Codec
	snapshot  string

	current   atomic.Pointer[S]
	lastSaved atomic.Pointer[[]byte]

	mu sync.Mutex // serializes dispatch

	subMu   sync.RWMutex
	subs    map[int]func(S)
	nextSub int
}

// NewStore creates a Store seeded from the reducer's initial state.
//
// If a snapshot path is configured and the file exists, the initial state
// is hydrated from it instead (a corrupt snapshot falls back to the
// reducer's initial state).
//
// Example:
//
//	store := reflux.NewStore(counter,
//	    reflux.WithJournal[int](32),
//	    reflux.WithClock[int](clock),
//	)
func NewStore[S any](reducer StateReducer[S], opts ...Option[S]) *Store[S] {
	cfg := &config[S]{
		clock: clockz.RealClock,
		codec: JSONCodec{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Store[S]{
		reducer:   reducer,
		clock:     cfg.clock,
		metrics:   cfg.metrics,
		journal:   newJournal(cfg.journalSize),
		validated: cfg.validate,
		codec:     cfg.codec,
		snapshot:  cfg.snapshot,
		subs:      make(map[int]func(S)),
	}

	terminal := pipz.Apply("reduce", func(ctx context.Context, env *Envelope[S]) (*Envelope[S], error) {
		next := s.reducer.Reduce(env.Previous, env.Action)
		if s.validated {
			if err := validate.Struct(next); err != nil {
				capitan.Emit(ctx, StateValidationFailed,
					KeyTag.Field(env.Action.Tag),
					KeyError.Field(err.Error()),
				)
				return nil, fmt.Errorf("state validation failed: %w", err)
			}
		}
		env.Next = next
		env.applied = true
		return env, nil
	})
	s.pipeline = buildPipeline(terminal, cfg.wrappers)

	initial := reducer.Initial()
	if s.snapshot != "" {
		if loaded, err := LoadSnapshot[S](s.snapshot, s.codec); err == nil {
			initial = loaded
			capitan.Emit(context.Background(), SnapshotLoaded,
				KeyPath.Field(s.snapshot),
				KeyContentType.Field(s.codec.ContentType()),
			)
		}
	}
	s.current.Store(&initial)

	return s
}

// State returns the current state tree. It never blocks, even while a
// dispatch is in flight; readers see the last applied state.
func (s *Store[S]) State() S {
	return *s.current.Load()
}

// Subscribe registers a callback invoked with the new state after every
// applied dispatch. It returns an unsubscribe function. Callbacks run
// synchronously on the dispatching goroutine and must not dispatch back
// into the store.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// Journal returns the recorded dispatches, oldest first. Returns nil unless
// the store was created with WithJournal.
func (s *Store[S]) Journal() []JournalEntry {
	return s.journal.all()
}

// ClearJournal discards all recorded dispatches. No-op unless the store
// was created with WithJournal.
func (s *Store[S]) ClearJournal() {
	s.journal.clear()
}

// Dispatch submits a message to the store. An Action runs through the
// middleware pipeline and the reducer; the applied action is returned. A
// Thunk is invoked with the store and its results are returned unchanged.
// Any other message is rejected.
//
// Dispatches are serialized: concurrent callers apply one at a time.
//
// When a snapshot path is configured and persisting the new state fails,
// Dispatch returns the applied action together with the persist error: the
// in-memory update and subscriber notifications have already happened, only
// the write to disk was lost.
func (s *Store[S]) Dispatch(ctx context.Context, msg any) (any, error) {
	switch m := msg.(type) {
	case Action:
		return s.dispatch(ctx, m)
	case Thunk[S]:
		return s.dispatchThunk(ctx, m)
	case func(context.Context, *Store[S]) (any, error):
		return s.dispatchThunk(ctx, m)
	default:
		return nil, fmt.Errorf("reflux: cannot dispatch %T: want Action or Thunk", msg)
	}
}

// dispatch runs a single action through the pipeline and applies the result.
func (s *Store[S]) dispatch(ctx context.Context, action Action) (any, error) {
	start := s.clock.Now()

	s.mu.Lock()
	env := &Envelope[S]{Action: action, Previous: s.State()}
	processed, err := s.pipeline.Process(ctx, env)
	if err != nil {
		s.mu.Unlock()
		capitan.Emit(ctx, DispatchFailed,
			KeyTag.Field(action.Tag),
			KeyError.Field(err.Error()),
		)
		if s.metrics != nil {
			s.metrics.OnDispatchFailure(action.Tag, failureStage(err), s.clock.Since(start))
		}
		return nil, err
	}

	if !processed.applied {
		s.mu.Unlock()
		capitan.Emit(ctx, ActionFiltered,
			KeyTag.Field(action.Tag),
		)
		return processed.Action, nil
	}

	s.current.Store(&processed.Next)
	s.journal.record(JournalEntry{
		Tag:     processed.Action.Tag,
		Payload: processed.Action.Payload,
		At:      start,
	})

	var persistErr error
	if s.snapshot != "" {
		persistErr = s.save(ctx)
	}

	notified := s.notify(processed.Next)
	s.mu.Unlock()

	capitan.Emit(ctx, ActionDispatched,
		KeyTag.Field(processed.Action.Tag),
		KeySubscribers.Field(notified),
	)
	if s.metrics != nil {
		if persistErr != nil {
			s.metrics.OnDispatchFailure(processed.Action.Tag, "persist", s.clock.Since(start))
		} else {
			s.metrics.OnDispatch(processed.Action.Tag, s.clock.Since(start))
		}
		s.metrics.OnNotify(notified)
	}

	return processed.Action, persistErr
}

// dispatchThunk hands the store to a deferred message.
func (s *Store[S]) dispatchThunk(ctx context.Context, t Thunk[S]) (any, error) {
	start := s.clock.Now()
	capitan.Emit(ctx, ThunkDispatched)

	result, err := t(ctx, s)
	if s.metrics != nil {
		s.metrics.OnThunk(s.clock.Since(start))
	}
	return result, err
}

// notify snapshots the subscriber set and invokes each with the new state.
func (s *Store[S]) notify(state S) int {
	s.subMu.RLock()
	fns := make([]func(S), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range fns {
		fn(state)
	}
	return len(fns)
}

// save writes the current state to the configured snapshot path and
// remembers the written bytes so WatchSnapshot can ignore our own writes.
func (s *Store[S]) save(ctx context.Context) error {
	data, err := s.codec.Marshal(s.State())
	if err != nil {
		return fmt.Errorf("snapshot marshal failed: %w", err)
	}
	if err := writeSnapshot(s.snapshot, data); err != nil {
		return err
	}
	s.lastSaved.Store(&data)
	capitan.Emit(ctx, SnapshotSaved,
		KeyPath.Field(s.snapshot),
		KeyContentType.Field(s.codec.ContentType()),
	)
	return nil
}

// WatchSnapshot rehydrates the store whenever the configured snapshot file
// is rewritten by another process. It returns after the watch is
// established and runs until the context is canceled. The store's own
// writes are ignored.
func (s *Store[S]) WatchSnapshot(ctx context.Context) error {
	if s.snapshot == "" {
		return errors.New("reflux: no snapshot path configured")
	}
	return s.RehydrateFrom(ctx, NewSnapshotWatcher(s.snapshot))
}

// RehydrateFrom replaces the state tree with each snapshot the watcher
// emits, skipping bytes identical to the store's own last write. It returns
// after the watch is established and runs until the context is canceled or
// the watcher closes its channel.
func (s *Store[S]) RehydrateFrom(ctx context.Context, w Watcher) error {
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	capitan.Emit(ctx, SnapshotWatchStarted,
		KeyPath.Field(s.snapshot),
	)

	go func() {
		defer capitan.Emit(ctx, SnapshotWatchStopped,
			KeyPath.Field(s.snapshot),
		)
		for data := range changes {
			if last := s.lastSaved.Load(); last != nil && bytes.Equal(*last, data) {
				continue
			}
			s.hydrate(ctx, data)
		}
	}()

	return nil
}

// hydrate replaces the state tree with a decoded snapshot and notifies
// subscribers. Undecodable or invalid snapshots are skipped; watching
// continues with the previous state intact.
func (s *Store[S]) hydrate(ctx context.Context, data []byte) {
	var next S
	if err := s.codec.Unmarshal(data, &next); err != nil {
		capitan.Emit(ctx, SnapshotLoadFailed,
			KeyPath.Field(s.snapshot),
			KeyError.Field(err.Error()),
		)
		return
	}
	if s.validated {
		if err := validate.Struct(next); err != nil {
			capitan.Emit(ctx, StateValidationFailed,
				KeyError.Field(err.Error()),
			)
			return
		}
	}

	s.mu.Lock()
	s.current.Store(&next)
	s.notify(next)
	s.mu.Unlock()

	capitan.Emit(ctx, SnapshotLoaded,
		KeyPath.Field(s.snapshot),
		KeyContentType.Field(s.codec.ContentType()),
	)
}

// failureStage classifies a pipeline error for metrics.
func failureStage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return "validate"
	}
	return "pipeline"
}

// Ensure *Store implements Dispatcher.
var _ Dispatcher = (*Store[int])(nil)

// Ensure SlicedReducer and Root implement StateReducer.
var (
	_ StateReducer[int] = (*SlicedReducer[int])(nil)
	_ StateReducer[int] = (*Root[int])(nil)
)
