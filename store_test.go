package reflux

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func newCounterReducer() *SlicedReducer[int] {
	return NewSlicedReducer(0, ReducerMap[int]{
		"counter/increment": {func(n int, _ Action) int { return n + 1 }},
		"counter/add":       {func(n int, a Action) int { return n + a.Payload.(int) }},
	})
}

func TestStore_SeedsFromInitial(t *testing.T) {
	store := NewStore[int](NewSlicedReducer(41, ReducerMap[int]{}))

	if store.State() != 41 {
		t.Errorf("expected initial state 41, got %d", store.State())
	}
}

func TestStore_DispatchAppliesAction(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer())

	result, err := store.Dispatch(ctx, Action{Tag: "counter/increment"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if store.State() != 1 {
		t.Errorf("expected state 1, got %d", store.State())
	}

	action, ok := result.(Action)
	if !ok {
		t.Fatalf("expected Action result, got %T", result)
	}
	if action.Tag != "counter/increment" {
		t.Errorf("expected applied action returned, got %s", action.Tag)
	}
}

func TestStore_UnknownTagLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer())

	if _, err := store.Dispatch(ctx, Action{Tag: "nobody/home"}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if store.State() != 0 {
		t.Errorf("expected state 0, got %d", store.State())
	}
}

func TestStore_SubscribeNotifiesOnDispatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer())

	var got []int
	unsubscribe := store.Subscribe(func(n int) {
		got = append(got, n)
	})

	store.Dispatch(ctx, Action{Tag: "counter/increment"})
	store.Dispatch(ctx, Action{Tag: "counter/add", Payload: 4})

	if len(got) != 2 || got[0] != 1 || got[1] != 5 {
		t.Errorf("expected notifications [1 5], got %v", got)
	}

	unsubscribe()
	store.Dispatch(ctx, Action{Tag: "counter/increment"})
	if len(got) != 2 {
		t.Errorf("expected no notification after unsubscribe, got %v", got)
	}
}

func TestStore_DispatchThunk(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer())

	load := Thunk[int](func(ctx context.Context, s *Store[int]) (any, error) {
		if _, err := s.Dispatch(ctx, Action{Tag: "counter/increment"}); err != nil {
			return nil, err
		}
		return s.Dispatch(ctx, Action{Tag: "counter/add", Payload: 2})
	})

	result, err := store.Dispatch(ctx, load)
	if err != nil {
		t.Fatalf("thunk dispatch failed: %v", err)
	}
	if store.State() != 3 {
		t.Errorf("expected state 3, got %d", store.State())
	}
	if action, ok := result.(Action); !ok || action.Tag != "counter/add" {
		t.Errorf("expected thunk result forwarded, got %v", result)
	}
}

func TestStore_DispatchBareThunkFunc(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer())

	_, err := store.Dispatch(ctx, func(ctx context.Context, s *Store[int]) (any, error) {
		return s.Dispatch(ctx, Action{Tag: "counter/increment"})
	})
	if err != nil {
		t.Fatalf("bare thunk dispatch failed: %v", err)
	}
	if store.State() != 1 {
		t.Errorf("expected state 1, got %d", store.State())
	}
}

func TestStore_ThunkErrorPropagates(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer())

	boom := errors.New("boom")
	_, err := store.Dispatch(ctx, Thunk[int](func(context.Context, *Store[int]) (any, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestStore_RejectsUnknownMessage(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer())

	if _, err := store.Dispatch(ctx, 42); err == nil {
		t.Error("expected error for non-action message")
	}
}

func TestStore_DispatchFilterDropsAction(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer(),
		WithDispatchFilter[int](func(_ context.Context, a Action) bool {
			return a.Tag != "counter/increment"
		}),
	)

	notified := 0
	store.Subscribe(func(int) { notified++ })

	result, err := store.Dispatch(ctx, Action{Tag: "counter/increment"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if store.State() != 0 {
		t.Errorf("expected filtered action to leave state at 0, got %d", store.State())
	}
	if notified != 0 {
		t.Error("expected no notification for filtered action")
	}
	if action, ok := result.(Action); !ok || action.Tag != "counter/increment" {
		t.Errorf("expected action returned unchanged, got %v", result)
	}

	store.Dispatch(ctx, Action{Tag: "counter/add", Payload: 2})
	if store.State() != 2 {
		t.Errorf("expected unfiltered action applied, got %d", store.State())
	}
}

func TestStore_MiddlewareRewritesAction(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer(),
		WithMiddleware(
			UseTransform("double", func(_ context.Context, env *Envelope[int]) *Envelope[int] {
				if env.Action.Tag == "counter/add" {
					env.Action.Payload = env.Action.Payload.(int) * 2
				}
				return env
			}),
		),
	)

	store.Dispatch(ctx, Action{Tag: "counter/add", Payload: 3})
	if store.State() != 6 {
		t.Errorf("expected middleware-doubled payload to yield 6, got %d", store.State())
	}
}

func TestStore_MiddlewareErrorAbortsDispatch(t *testing.T) {
	ctx := context.Background()
	rejected := errors.New("rejected")
	store := NewStore[int](newCounterReducer(),
		WithMiddleware(
			UseApply("reject", func(_ context.Context, env *Envelope[int]) (*Envelope[int], error) {
				return nil, rejected
			}),
		),
	)

	_, err := store.Dispatch(ctx, Action{Tag: "counter/increment"})
	if err == nil {
		t.Fatal("expected middleware error")
	}
	if !errors.Is(err, rejected) {
		t.Errorf("expected rejected, got %v", err)
	}
	if store.State() != 0 {
		t.Errorf("expected state unchanged on middleware error, got %d", store.State())
	}
}

func TestStore_MiddlewareObservesDispatch(t *testing.T) {
	ctx := context.Background()
	var seen []string
	store := NewStore[int](newCounterReducer(),
		WithMiddleware(
			UseEffect("log", func(_ context.Context, env *Envelope[int]) error {
				seen = append(seen, env.Action.Tag)
				return nil
			}),
		),
	)

	store.Dispatch(ctx, Action{Tag: "counter/increment"})
	if len(seen) != 1 || seen[0] != "counter/increment" {
		t.Errorf("expected effect to observe dispatch, got %v", seen)
	}
}

// boundedState is a struct state with a validation tag.
type boundedState struct {
	Count int `validate:"max=2"`
}

func newBoundedReducer() *SlicedReducer[boundedState] {
	return NewSlicedReducer(boundedState{}, ReducerMap[boundedState]{
		"inc": {func(s boundedState, _ Action) boundedState { s.Count++; return s }},
	})
}

func TestStore_StateValidationRetainsPrevious(t *testing.T) {
	ctx := context.Background()
	store := NewStore[boundedState](newBoundedReducer(), WithStateValidation[boundedState]())

	store.Dispatch(ctx, Action{Tag: "inc"})
	store.Dispatch(ctx, Action{Tag: "inc"})

	// Third increment would exceed max=2
	_, err := store.Dispatch(ctx, Action{Tag: "inc"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if store.State().Count != 2 {
		t.Errorf("expected previous state retained at 2, got %d", store.State().Count)
	}
}

func TestStore_JournalRecordsDispatches(t *testing.T) {
	ctx := context.Background()
	clock := clockz.NewFakeClock()
	store := NewStore[int](newCounterReducer(),
		WithJournal[int](8),
		WithClock[int](clock),
	)

	store.Dispatch(ctx, Action{Tag: "counter/increment"})
	clock.Advance(time.Second)
	store.Dispatch(ctx, Action{Tag: "counter/add", Payload: 3})

	entries := store.Journal()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Tag != "counter/increment" {
		t.Errorf("expected oldest entry first, got %s", entries[0].Tag)
	}
	if entries[1].Payload != 3 {
		t.Errorf("expected payload 3 recorded, got %v", entries[1].Payload)
	}
	if got := entries[1].At.Sub(entries[0].At); got != time.Second {
		t.Errorf("expected entries 1s apart, got %v", got)
	}
}

func TestStore_JournalDisabledByDefault(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer())

	store.Dispatch(ctx, Action{Tag: "counter/increment"})
	if store.Journal() != nil {
		t.Error("expected nil journal when not configured")
	}
}

func TestStore_JournalSkipsFilteredActions(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer(),
		WithJournal[int](8),
		WithDispatchFilter[int](func(_ context.Context, a Action) bool {
			return a.Tag != "counter/increment"
		}),
	)

	store.Dispatch(ctx, Action{Tag: "counter/increment"})
	if entries := store.Journal(); entries != nil {
		t.Errorf("expected no journal entries for filtered action, got %v", entries)
	}
}

func TestStore_ClearJournal(t *testing.T) {
	ctx := context.Background()
	store := NewStore[int](newCounterReducer(),
		WithJournal[int](8),
	)

	store.Dispatch(ctx, Action{Tag: "counter/increment"})
	store.Dispatch(ctx, Action{Tag: "counter/increment"})
	store.ClearJournal()

	if entries := store.Journal(); entries != nil {
		t.Errorf("expected empty journal after clear, got %v", entries)
	}

	// Recording resumes after a clear.
	store.Dispatch(ctx, Action{Tag: "counter/add", Payload: 2})
	entries := store.Journal()
	if len(entries) != 1 || entries[0].Tag != "counter/add" {
		t.Errorf("expected single fresh entry after clear, got %v", entries)
	}
}

func TestStore_ClearJournalWithoutJournal(t *testing.T) {
	store := NewStore[int](newCounterReducer())
	store.ClearJournal() // must not panic with journal disabled
	if store.Journal() != nil {
		t.Error("expected nil journal")
	}
}
