package reflux

import "github.com/zoobzio/capitan"

// Dispatch signals.
var (
	// ActionDispatched is emitted after an action is applied to the state.
	ActionDispatched = capitan.NewSignal(
		"reflux.action.dispatched",
		"Action applied to store state",
	)

	// ActionFiltered is emitted when a dispatch filter drops an action.
	ActionFiltered = capitan.NewSignal(
		"reflux.action.filtered",
		"Action dropped by dispatch filter",
	)

	// DispatchFailed is emitted when the dispatch pipeline returns an error.
	DispatchFailed = capitan.NewSignal(
		"reflux.dispatch.failed",
		"Dispatch pipeline failed",
	)

	// ThunkDispatched is emitted when a thunk is handed the store.
	ThunkDispatched = capitan.NewSignal(
		"reflux.thunk.dispatched",
		"Thunk invoked with store",
	)

	// StateValidationFailed is emitted when the reduced state fails
	// validation and the previous state is retained.
	StateValidationFailed = capitan.NewSignal(
		"reflux.state.validation.failed",
		"Reduced state failed validation",
	)
)

// Snapshot signals.
var (
	// SnapshotSaved is emitted after a snapshot is written to disk.
	SnapshotSaved = capitan.NewSignal(
		"reflux.snapshot.saved",
		"Store snapshot written",
	)

	// SnapshotLoaded is emitted when store state is rehydrated from a snapshot.
	SnapshotLoaded = capitan.NewSignal(
		"reflux.snapshot.loaded",
		"Store state rehydrated from snapshot",
	)

	// SnapshotLoadFailed is emitted when a snapshot cannot be decoded.
	// The previous state is retained and watching continues.
	SnapshotLoadFailed = capitan.NewSignal(
		"reflux.snapshot.load.failed",
		"Snapshot could not be decoded",
	)

	// SnapshotWatchStarted is emitted when a store begins watching its
	// snapshot file for external changes.
	SnapshotWatchStarted = capitan.NewSignal(
		"reflux.snapshot.watch.started",
		"Snapshot watching started",
	)

	// SnapshotWatchStopped is emitted when snapshot watching stops.
	SnapshotWatchStopped = capitan.NewSignal(
		"reflux.snapshot.watch.stopped",
		"Snapshot watching stopped",
	)
)
