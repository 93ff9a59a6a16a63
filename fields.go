package reflux

import "github.com/zoobzio/capitan"

// Field keys for store events.
var (
	// KeyTag is the tag of the action involved in an event.
	KeyTag = capitan.NewStringKey("tag")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeySubscribers is the number of subscribers notified after a dispatch.
	KeySubscribers = capitan.NewIntKey("subscribers")

	// KeyPath is the snapshot file path involved in a persistence event.
	KeyPath = capitan.NewStringKey("path")

	// KeyContentType is the content type of the codec used for a snapshot.
	KeyContentType = capitan.NewStringKey("content_type")
)
