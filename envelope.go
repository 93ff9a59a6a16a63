package reflux

import "github.com/zoobzio/pipz"

// Envelope carries a dispatch through the middleware pipeline. Middleware
// runs before the terminal reduce and may rewrite the action; the terminal
// stage fills Next with the reduced state.
type Envelope[S any] struct {
	// Action is the action being dispatched. Middleware may replace it.
	Action Action

	// Previous is the state before this dispatch.
	Previous S

	// Next is the state after the terminal reduce. Zero until the
	// terminal stage has run.
	Next S

	// applied reports whether the terminal reduce ran. A dispatch filter
	// that drops the action leaves it false.
	applied bool
}

// Middleware is a processing stage in a store's dispatch pipeline.
type Middleware[S any] = pipz.Chainable[*Envelope[S]]
