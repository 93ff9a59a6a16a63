package reflux

// Action is an immutable tagged message describing an intended state change.
// The Tag discriminates the kind of action within an update scope; Payload
// carries the action's data and is nil for actions constructed without one.
// Actions are created by creators, consumed by reducers, and never mutated.
type Action struct {
	// Tag identifies the kind of action. Unique per kind within a given
	// reducer map; reusing a tag across unrelated creators is a caller
	// error this package does not detect.
	Tag string

	// Payload is the action's data, nil when the action carries none.
	Payload any
}

// Creator constructs actions with a fixed tag and no payload.
type Creator func() Action

// CreatorWith constructs actions with a fixed tag and a typed payload.
type CreatorWith[P any] func(P) Action

// NewCreator returns a creator for payload-free actions with the given tag.
// The tag is fixed at construction and never re-validated. Creators are
// typically declared once as package-level values and reused.
//
// Example:
//
//	var increment = reflux.NewCreator("counter/increment")
//	increment() // Action{Tag: "counter/increment"}
func NewCreator(tag string) Creator {
	return func() Action {
		return Action{Tag: tag}
	}
}

// NewCreatorWith returns a creator for actions carrying a payload of type P.
//
// Example:
//
//	var setName = reflux.NewCreatorWith[string]("user/set-name")
//	setName("alice") // Action{Tag: "user/set-name", Payload: "alice"}
func NewCreatorWith[P any](tag string) CreatorWith[P] {
	return func(payload P) Action {
		return Action{Tag: tag, Payload: payload}
	}
}

// Tag returns the fixed tag this creator stamps on its actions.
// Useful for keying a ReducerMap off the creator itself.
func (c Creator) Tag() string {
	return c().Tag
}

// Tag returns the fixed tag this creator stamps on its actions.
func (c CreatorWith[P]) Tag() string {
	var zero P
	return c(zero).Tag
}

// Loose adapts the creator to the payload-agnostic constructor form used by
// NamedCreators. The payload argument is ignored.
func (c Creator) Loose() func(payload any) any {
	return func(any) any {
		return c()
	}
}

// Loose adapts the creator to the payload-agnostic constructor form used by
// NamedCreators. The payload is asserted to P; as with any loose sender,
// invoking it with the wrong payload type is a caller error and panics.
func (c CreatorWith[P]) Loose() func(payload any) any {
	return func(payload any) any {
		return c(payload.(P))
	}
}
