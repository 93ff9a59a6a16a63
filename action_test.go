package reflux

import "testing"

func TestNewCreator_NoPayload(t *testing.T) {
	increment := NewCreator("counter/increment")

	action := increment()
	if action.Tag != "counter/increment" {
		t.Errorf("expected tag counter/increment, got %s", action.Tag)
	}
	if action.Payload != nil {
		t.Errorf("expected nil payload, got %v", action.Payload)
	}
}

func TestNewCreatorWith_Payload(t *testing.T) {
	add := NewCreatorWith[int]("counter/add")

	action := add(42)
	if action.Tag != "counter/add" {
		t.Errorf("expected tag counter/add, got %s", action.Tag)
	}
	if action.Payload != 42 {
		t.Errorf("expected payload 42, got %v", action.Payload)
	}
}

func TestCreator_TagIsFixed(t *testing.T) {
	c := NewCreator("x")

	for i := 0; i < 3; i++ {
		if got := c().Tag; got != "x" {
			t.Errorf("expected tag x on every call, got %s", got)
		}
	}
	if c.Tag() != "x" {
		t.Errorf("expected tag x, got %s", c.Tag())
	}
}

func TestCreatorWith_Tag(t *testing.T) {
	c := NewCreatorWith[string]("user/set-name")

	if c.Tag() != "user/set-name" {
		t.Errorf("expected tag user/set-name, got %s", c.Tag())
	}
}

func TestCreator_Loose(t *testing.T) {
	increment := NewCreator("counter/increment")
	loose := increment.Loose()

	msg := loose(nil)
	action, ok := msg.(Action)
	if !ok {
		t.Fatalf("expected Action, got %T", msg)
	}
	if action.Tag != "counter/increment" {
		t.Errorf("expected tag counter/increment, got %s", action.Tag)
	}

	// Payload is ignored for payload-free creators
	msg = loose("ignored")
	if msg.(Action).Payload != nil {
		t.Error("expected payload to be ignored")
	}
}

func TestCreatorWith_Loose(t *testing.T) {
	add := NewCreatorWith[int]("counter/add")
	loose := add.Loose()

	msg := loose(7)
	action, ok := msg.(Action)
	if !ok {
		t.Fatalf("expected Action, got %T", msg)
	}
	if action.Payload != 7 {
		t.Errorf("expected payload 7, got %v", action.Payload)
	}
}
