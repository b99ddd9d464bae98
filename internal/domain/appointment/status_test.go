package appointment

import "testing"

func TestNextStatus(t *testing.T) {
	cases := []struct {
		from  Status
		act   Action
		actor Actor
		want  Status
		ok    bool
	}{
		{StatusProposed, ActionConfirm, ActorShop, StatusConfirmed, true},
		{StatusProposed, ActionConfirm, ActorClient, StatusConfirmed, true},
		{StatusProposed, ActionCounterPropose, ActorClient, StatusCounterProposed, true},
		{StatusProposed, ActionCounterPropose, ActorShop, "", false},
		{StatusProposed, ActionCancel, ActorShop, StatusCancelled, true},
		{StatusProposed, ActionCancel, ActorClient, StatusCancelled, true},
		{StatusProposed, ActionEdit, ActorShop, StatusProposed, true},
		{StatusProposed, ActionComplete, ActorShop, "", false},
		{StatusProposed, ActionAcceptCounter, ActorShop, "", false},

		{StatusCounterProposed, ActionAcceptCounter, ActorShop, StatusConfirmed, true},
		{StatusCounterProposed, ActionAcceptCounter, ActorClient, "", false},
		{StatusCounterProposed, ActionRejectCounter, ActorShop, StatusCancelled, true},
		{StatusCounterProposed, ActionCancel, ActorShop, StatusCancelled, true},
		{StatusCounterProposed, ActionConfirm, ActorClient, "", false},
		{StatusCounterProposed, ActionEdit, ActorShop, "", false},

		{StatusConfirmed, ActionComplete, ActorShop, StatusCompleted, true},
		{StatusConfirmed, ActionMarkNoShow, ActorShop, StatusNoShow, true},
		{StatusConfirmed, ActionEdit, ActorShop, StatusConfirmed, true},
		{StatusConfirmed, ActionConfirm, ActorClient, "", false},
		{StatusConfirmed, ActionCancel, ActorShop, "", false},
		{StatusConfirmed, ActionCounterPropose, ActorClient, "", false},

		{StatusCancelled, ActionConfirm, ActorShop, "", false},
		{StatusCancelled, ActionEdit, ActorShop, "", false},
		{StatusCompleted, ActionCancel, ActorShop, "", false},
		{StatusNoShow, ActionEdit, ActorShop, "", false},
	}

	for _, tt := range cases {
		got, err := NextStatus(tt.from, tt.act, tt.actor)
		if tt.ok {
			if err != nil {
				t.Fatalf("NextStatus(%q, %q, %q) unexpected error: %v", tt.from, tt.act, tt.actor, err)
			}
			if got != tt.want {
				t.Fatalf("NextStatus(%q, %q, %q)=%q, want %q", tt.from, tt.act, tt.actor, got, tt.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("NextStatus(%q, %q, %q) expected error, got %q", tt.from, tt.act, tt.actor, got)
		}
		if !IsInvalidTransition(err) {
			t.Fatalf("NextStatus(%q, %q, %q) expected InvalidTransitionError, got %v", tt.from, tt.act, tt.actor, err)
		}
	}
}

func TestNextStatus_UnknownAction(t *testing.T) {
	if _, err := NextStatus(StatusProposed, Action("explode"), ActorShop); !IsInvalidTransition(err) {
		t.Fatalf("expected InvalidTransitionError for unknown action, got %v", err)
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := []Status{StatusCancelled, StatusCompleted, StatusNoShow}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Fatalf("%q should be terminal", s)
		}
	}
	open := []Status{StatusProposed, StatusConfirmed, StatusCounterProposed}
	for _, s := range open {
		if s.Terminal() {
			t.Fatalf("%q should not be terminal", s)
		}
	}
}
