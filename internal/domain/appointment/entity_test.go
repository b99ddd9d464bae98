package appointment

import (
	"testing"

	"github.com/didierjondet/sav-pro-fix-sub003/internal/models"
)

func newProposed(t *testing.T) *models.Appointment {
	t.Helper()
	ap, err := New(NewInput{
		ShopID:          1,
		Start:           monday(10, 0),
		DurationMinutes: 30,
		Type:            TypeDeposit,
		ProposedBy:      ActorShop,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ap
}

func TestNew(t *testing.T) {
	ap := newProposed(t)

	if ap.Status != string(StatusProposed) {
		t.Fatalf("new appointment status = %q, want proposed", ap.Status)
	}
	if ap.ConfirmationToken == "" {
		t.Fatal("new appointment must carry a confirmation token")
	}

	other := newProposed(t)
	if other.ConfirmationToken == ap.ConfirmationToken {
		t.Fatal("tokens must be unique per appointment")
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   NewInput
	}{
		{"zero start", NewInput{DurationMinutes: 30, Type: TypeDeposit, ProposedBy: ActorShop}},
		{"zero duration", NewInput{Start: monday(10, 0), Type: TypeDeposit, ProposedBy: ActorShop}},
		{"bad type", NewInput{Start: monday(10, 0), DurationMinutes: 30, Type: "haircut", ProposedBy: ActorShop}},
		{"bad actor", NewInput{Start: monday(10, 0), DurationMinutes: 30, Type: TypeDeposit, ProposedBy: "intern"}},
	}

	for _, tt := range cases {
		if _, err := New(tt.in); !IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tt.name, err)
		}
	}
}

func TestEnd(t *testing.T) {
	ap := newProposed(t)
	if got := End(ap); !got.Equal(monday(10, 30)) {
		t.Fatalf("End = %s, want 10:30", got.Format("15:04"))
	}
}

func TestCounterProposeAndAccept(t *testing.T) {
	ap := newProposed(t)
	newStart := monday(14, 0).AddDate(0, 0, 1)

	if err := CounterPropose(ap, newStart, "prefer afternoon"); err != nil {
		t.Fatalf("CounterPropose: %v", err)
	}
	if ap.Status != string(StatusCounterProposed) {
		t.Fatalf("status = %q, want counter_proposed", ap.Status)
	}
	if ap.CounterProposalDatetime == nil || !ap.CounterProposalDatetime.Equal(newStart) {
		t.Fatalf("counter datetime not recorded: %v", ap.CounterProposalDatetime)
	}
	if ap.CounterProposalMessage == nil || *ap.CounterProposalMessage != "prefer afternoon" {
		t.Fatalf("counter message not recorded: %v", ap.CounterProposalMessage)
	}

	if err := AcceptCounter(ap); err != nil {
		t.Fatalf("AcceptCounter: %v", err)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Fatalf("status = %q, want confirmed", ap.Status)
	}
	if !ap.StartDatetime.Equal(newStart) {
		t.Fatalf("start = %s, want counter-proposed datetime", ap.StartDatetime)
	}
	if ap.CounterProposalDatetime != nil || ap.CounterProposalMessage != nil {
		t.Fatal("counter fields must be cleared after acceptance")
	}
}

func TestCounterPropose_EmptyMessageStaysNull(t *testing.T) {
	ap := newProposed(t)
	if err := CounterPropose(ap, monday(14, 0), ""); err != nil {
		t.Fatalf("CounterPropose: %v", err)
	}
	if ap.CounterProposalMessage != nil {
		t.Fatal("empty message must stay null")
	}
}

func TestRejectCounter(t *testing.T) {
	ap := newProposed(t)
	if err := CounterPropose(ap, monday(14, 0), "later please"); err != nil {
		t.Fatalf("CounterPropose: %v", err)
	}

	if err := RejectCounter(ap); err != nil {
		t.Fatalf("RejectCounter: %v", err)
	}
	if ap.Status != string(StatusCancelled) {
		t.Fatalf("status = %q, want cancelled", ap.Status)
	}
	if ap.CounterProposalDatetime != nil || ap.CounterProposalMessage != nil {
		t.Fatal("counter fields must be cleared after rejection")
	}
}

func TestConfirm_AfterCounterProposeFails(t *testing.T) {
	ap := newProposed(t)
	if err := CounterPropose(ap, monday(14, 0), ""); err != nil {
		t.Fatalf("CounterPropose: %v", err)
	}

	if err := Confirm(ap, ActorClient); !IsInvalidTransition(err) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestTerminalRejectsEverything(t *testing.T) {
	ap := newProposed(t)
	if err := Cancel(ap, ActorShop); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if err := Confirm(ap, ActorShop); !IsInvalidTransition(err) {
		t.Fatalf("confirm on cancelled: %v", err)
	}
	if err := Complete(ap); !IsInvalidTransition(err) {
		t.Fatalf("complete on cancelled: %v", err)
	}
	notes := "late note"
	if err := Edit(ap, EditInput{Notes: &notes}); !IsInvalidTransition(err) {
		t.Fatalf("edit on cancelled: %v", err)
	}
}

func TestEdit(t *testing.T) {
	ap := newProposed(t)

	newStart := monday(11, 0)
	dur := 45
	typ := TypeRepair
	notes := "bring charger"
	err := Edit(ap, EditInput{Start: &newStart, DurationMinutes: &dur, Type: &typ, Notes: &notes})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if !ap.StartDatetime.Equal(newStart) || ap.DurationMinutes != 45 ||
		ap.AppointmentType != string(TypeRepair) || ap.Notes != "bring charger" {
		t.Fatalf("edit not applied: %+v", ap)
	}
	if ap.Status != string(StatusProposed) {
		t.Fatalf("edit must not change status, got %q", ap.Status)
	}

	bad := 0
	if err := Edit(ap, EditInput{DurationMinutes: &bad}); !IsValidation(err) {
		t.Fatalf("expected validation error for zero duration, got %v", err)
	}
}

func TestTokenEqual(t *testing.T) {
	tok, err := NewConfirmationToken()
	if err != nil {
		t.Fatalf("NewConfirmationToken: %v", err)
	}
	if len(tok) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(tok))
	}
	if !TokenEqual(tok, tok) {
		t.Fatal("token must equal itself")
	}
	if TokenEqual(tok, tok[:63]+"x") {
		t.Fatal("different tokens must not match")
	}
	if TokenEqual(tok, "") {
		t.Fatal("empty token must not match")
	}
}
