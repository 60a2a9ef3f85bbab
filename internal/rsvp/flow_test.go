package rsvp

import (
	"errors"
	"testing"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

func TestHappyPathAccept(t *testing.T) {
	steps := []struct {
		event Event
		want  State
	}{
		{EventOpen, StateSearch},
		{EventSelectGuest, StateForm},
		{EventSubmitAccept, StateDeparture},
		{EventSubmitDeparture, StateSuccess},
	}
	s := StateLanding
	for _, step := range steps {
		next, err := Next(s, step.event)
		if err != nil {
			t.Fatalf("Next(%s, %s): %v", s, step.event, err)
		}
		if next != step.want {
			t.Fatalf("Next(%s, %s) = %s, want %s", s, step.event, next, step.want)
		}
		s = next
	}
}

func TestDeclineSkipsDeparture(t *testing.T) {
	s, err := Next(StateForm, EventSubmitDecline)
	if err != nil || s != StateSuccess {
		t.Fatalf("decline from form = (%s, %v), want success", s, err)
	}
}

func TestDepartureBeforeAcceptRejected(t *testing.T) {
	for _, from := range []State{StateLanding, StateSearch, StateForm} {
		if _, err := Next(from, EventSubmitDeparture); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("departure from %s: err = %v, want ErrInvalidTransition", from, err)
		}
	}
}

func TestReselectFromForm(t *testing.T) {
	if _, err := Next(StateForm, EventSelectGuest); err != nil {
		t.Fatalf("re-selecting a guest from the form should be legal: %v", err)
	}
}

func TestStateOf(t *testing.T) {
	dep := &model.DepartureDetails{Applicable: true, Date: "2026-10-02"}
	cases := []struct {
		name  string
		guest model.Guest
		want  State
	}{
		{"pending", model.Guest{Status: model.RSVPPending}, StateForm},
		{"accepted no departure", model.Guest{Status: model.RSVPAccepted}, StateDeparture},
		{"accepted with departure", model.Guest{Status: model.RSVPAccepted, Departure: dep}, StateSuccess},
		{"declined", model.Guest{Status: model.RSVPDeclined}, StateSuccess},
	}
	for _, tc := range cases {
		if got := StateOf(&tc.guest); got != tc.want {
			t.Errorf("%s: StateOf = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestCanSubmitDeparture(t *testing.T) {
	accepted := &model.Guest{Status: model.RSVPAccepted}
	if !CanSubmitDeparture(accepted) {
		t.Fatal("accepted guest without departure should be able to submit")
	}
	pending := &model.Guest{Status: model.RSVPPending}
	if CanSubmitDeparture(pending) {
		t.Fatal("pending guest must not submit departure details")
	}
	declined := &model.Guest{Status: model.RSVPDeclined}
	if CanSubmitDeparture(declined) {
		t.Fatal("declined guest must not submit departure details")
	}
}

func TestCanSubmitRSVP(t *testing.T) {
	// Guests may revise their reply until departure details are stored.
	if !CanSubmitRSVP(&model.Guest{Status: model.RSVPPending}) {
		t.Fatal("pending guest should be able to submit")
	}
	if !CanSubmitRSVP(&model.Guest{Status: model.RSVPAccepted}) {
		t.Fatal("accepted guest without departure should be able to revise")
	}
	done := &model.Guest{Status: model.RSVPAccepted, Departure: &model.DepartureDetails{Applicable: false}}
	if CanSubmitRSVP(done) {
		t.Fatal("finished guest must not revise the reply")
	}
}
