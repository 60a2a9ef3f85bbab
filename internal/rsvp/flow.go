// Package rsvp models the guest-facing reply flow as an explicit
// state machine. The public endpoints derive a guest's current state
// from the stored row and ask the machine whether the requested step
// is legal, so an out-of-order request (departure details before an
// accepted reply, a second search mid-form) fails uniformly instead
// of depending on per-handler checks.
package rsvp

import (
	"errors"
	"fmt"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// State is one step of the invite flow.
type State string

const (
	StateLanding   State = "landing"   // invite page opened, nothing chosen yet
	StateSearch    State = "search"    // guest is looking up their invitation
	StateForm      State = "form"      // invitation found, RSVP form open
	StateDeparture State = "departure" // accepted, collecting departure details
	StateSuccess   State = "success"   // flow finished
)

// Event is a typed transition trigger.
type Event string

const (
	EventOpen            Event = "open"             // landing -> search
	EventSelectGuest     Event = "select_guest"     // search -> form
	EventSubmitAccept    Event = "submit_accept"    // form -> departure
	EventSubmitDecline   Event = "submit_decline"   // form -> success
	EventSubmitDeparture Event = "submit_departure" // departure -> success
	EventSkipDeparture   Event = "skip_departure"   // departure -> success
)

// ErrInvalidTransition is returned when an event is not legal in the
// current state. Handlers translate it into HTTP 409.
var ErrInvalidTransition = errors.New("invalid rsvp transition")

var transitions = map[State]map[Event]State{
	StateLanding: {
		EventOpen: StateSearch,
	},
	StateSearch: {
		EventSelectGuest: StateForm,
	},
	StateForm: {
		EventSubmitAccept:  StateDeparture,
		EventSubmitDecline: StateSuccess,
		// Re-searching from the form is allowed; picking the wrong
		// name on a shared device is common.
		EventSelectGuest: StateForm,
	},
	StateDeparture: {
		EventSubmitDeparture: StateSuccess,
		EventSkipDeparture:   StateSuccess,
	},
}

// Next returns the state reached by applying event in state, or
// ErrInvalidTransition when the pair is not in the table.
func Next(state State, event Event) (State, error) {
	if to, ok := transitions[state][event]; ok {
		return to, nil
	}
	return state, fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, event, state)
}

// StateOf derives the flow state of a stored guest. A pending guest
// sits at the form; an accepted guest without departure details is in
// the departure step; anything else is done. This is what lets the
// stateless HTTP API reject departure-before-accept.
func StateOf(g *model.Guest) State {
	switch g.Status {
	case model.RSVPAccepted:
		if g.Departure == nil {
			return StateDeparture
		}
		return StateSuccess
	case model.RSVPDeclined:
		return StateSuccess
	default:
		return StateForm
	}
}

// CanSubmitRSVP reports whether the guest may (re)submit the RSVP
// form. Guests are allowed to change their answer until departure
// details are recorded.
func CanSubmitRSVP(g *model.Guest) bool {
	return StateOf(g) == StateForm || StateOf(g) == StateDeparture
}

// CanSubmitDeparture reports whether departure details are legal for
// this guest: only after an accepted RSVP.
func CanSubmitDeparture(g *model.Guest) bool {
	_, err := Next(StateOf(g), EventSubmitDeparture)
	return err == nil
}
