package model

import "testing"

func TestNormalizeReply(t *testing.T) {
    staged := []Attendee{{Name: "Asha", GuestType: GuestTypeAdult}, {Name: "Ravi", GuestType: GuestTypeChild}}

    cases := []struct {
        name      string
        status    RSVPStatus
        count     int
        attendees []Attendee
        wantCount int
        wantNil   bool
    }{
        {"declined drops staged attendees", RSVPDeclined, 2, staged, 0, true},
        {"declined with zero staged", RSVPDeclined, 0, nil, 0, true},
        {"accepted passes through", RSVPAccepted, 2, staged, 2, false},
        {"pending passes through", RSVPPending, 1, staged[:1], 1, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            count, attendees := NormalizeReply(tc.status, tc.count, tc.attendees)
            if count != tc.wantCount {
                t.Fatalf("count = %d, want %d", count, tc.wantCount)
            }
            if tc.wantNil && attendees != nil {
                t.Fatalf("attendees = %v, want nil", attendees)
            }
            if !tc.wantNil && len(attendees) != len(tc.attendees) {
                t.Fatalf("attendees = %v, want %v", attendees, tc.attendees)
            }
        })
    }
}

func TestDocumentedCount(t *testing.T) {
    g := Guest{Attendees: []Attendee{
        {Name: "Asha", IDFront: "http://x/front.jpg"},
        {Name: "Ravi", IDBack: "http://x/back.jpg"},
        {Name: "Mina"},
    }}
    if got := g.DocumentedCount(); got != 2 {
        t.Fatalf("DocumentedCount = %d, want 2", got)
    }
}
