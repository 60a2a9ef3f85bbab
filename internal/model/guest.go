package model

import "time"

// RSVPStatus is the guest's reply to an invitation.
type RSVPStatus string

const (
    RSVPPending  RSVPStatus = "pending"
    RSVPAccepted RSVPStatus = "accepted"
    RSVPDeclined RSVPStatus = "declined"
)

// Valid reports whether s is one of the three known statuses.
func (s RSVPStatus) Valid() bool {
    switch s {
    case RSVPPending, RSVPAccepted, RSVPDeclined:
        return true
    }
    return false
}

// Guest types recorded per attendee.
const (
    GuestTypeAdult = "Adult"
    GuestTypeChild = "Child"
)

// IDTypes lists the accepted ID document kinds offered on the RSVP
// form. The column is free text, so older records may carry other
// values; these are only the choices presented to new submissions.
var IDTypes = []string{"Aadhar Card", "Passport", "Driving License", "Voter ID"}

// Attendee is one named individual covered by a guest's invitation.
// The list lives in the guests.attendees_data JSON column; its order
// is display order only and carries no meaning. An attendee counts as
// documented when at least one ID image reference is present.
type Attendee struct {
    Name      string `json:"name"`
    Age       int    `json:"age,omitempty"`
    GuestType string `json:"guest_type,omitempty"` // Adult | Child
    IDType    string `json:"id_type,omitempty"`
    IDFront   string `json:"id_front,omitempty"` // public URL of the front image
    IDBack    string `json:"id_back,omitempty"`  // public URL of the back image
}

// Documented reports whether the attendee has uploaded at least one
// side of an ID document.
func (a Attendee) Documented() bool {
    return a.IDFront != "" || a.IDBack != ""
}

// Traveler is one person's return-travel entry inside
// DepartureDetails.
type Traveler struct {
    Name      string `json:"name"`
    Mode      string `json:"mode,omitempty"`    // e.g. Train, Flight, Car
    Station   string `json:"station,omitempty"` // boarding station / airport
    TicketRef string `json:"ticket_ref,omitempty"`
}

// DepartureDetails is the optional structured record of a guest's
// return travel, collected as a second step after an accepted RSVP.
// Stored in the guests.departure_details JSON column.
type DepartureDetails struct {
    Applicable bool       `json:"applicable"`
    Date       string     `json:"date,omitempty"` // YYYY-MM-DD
    Time       string     `json:"time,omitempty"` // HH:MM
    Travelers  []Traveler `json:"travelers,omitempty"`
    Message    string     `json:"message,omitempty"`
}

// NormalizeReply applies the decline rule to a staged reply before it
// is persisted: a declined guest never stores attendees or a positive
// attending count, no matter what the client staged. Other statuses
// pass through unchanged.
func NormalizeReply(status RSVPStatus, attendingCount int, attendees []Attendee) (int, []Attendee) {
    if status == RSVPDeclined {
        return 0, nil
    }
    return attendingCount, attendees
}

// Guest is a row in the `guests` table. A guest is created by CSV
// import or manual add, answers the RSVP on the public invite page and
// may later attach departure details. AttendingCount mirrors
// len(Attendees) for accepted guests and is forced to zero on decline.
//
// Fields:
//  ID                – primary key identifier.
//  EventID           – event the guest belongs to.
//  Name              – invited name (search key on the public page).
//  Email             – optional contact email.
//  Phone             – optional contact phone.
//  AllowedGuests     – how many people the invitation covers.
//  Status            – pending | accepted | declined.
//  AttendingCount    – number of attendees coming (0 when declined).
//  Message           – optional free-text note for the host.
//  ArrivalLocation   – optional arrival summary fields.
//  ArrivalTime       – optional arrival date-time.
//  DepartureLocation – optional departure summary fields.
//  DepartureTime     – optional departure date-time.
//  Attendees         – attendee records (attendees_data JSON column).
//  Departure         – structured departure details (JSON column).
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type Guest struct {
    ID                uint64            // guests.id
    EventID           uint64            // guests.event_id
    Name              string            // guests.name
    Email             *string           // guests.email (nullable)
    Phone             *string           // guests.phone (nullable)
    AllowedGuests     int               // guests.allowed_guests
    Status            RSVPStatus        // guests.status
    AttendingCount    int               // guests.attending_count
    Message           string            // guests.message
    ArrivalLocation   string            // guests.arrival_location
    ArrivalTime       string            // guests.arrival_time
    DepartureLocation string            // guests.departure_location
    DepartureTime     string            // guests.departure_time
    Attendees         []Attendee        // guests.attendees_data (JSON)
    Departure         *DepartureDetails // guests.departure_details (JSON, nullable)
    CreatedAt         time.Time         // guests.created_at
    UpdatedAt         time.Time         // guests.updated_at
}

// DocumentedCount returns how many attendees have at least one ID
// image uploaded.
func (g Guest) DocumentedCount() int {
    n := 0
    for _, a := range g.Attendees {
        if a.Documented() {
            n++
        }
    }
    return n
}
