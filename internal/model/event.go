package model

import "time"

// Event is a row in the `events` table. Every event belongs to a
// single admin user and carries a unique URL slug used to build the
// shareable invite link (/r/<slug>). A hotel partner gains read-only
// access to the event's guest list when AssignedHotelEmail matches the
// email of a HOTEL account.
//
// Fields:
//  ID                 – primary key identifier.
//  OwnerID            – admin user who created the event.
//  Name               – display name of the event.
//  Date               – when the event takes place.
//  Location           – free-text venue description.
//  Description        – optional longer text shown on the invite page.
//  Slug               – unique URL segment for the public invite link.
//  AssignedHotelEmail – hotel partner login email (nullable).
//  AssignedHotelName  – hotel partner display name (nullable).
//  CreatedAt          – timestamp of creation.
//  UpdatedAt          – timestamp of last update.
type Event struct {
    ID                 uint64    // events.id
    OwnerID            uint64    // events.owner_id
    Name               string    // events.name
    Date               time.Time // events.date
    Location           string    // events.location
    Description        string    // events.description
    Slug               string    // events.slug
    AssignedHotelEmail *string   // events.assigned_hotel_email (nullable)
    AssignedHotelName  *string   // events.assigned_hotel_name (nullable)
    CreatedAt          time.Time // events.created_at
    UpdatedAt          time.Time // events.updated_at
}
