// This file defines repository methods for events. An event belongs to a
// single admin user and carries a unique slug used for the public invite
// link. Hotel accounts never query events by owner; they query by the
// assigned_hotel_email column instead.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
	"strings"      // strings normalizes hotel emails before comparison
	"time"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// ErrEventNotFound is returned when an event cannot be found in the DB.
var ErrEventNotFound = errors.New("event not found")

// EventRepo encapsulates all database queries related to events. It
// depends on a sql.DB connection which should be configured elsewhere.
type EventRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewEventRepo constructs an EventRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup. There is no initialization logic beyond assigning the field.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventCols = `id, owner_id, name, date, location, description, slug,
           assigned_hotel_email, assigned_hotel_name, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Date, &e.Location, &e.Description,
		&e.Slug, &e.AssignedHotelEmail, &e.AssignedHotelName, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new event into the database. On success the event's
// ID field will be populated with the auto‑generated value. After the
// insert, a SELECT is executed to populate the CreatedAt and UpdatedAt
// fields so that callers receive a fully populated record. A duplicate
// slug surfaces as ErrConflict.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const qInsert = `INSERT INTO events (owner_id, name, date, location, description, slug)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, e.OwnerID, e.Name, e.Date, e.Location, e.Description, e.Slug)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	// Follow‑up SELECT to populate default timestamp fields.
	const qSelect = "SELECT created_at, updated_at FROM events WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, e.ID).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetByID fetches an event by its ID regardless of owner. It returns
// ErrEventNotFound if no row is found. Callers can use this method
// when they don't need to enforce ownership in the repository layer.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = "SELECT " + eventCols + " FROM events WHERE id = ?"
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// GetByIDAndOwner fetches an event by id but only if it belongs to the
// specified owner. If the event doesn't exist or is owned by someone
// else, ErrEventNotFound is returned.
func (r *EventRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Event, error) {
	const q = "SELECT " + eventCols + " FROM events WHERE id = ? AND owner_id = ?"
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// GetBySlug resolves the public invite link. Slugs are unique so at
// most one row matches.
func (r *EventRepo) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	const q = "SELECT " + eventCols + " FROM events WHERE slug = ?"
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// ListByOwner returns all events for a specific owner ordered by date.
func (r *EventRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.Event, error) {
	const q = "SELECT " + eventCols + ` FROM events WHERE owner_id = ? ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByHotelEmail returns the events assigned to a hotel account,
// matched on the normalized login email. This is the only event query
// the hotel role is allowed to make.
func (r *EventRepo) ListByHotelEmail(ctx context.Context, email string) ([]*model.Event, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = "SELECT " + eventCols + ` FROM events WHERE assigned_hotel_email = ? ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDAndHotelEmail fetches a single event provided it is assigned
// to the given hotel email. ErrEventNotFound covers both "no such
// event" and "assigned to someone else" so the handler leaks nothing.
func (r *EventRepo) GetByIDAndHotelEmail(ctx context.Context, id uint64, email string) (*model.Event, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = "SELECT " + eventCols + " FROM events WHERE id = ? AND assigned_hotel_email = ?"
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return e, err
}

// Update changes the editable event fields if the row belongs to the
// provided owner. It returns sql.ErrNoRows when no row is affected
// (not found / not owned).
func (r *EventRepo) Update(ctx context.Context, id, ownerID uint64, name string, date time.Time, location, description string) error {
	const q = `UPDATE events
	           SET name = ?, date = ?, location = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, date, location, description, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AssignHotel records the hotel partner for an event. Email is stored
// normalized; name is the hotel account's display name at assignment
// time. Returns sql.ErrNoRows when the event is missing or not owned.
func (r *EventRepo) AssignHotel(ctx context.Context, id, ownerID uint64, email, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `UPDATE events
	           SET assigned_hotel_email = ?, assigned_hotel_name = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, email, name, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RemoveHotel clears the hotel assignment, immediately revoking that
// hotel's visibility of the event.
func (r *EventRepo) RemoveHotel(ctx context.Context, id, ownerID uint64) error {
	const q = `UPDATE events
	           SET assigned_hotel_email = NULL, assigned_hotel_name = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOwner removes an event and all its guests provided it
// belongs to the specified owner. If the event does not exist,
// sql.ErrNoRows is returned. If the event exists but is owned by a
// different user, ErrForbidden is returned. The deletion occurs within
// a transaction to maintain integrity.
func (r *EventRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Verify event exists and ownership
	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, `SELECT owner_id FROM events WHERE id = ?`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return err
	}
	if dbOwnerID != ownerID {
		return ErrForbidden
	}
	// Cascade delete: guests first, then the event row itself
	if _, err = tx.ExecContext(ctx, `DELETE FROM guests WHERE event_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
