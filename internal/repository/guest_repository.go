package repository // repository defines data access for guests

import (
	"context"       // context allows query cancellation and timeouts
	"database/sql"  // sql provides DB primitives
	"encoding/json" // json encodes the attendee and departure columns
	"errors"        // errors for sentinel definitions
	"strings"

	"github.com/iliyamo/guestlist-rsvp/internal/model"
)

// ErrGuestNotFound is returned when a guest lookup yields no rows.
var ErrGuestNotFound = errors.New("guest not found")

// GuestRepo provides methods to work with guests in the database.
// Attendees and departure details are stored as JSON in the
// attendees_data and departure_details columns; the repo is the only
// layer that touches their serialized form.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the given DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

const guestCols = `id, event_id, name, email, phone, allowed_guests, status,
           attending_count, message, arrival_location, arrival_time,
           departure_location, departure_time, attendees_data, departure_details,
           created_at, updated_at`

func scanGuest(row interface{ Scan(...any) error }) (*model.Guest, error) {
	var (
		g         model.Guest
		status    string
		attendees sql.NullString
		departure sql.NullString
	)
	err := row.Scan(&g.ID, &g.EventID, &g.Name, &g.Email, &g.Phone, &g.AllowedGuests,
		&status, &g.AttendingCount, &g.Message, &g.ArrivalLocation, &g.ArrivalTime,
		&g.DepartureLocation, &g.DepartureTime, &attendees, &departure,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.Status = model.RSVPStatus(status)
	if attendees.Valid && attendees.String != "" {
		if err := json.Unmarshal([]byte(attendees.String), &g.Attendees); err != nil {
			return nil, err
		}
	}
	if departure.Valid && departure.String != "" {
		var d model.DepartureDetails
		if err := json.Unmarshal([]byte(departure.String), &d); err != nil {
			return nil, err
		}
		g.Departure = &d
	}
	return &g, nil
}

// marshalAttendees returns the JSON for the attendees_data column, or
// nil for an empty list so the column stays NULL.
func marshalAttendees(attendees []model.Attendee) (any, error) {
	if len(attendees) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(attendees)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Create inserts a single guest record. On success the guest's ID is
// populated. New guests always start as pending with zero attending.
func (r *GuestRepo) Create(ctx context.Context, g *model.Guest) error {
	const q = `INSERT INTO guests (event_id, name, email, phone, allowed_guests, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, g.EventID, g.Name, g.Email, g.Phone, g.AllowedGuests, string(model.RSVPPending))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	g.Status = model.RSVPPending
	return nil
}

// CreateBulk inserts multiple guests in a single statement inside a
// transaction. Either every row lands or none does, so a CSV import
// can never leave a half-written guest list behind.
func (r *GuestRepo) CreateBulk(ctx context.Context, eventID uint64, guests []model.Guest) error {
	if len(guests) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	query := `INSERT INTO guests (event_id, name, email, phone, allowed_guests, status) VALUES `
	args := make([]interface{}, 0, len(guests)*6)
	for i, g := range guests {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, eventID, g.Name, g.Email, g.Phone, g.AllowedGuests, string(model.RSVPPending))
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ListByEvent retrieves all guests of an event ordered by name. When
// search is non-empty, only names containing it (case-insensitive)
// are returned. This backs both the admin list view and the exports.
func (r *GuestRepo) ListByEvent(ctx context.Context, eventID uint64, search string) ([]*model.Guest, error) {
	q := "SELECT " + guestCols + ` FROM guests WHERE event_id = ?`
	args := []interface{}{eventID}
	if s := strings.TrimSpace(search); s != "" {
		q += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	q += ` ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SearchByName backs the public invite page's "find your invitation"
// step. Only the fields a guest needs to recognize themselves are
// safe to expose from the result; handlers shape the response.
func (r *GuestRepo) SearchByName(ctx context.Context, eventID uint64, name string) ([]*model.Guest, error) {
	return r.ListByEvent(ctx, eventID, name)
}

// GetByID retrieves a guest by its id (no event scoping).
func (r *GuestRepo) GetByID(ctx context.Context, id uint64) (*model.Guest, error) {
	const q = "SELECT " + guestCols + " FROM guests WHERE id = ?"
	g, err := scanGuest(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	return g, err
}

// GetByIDAndEvent retrieves a guest scoped to an event. Public RSVP
// routes always pass the event resolved from the slug so a guest ID
// from one event cannot be replayed against another.
func (r *GuestRepo) GetByIDAndEvent(ctx context.Context, id, eventID uint64) (*model.Guest, error) {
	const q = "SELECT " + guestCols + " FROM guests WHERE id = ? AND event_id = ?"
	g, err := scanGuest(r.db.QueryRowContext(ctx, q, id, eventID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	return g, err
}

// GetByIDAndOwner retrieves a guest while enforcing event ownership
// via a join, for the admin routes.
func (r *GuestRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Guest, error) {
	const q = `SELECT g.id, g.event_id, g.name, g.email, g.phone, g.allowed_guests, g.status,
	           g.attending_count, g.message, g.arrival_location, g.arrival_time,
	           g.departure_location, g.departure_time, g.attendees_data, g.departure_details,
	           g.created_at, g.updated_at
	           FROM guests g
	           JOIN events e ON e.id = g.event_id
	           WHERE g.id = ? AND e.owner_id = ?`
	g, err := scanGuest(r.db.QueryRowContext(ctx, q, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	return g, err
}

// UpdateByIDAndOwner updates the admin-editable guest fields while
// enforcing event ownership. Returns sql.ErrNoRows when not found or
// not owned by this owner.
func (r *GuestRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, name string, email, phone *string, allowedGuests int) error {
	const q = `UPDATE guests g
	           JOIN events e ON e.id = g.event_id
	           SET g.name = ?, g.email = ?, g.phone = ?, g.allowed_guests = ?, g.updated_at = CURRENT_TIMESTAMP
	           WHERE g.id = ? AND e.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, email, phone, allowedGuests, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateRSVP records a guest's reply from the public invite page. The
// decline rule is applied here, not in the handler, so no code path
// can store a declined guest with attendees counted. Attendee records
// and the free-text fields are replaced wholesale with what the form
// submitted.
func (r *GuestRepo) UpdateRSVP(ctx context.Context, id, eventID uint64, status model.RSVPStatus, attendingCount int, message string, attendees []model.Attendee, arrivalLocation, arrivalTime, departureLocation, departureTime string) error {
	attendingCount, attendees = model.NormalizeReply(status, attendingCount, attendees)
	data, err := marshalAttendees(attendees)
	if err != nil {
		return err
	}
	const q = `UPDATE guests
	           SET status = ?, attending_count = ?, message = ?, attendees_data = ?,
	               arrival_location = ?, arrival_time = ?, departure_location = ?, departure_time = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND event_id = ?`
	res, err := r.db.ExecContext(ctx, q, string(status), attendingCount, message, data,
		arrivalLocation, arrivalTime, departureLocation, departureTime, id, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateAttendees replaces the attendee list alone. Used when a guest
// uploads ID documents after the initial RSVP submission.
func (r *GuestRepo) UpdateAttendees(ctx context.Context, id, eventID uint64, attendees []model.Attendee) error {
	data, err := marshalAttendees(attendees)
	if err != nil {
		return err
	}
	const q = `UPDATE guests
	           SET attendees_data = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND event_id = ?`
	res, err := r.db.ExecContext(ctx, q, data, id, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateDeparture stores the structured departure details. Only
// guests who already accepted may record departure; the repo enforces
// that in SQL so the check survives any handler reordering.
func (r *GuestRepo) UpdateDeparture(ctx context.Context, id, eventID uint64, d *model.DepartureDetails) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	const q = `UPDATE guests
	           SET departure_details = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND event_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, string(b), id, eventID, string(model.RSVPAccepted))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByIDAndOwner deletes a guest while ensuring the event belongs
// to the owner.
func (r *GuestRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE g FROM guests g
	           JOIN events e ON e.id = g.event_id
	           WHERE g.id = ? AND e.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// EventStats summarizes RSVP progress for one event.
type EventStats struct {
	Total     int // all guests on the list
	Accepted  int // guests who accepted
	Declined  int // guests who declined
	Pending   int // guests yet to answer
	Attending int // sum of attending_count over accepted guests
}

// StatsByEvent aggregates RSVP counts for the admin dashboard.
func (r *GuestRepo) StatsByEvent(ctx context.Context, eventID uint64) (EventStats, error) {
	const q = `SELECT
	             COUNT(*),
	             COALESCE(SUM(status = 'accepted'), 0),
	             COALESCE(SUM(status = 'declined'), 0),
	             COALESCE(SUM(status = 'pending'), 0),
	             COALESCE(SUM(CASE WHEN status = 'accepted' THEN attending_count ELSE 0 END), 0)
	           FROM guests WHERE event_id = ?`
	var s EventStats
	err := r.db.QueryRowContext(ctx, q, eventID).
		Scan(&s.Total, &s.Accepted, &s.Declined, &s.Pending, &s.Attending)
	return s, err
}
