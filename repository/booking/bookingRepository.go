package bookingrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	SetStatus(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, from, size int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, from, size int) ([]model.Booking, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error)
	HasCompletedByBooker(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

// joined booking row: display names come from items and users.
const bookingSelect = `
	SELECT b.id, b.start_date, b.end_date, b.item_id, i.name, i.owner_id,
	       b.booker_id, u.name, b.status
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		b.Start, b.End, b.ItemID, b.BookerID, b.Status,
	).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	q := bookingSelect + ` WHERE b.id = $1`
	b := &model.Booking{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName, &b.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SetStatus writes the new status only when the booking is not in it already,
// so two concurrent approvals cannot both win. Returns whether a row changed.
func (r *repo) SetStatus(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		  AND status <> $2`
	res, err := r.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, from, size int) ([]model.Booking, error) {
	return r.list(ctx, "b.booker_id", bookerID, state, now, from, size)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, from, size int) ([]model.Booking, error) {
	return r.list(ctx, "i.owner_id", ownerID, state, now, from, size)
}

func (r *repo) list(ctx context.Context, col string, id int64, state model.BookingState, now time.Time, from, size int) ([]model.Booking, error) {
	args := []any{id}
	cond := ""
	switch state {
	case model.StateCurrent:
		cond = " AND b.start_date < $2 AND b.end_date > $2"
		args = append(args, now)
	case model.StatePast:
		cond = " AND b.end_date < $2"
		args = append(args, now)
	case model.StateFuture:
		cond = " AND b.start_date > $2"
		args = append(args, now)
	case model.StateWaiting, model.StateRejected:
		cond = " AND b.status = $2"
		args = append(args, string(state))
	}
	args = append(args, from, size)

	q := fmt.Sprintf(`%s
		WHERE %s = $1%s
		ORDER BY b.start_date DESC
		OFFSET $%d LIMIT $%d`,
		bookingSelect, col, cond, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
			&b.BookerID, &b.BookerName, &b.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// LastForItem picks the booking with the latest start before now, any status.
func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error) {
	const q = `
		SELECT id, booker_id
		FROM bookings
		WHERE item_id = $1
		  AND start_date < $2
		ORDER BY start_date DESC, id DESC
		LIMIT 1`
	return r.queryRef(ctx, q, itemID, now)
}

// NextForItem picks the booking with the earliest start after now, skipping
// rejected ones.
func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error) {
	const q = `
		SELECT id, booker_id
		FROM bookings
		WHERE item_id = $1
		  AND start_date > $2
		  AND status <> 'REJECTED'
		ORDER BY start_date, id
		LIMIT 1`
	return r.queryRef(ctx, q, itemID, now)
}

func (r *repo) queryRef(ctx context.Context, q string, args ...any) (*model.BookingRef, error) {
	ref := &model.BookingRef{}
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&ref.ID, &ref.BookerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *repo) HasCompletedByBooker(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE booker_id = $1
			  AND item_id = $2
			  AND end_date < $3
			  AND status <> 'REJECTED'
		)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookerID, itemID, now).Scan(&ok)
	return ok, err
}
