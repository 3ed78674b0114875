package bookingsvc

import (
	"context"
	"time"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/clock"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	SetStatus(ctx context.Context, id int64, status model.BookingStatus) (bool, error)
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, from, size int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, from, size int) ([]model.Booking, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type ItemRepo interface {
	ByID(ctx context.Context, id int64) (*model.Item, error)
}

type Service interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error)
	UpdateStatus(ctx context.Context, userID, bookingID int64, approve bool) (*model.Booking, error)
	Get(ctx context.Context, userID, bookingID int64) (*model.Booking, error)
	ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)
	ListByOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error)
}

type service struct {
	br  Repo
	ur  UserRepo
	ir  ItemRepo
	clk clock.Clock
}

func New(br Repo, ur UserRepo, ir ItemRepo, clk clock.Clock) Service {
	return &service{br: br, ur: ur, ir: ir, clk: clk}
}

func (s *service) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error) {
	booker, err := s.ur.ByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if booker == nil {
		return nil, apperr.NotFound("user with id=%d not found", bookerID)
	}

	item, err := s.ir.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("item with id=%d not found", itemID)
	}

	// The owner asking for their own item is reported as absent, not as
	// forbidden.
	if item.OwnerID == bookerID {
		return nil, apperr.NotFound("owner cannot book own item")
	}
	if !item.Available {
		return nil, apperr.Validation("item with id=%d is not available for booking", itemID)
	}

	now := s.clk.Now()
	if !start.Before(end) {
		return nil, apperr.Validation("booking start must be before its end")
	}
	if start.Before(now) {
		return nil, apperr.Validation("booking start must not be in the past")
	}
	if end.Before(now) {
		return nil, apperr.Validation("booking end must not be in the past")
	}

	b := &model.Booking{
		Start:       start,
		End:         end,
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Status:      model.StatusWaiting,
	}
	if err := s.br.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, userID, bookingID int64, approve bool) (*model.Booking, error) {
	b, err := s.br.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("booking with id=%d not found", bookingID)
	}
	if b.ItemOwnerID != userID {
		return nil, apperr.NotFound("only the item owner can approve or reject a booking")
	}

	target := model.StatusRejected
	if approve {
		target = model.StatusApproved
	}
	if b.Status == target {
		return nil, alreadyInState(target)
	}

	// Conditional write: a concurrent call that got there first leaves no row
	// to update, and loses the same way a repeated call does.
	changed, err := s.br.SetStatus(ctx, bookingID, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, alreadyInState(target)
	}

	b.Status = target
	return b, nil
}

func alreadyInState(status model.BookingStatus) error {
	if status == model.StatusApproved {
		return apperr.Validation("booking is already approved")
	}
	return apperr.Validation("booking is already rejected")
}

func (s *service) Get(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
	b, err := s.br.ByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("booking with id=%d not found", bookingID)
	}
	if b.BookerID != userID && b.ItemOwnerID != userID {
		return nil, apperr.NotFound("user %d is neither booker nor owner of booking %d", userID, bookingID)
	}
	return b, nil
}

func (s *service) ListByBooker(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	st, err := s.checkListArgs(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	return s.br.ListByBooker(ctx, userID, st, s.clk.Now(), from, size)
}

func (s *service) ListByOwner(ctx context.Context, userID int64, state string, from, size int) ([]model.Booking, error) {
	st, err := s.checkListArgs(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	return s.br.ListByOwner(ctx, userID, st, s.clk.Now(), from, size)
}

func (s *service) checkListArgs(ctx context.Context, userID int64, state string) (model.BookingState, error) {
	st, err := model.ParseBookingState(state)
	if err != nil {
		return "", apperr.Validation("%s", err.Error())
	}
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.NotFound("user with id=%d not found", userID)
	}
	return st, nil
}
