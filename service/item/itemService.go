package itemsvc

import (
	"context"
	"strings"
	"time"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/clock"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type BookingRepo interface {
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error)
	HasCompletedByBooker(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type CommentRepo interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type Service interface {
	Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*model.Item, error)
	Update(ctx context.Context, userID, itemID int64, patch model.ItemPatch) (*model.Item, error)
	Get(ctx context.Context, userID, itemID int64) (*model.ItemDetail, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemDetail, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error)
}

type service struct {
	r   Repo
	ur  UserRepo
	br  BookingRepo
	cr  CommentRepo
	clk clock.Clock
}

func New(r Repo, ur UserRepo, br BookingRepo, cr CommentRepo, clk clock.Clock) Service {
	return &service{r: r, ur: ur, br: br, cr: cr, clk: clk}
}

func (s *service) Create(ctx context.Context, ownerID int64, name, description string, available bool, requestID *int64) (*model.Item, error) {
	ok, err := s.ur.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user with id=%d not found", ownerID)
	}

	it := &model.Item{
		Name:        name,
		Description: description,
		Available:   available,
		OwnerID:     ownerID,
		RequestID:   requestID,
	}
	if err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, userID, itemID int64, patch model.ItemPatch) (*model.Item, error) {
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item with id=%d not found", itemID)
	}
	if it.OwnerID != userID {
		return nil, apperr.NotFound("user %d is not the owner of item %d", userID, itemID)
	}

	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}
	if patch.RequestID != nil {
		it.RequestID = patch.RequestID
	}

	if err := s.r.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Get returns the item with its comments. Last and next booking are visible to
// the owner only.
func (s *service) Get(ctx context.Context, userID, itemID int64) (*model.ItemDetail, error) {
	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item with id=%d not found", itemID)
	}
	return s.detail(ctx, *it, it.OwnerID == userID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemDetail, error) {
	ok, err := s.ur.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user with id=%d not found", ownerID)
	}

	items, err := s.r.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	out := make([]model.ItemDetail, 0, len(items))
	for _, it := range items {
		d, err := s.detail(ctx, it, true)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *service) detail(ctx context.Context, it model.Item, ownerView bool) (*model.ItemDetail, error) {
	comments, err := s.cr.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	d := &model.ItemDetail{Item: it, Comments: comments}
	if !ownerView {
		return d, nil
	}

	now := s.clk.Now()
	if d.LastBooking, err = s.br.LastForItem(ctx, it.ID, now); err != nil {
		return nil, err
	}
	if d.NextBooking, err = s.br.NextForItem(ctx, it.ID, now); err != nil {
		return nil, err
	}
	return d, nil
}

// Search returns available items matching text. Empty text short-circuits to
// an empty result without touching the store.
func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.r.Search(ctx, text, from, size)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// AddComment lets a user comment on an item they had a completed, non-rejected
// booking of.
func (s *service) AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error) {
	author, err := s.ur.ByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("user with id=%d not found", authorID)
	}

	it, err := s.r.ByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.NotFound("item with id=%d not found", itemID)
	}

	now := s.clk.Now()
	ok, err := s.br.HasCompletedByBooker(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Validation("user %d has no completed booking of item %d", authorID, itemID)
	}

	c := &model.Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.cr.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
