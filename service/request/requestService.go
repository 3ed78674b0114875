package requestsvc

import (
	"context"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/clock"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	ByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error)
}

type UserRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ItemRepo interface {
	ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, description string) (*model.ItemRequest, error)
	ListOwn(ctx context.Context, userID int64) ([]model.RequestDetail, error)
	ListOthers(ctx context.Context, userID int64, from, size int) ([]model.RequestDetail, error)
	Get(ctx context.Context, userID, requestID int64) (*model.RequestDetail, error)
}

type service struct {
	r   Repo
	ur  UserRepo
	ir  ItemRepo
	clk clock.Clock
}

func New(r Repo, ur UserRepo, ir ItemRepo, clk clock.Clock) Service {
	return &service{r: r, ur: ur, ir: ir, clk: clk}
}

func (s *service) Create(ctx context.Context, userID int64, description string) (*model.ItemRequest, error) {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user with id=%d not found", userID)
	}

	req := &model.ItemRequest{
		Description: description,
		RequestorID: userID,
		Created:     s.clk.Now(),
	}
	if err := s.r.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, userID int64) ([]model.RequestDetail, error) {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user with id=%d not found", userID)
	}

	reqs, err := s.r.ListByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *service) ListOthers(ctx context.Context, userID int64, from, size int) ([]model.RequestDetail, error) {
	reqs, err := s.r.ListOthers(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, reqs)
}

func (s *service) Get(ctx context.Context, userID, requestID int64) (*model.RequestDetail, error) {
	ok, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("user with id=%d not found", userID)
	}

	req, err := s.r.ByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperr.NotFound("request with id=%d not found", requestID)
	}

	items, err := s.ir.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return &model.RequestDetail{ItemRequest: *req, Items: items}, nil
}

func (s *service) withItems(ctx context.Context, reqs []model.ItemRequest) ([]model.RequestDetail, error) {
	out := make([]model.RequestDetail, 0, len(reqs))
	for _, req := range reqs {
		items, err := s.ir.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []model.Item{}
		}
		out = append(out, model.RequestDetail{ItemRequest: req, Items: items})
	}
	return out, nil
}
