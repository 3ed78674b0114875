package itemsvc_test

import (
	"context"
	"testing"
	"time"

	"shareit/model"
	itemsvc "shareit/service/item"
	"shareit/util/apperr"
	"shareit/util/clock"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type repoMock struct {
	createFn      func(ctx context.Context, it *model.Item) error
	byIDFn        func(ctx context.Context, id int64) (*model.Item, error)
	updateFn      func(ctx context.Context, it *model.Item) error
	listByOwnerFn func(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error)
	searchFn      func(ctx context.Context, text string, from, size int) ([]model.Item, error)
}

func (m *repoMock) Create(ctx context.Context, it *model.Item) error {
	if m.createFn == nil {
		it.ID = 1
		return nil
	}
	return m.createFn(ctx, it)
}

func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Item, error) {
	if m.byIDFn == nil {
		return &model.Item{ID: id, Name: "drill", Available: true, OwnerID: 10}, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *repoMock) Update(ctx context.Context, it *model.Item) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, it)
}

func (m *repoMock) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error) {
	return m.listByOwnerFn(ctx, ownerID, from, size)
}

func (m *repoMock) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	return m.searchFn(ctx, text, from, size)
}

type userRepoMock struct {
	byIDFn   func(ctx context.Context, id int64) (*model.User, error)
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *userRepoMock) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return &model.User{ID: id, Name: "maria"}, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *userRepoMock) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn == nil {
		return true, nil
	}
	return m.existsFn(ctx, id)
}

type bookingRepoMock struct {
	lastFn         func(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error)
	nextFn         func(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error)
	hasCompletedFn func(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

func (m *bookingRepoMock) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error) {
	if m.lastFn == nil {
		return nil, nil
	}
	return m.lastFn(ctx, itemID, now)
}

func (m *bookingRepoMock) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error) {
	if m.nextFn == nil {
		return nil, nil
	}
	return m.nextFn(ctx, itemID, now)
}

func (m *bookingRepoMock) HasCompletedByBooker(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	if m.hasCompletedFn == nil {
		return false, nil
	}
	return m.hasCompletedFn(ctx, bookerID, itemID, now)
}

type commentRepoMock struct {
	createFn func(ctx context.Context, c *model.Comment) error
	listFn   func(ctx context.Context, itemID int64) ([]model.Comment, error)
}

func (m *commentRepoMock) Create(ctx context.Context, c *model.Comment) error {
	if m.createFn == nil {
		c.ID = 1
		return nil
	}
	return m.createFn(ctx, c)
}

func (m *commentRepoMock) ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, itemID)
}

func newService(r *repoMock, ur *userRepoMock, br *bookingRepoMock, cr *commentRepoMock) itemsvc.Service {
	return itemsvc.New(r, ur, br, cr, clock.Fixed(now))
}

func TestGet_OwnerSeesLastAndNextBooking(t *testing.T) {
	br := &bookingRepoMock{
		lastFn: func(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error) {
			return &model.BookingRef{ID: 21, BookerID: 2}, nil
		},
		nextFn: func(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error) {
			return &model.BookingRef{ID: 34, BookerID: 3}, nil
		},
	}
	svc := newService(&repoMock{}, &userRepoMock{}, br, &commentRepoMock{})

	d, err := svc.Get(context.Background(), 10, 5) // owner view
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.LastBooking == nil || d.LastBooking.ID != 21 {
		t.Fatalf("last booking = %+v; want id 21", d.LastBooking)
	}
	if d.NextBooking == nil || d.NextBooking.ID != 34 {
		t.Fatalf("next booking = %+v; want id 34", d.NextBooking)
	}
}

func TestGet_NonOwnerSeesNoBookings(t *testing.T) {
	called := false
	br := &bookingRepoMock{
		lastFn: func(ctx context.Context, itemID int64, now time.Time) (*model.BookingRef, error) {
			called = true
			return &model.BookingRef{ID: 21, BookerID: 2}, nil
		},
	}
	svc := newService(&repoMock{}, &userRepoMock{}, br, &commentRepoMock{})

	d, err := svc.Get(context.Background(), 99, 5) // not the owner
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.LastBooking != nil || d.NextBooking != nil {
		t.Fatalf("non-owner got booking fields: %+v", d)
	}
	if called {
		t.Fatal("booking lookup ran for a non-owner view")
	}
}

func TestGet_MissingItem(t *testing.T) {
	r := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Item, error) { return nil, nil },
	}
	svc := newService(r, &userRepoMock{}, &bookingRepoMock{}, &commentRepoMock{})

	if _, err := svc.Get(context.Background(), 1, 404); !apperr.IsNotFound(err) {
		t.Fatalf("got %v; want NotFound", err)
	}
}

func TestSearch_EmptyTextSkipsStore(t *testing.T) {
	r := &repoMock{
		searchFn: func(ctx context.Context, text string, from, size int) ([]model.Item, error) {
			t.Fatal("store queried for empty search text")
			return nil, nil
		},
	}
	svc := newService(r, &userRepoMock{}, &bookingRepoMock{}, &commentRepoMock{})

	for _, text := range []string{"", "   "} {
		items, err := svc.Search(context.Background(), text, 0, 10)
		if err != nil {
			t.Fatalf("Search(%q): %v", text, err)
		}
		if len(items) != 0 {
			t.Fatalf("Search(%q) = %v; want empty", text, items)
		}
	}
}

func TestSearch_PassesThrough(t *testing.T) {
	r := &repoMock{
		searchFn: func(ctx context.Context, text string, from, size int) ([]model.Item, error) {
			if text != "drill" || from != 0 || size != 10 {
				t.Fatalf("unexpected args: %q %d %d", text, from, size)
			}
			return []model.Item{{ID: 5, Name: "drill"}}, nil
		},
	}
	svc := newService(r, &userRepoMock{}, &bookingRepoMock{}, &commentRepoMock{})

	items, err := svc.Search(context.Background(), "drill", 0, 10)
	if err != nil || len(items) != 1 {
		t.Fatalf("got %v %v; want one item", items, err)
	}
}

func TestUpdate_NonOwner(t *testing.T) {
	svc := newService(&repoMock{}, &userRepoMock{}, &bookingRepoMock{}, &commentRepoMock{})

	name := "hammer"
	_, err := svc.Update(context.Background(), 99, 5, model.ItemPatch{Name: &name})
	if !apperr.IsNotFound(err) {
		t.Fatalf("got %v; want NotFound", err)
	}
}

func TestUpdate_AppliesPatch(t *testing.T) {
	var saved *model.Item
	r := &repoMock{
		updateFn: func(ctx context.Context, it *model.Item) error {
			saved = it
			return nil
		},
	}
	svc := newService(r, &userRepoMock{}, &bookingRepoMock{}, &commentRepoMock{})

	avail := false
	out, err := svc.Update(context.Background(), 10, 5, model.ItemPatch{Available: &avail})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Available || out.Name != "drill" {
		t.Fatalf("patch applied wrong: %+v", out)
	}
	if saved == nil || saved.Available {
		t.Fatalf("store got %+v; want available=false", saved)
	}
}

func TestAddComment_RequiresCompletedBooking(t *testing.T) {
	svc := newService(&repoMock{}, &userRepoMock{}, &bookingRepoMock{}, &commentRepoMock{})

	_, err := svc.AddComment(context.Background(), 2, 5, "fine drill")
	if !apperr.IsValidation(err) {
		t.Fatalf("got %v; want Validation", err)
	}
}

func TestAddComment_Success(t *testing.T) {
	br := &bookingRepoMock{
		hasCompletedFn: func(ctx context.Context, bookerID, itemID int64, gotNow time.Time) (bool, error) {
			if !gotNow.Equal(now) {
				t.Fatalf("eligibility checked against %v; want %v", gotNow, now)
			}
			return true, nil
		},
	}
	svc := newService(&repoMock{}, &userRepoMock{}, br, &commentRepoMock{})

	c, err := svc.AddComment(context.Background(), 2, 5, "fine drill")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if c.AuthorName != "maria" || !c.Created.Equal(now) || c.Text != "fine drill" {
		t.Fatalf("comment = %+v", c)
	}
}

func TestListByOwner_UnknownUser(t *testing.T) {
	ur := &userRepoMock{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := newService(&repoMock{}, ur, &bookingRepoMock{}, &commentRepoMock{})

	if _, err := svc.ListByOwner(context.Background(), 99, 0, 10); !apperr.IsNotFound(err) {
		t.Fatalf("got %v; want NotFound", err)
	}
}
