package usersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"shareit/model"
	"shareit/util/apperr"
)

type mockRepo struct {
	createFn func(ctx context.Context, u *model.User) error
	byIDFn   func(ctx context.Context, id int64) (*model.User, error)
	existsFn func(ctx context.Context, id int64) (bool, error)
	listFn   func(ctx context.Context) ([]model.User, error)
	updateFn func(ctx context.Context, u *model.User) error
	deleteFn func(ctx context.Context, id int64) error
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		u.ID = 1
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn == nil {
		return false, nil
	}
	return m.existsFn(ctx, id)
}

func (m *mockRepo) List(ctx context.Context) ([]model.User, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *mockRepo) Update(ctx context.Context, u *model.User) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, u)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func TestCreate_Success(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	svc := New(m)

	u, err := svc.Create(context.Background(), "maria", "maria@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "maria@example.com", u.Email)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		},
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), "maria", "taken@example.com")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreate_OtherDBError(t *testing.T) {
	dbErr := errors.New("db down")
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error { return dbErr },
	}
	svc := New(m)

	_, err := svc.Create(context.Background(), "maria", "maria@example.com")
	require.ErrorIs(t, err, dbErr)
}

func TestGet_Missing(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	require.True(t, apperr.IsNotFound(err))
}

func TestUpdate_PartialFields(t *testing.T) {
	var saved *model.User
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "maria", Email: "maria@example.com"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error {
			saved = u
			return nil
		},
	}
	svc := New(m)

	email := "new@example.com"
	u, err := svc.Update(context.Background(), 7, nil, &email)
	require.NoError(t, err)
	require.Equal(t, "maria", u.Name)
	require.Equal(t, "new@example.com", u.Email)
	require.NotNil(t, saved)
	require.Equal(t, "new@example.com", saved.Email)
}

func TestUpdate_Missing(t *testing.T) {
	svc := New(&mockRepo{})

	name := "x"
	_, err := svc.Update(context.Background(), 404, &name, nil)
	require.Error(t, err)
	require.True(t, apperr.IsNotFound(err))
}

func TestUpdate_DuplicateEmail(t *testing.T) {
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "maria", Email: "maria@example.com"}, nil
		},
		updateFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "users_email_key"`}
		},
	}
	svc := New(m)

	email := "taken@example.com"
	_, err := svc.Update(context.Background(), 7, nil, &email)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestDelete_Missing(t *testing.T) {
	svc := New(&mockRepo{})

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)
	require.True(t, apperr.IsNotFound(err))
}

func TestDelete_Success(t *testing.T) {
	deleted := int64(0)
	m := &mockRepo{
		existsFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		deleteFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	svc := New(m)

	require.NoError(t, svc.Delete(context.Background(), 7))
	require.Equal(t, int64(7), deleted)
}
