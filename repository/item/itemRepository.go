package itemrepo

import (
	"context"
	"database/sql"
	"errors"

	"shareit/model"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const itemCols = `id, name, description, available, owner_id, request_id`

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `SELECT ` + itemCols + ` FROM items WHERE id = $1`
	it := &model.Item{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `
		UPDATE items
		SET name = $2, description = $3, available = $4, request_id = $5
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, it.ID, it.Name, it.Description, it.Available, it.RequestID)
	return err
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.Item, error) {
	const q = `
		SELECT ` + itemCols + `
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3`
	return r.queryItems(ctx, q, ownerID, from, size)
}

// Search matches available items whose name or description contains text,
// case-insensitively.
func (r *repo) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	const q = `
		SELECT ` + itemCols + `
		FROM items
		WHERE available = TRUE
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id
		OFFSET $2 LIMIT $3`
	return r.queryItems(ctx, q, text, from, size)
}

func (r *repo) ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = `
		SELECT ` + itemCols + `
		FROM items
		WHERE request_id = $1
		ORDER BY id`
	return r.queryItems(ctx, q, requestID)
}

func (r *repo) queryItems(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
