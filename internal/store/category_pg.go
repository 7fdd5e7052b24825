package store

import (
	"context"
	"errors"
	"fmt"

	"bokloftet/internal/entity"
	"bokloftet/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryPG struct {
	db *pgxpool.Pool
}

func NewCategoryPG(db *pgxpool.Pool) *CategoryPG {
	return &CategoryPG{db: db}
}

func (r *CategoryPG) List(ctx context.Context) ([]entity.Category, error) {
	const query = `
	SELECT id, name, created_at, updated_at
	FROM categories
	ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryPG) GetByID(ctx context.Context, id string) (entity.Category, error) {
	const query = `
	SELECT id, name, created_at, updated_at
	FROM categories
	WHERE id = $1
	LIMIT 1
	`
	var c entity.Category
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Category{}, usecase.ErrNotFound
		}
		return entity.Category{}, err
	}
	return c, nil
}

func (r *CategoryPG) Create(ctx context.Context, c *entity.Category) error {
	const query = `
	INSERT INTO categories (id, name)
	VALUES (gen_random_uuid(), $1)
	RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, c.Name).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CategoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("category %s is referenced by books: %w", id, usecase.ErrConflict)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
