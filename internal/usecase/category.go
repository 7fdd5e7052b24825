package usecase

import (
	"context"

	"bokloftet/internal/entity"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id string) (entity.Category, error)
	Create(ctx context.Context, c *entity.Category) error
	// Delete fails with ErrConflict while any book references the category.
	Delete(ctx context.Context, id string) error
}
