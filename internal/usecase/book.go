package usecase

import (
	"context"

	"bokloftet/internal/entity"
)

// BookRepository defines the contract for catalog access.
type BookRepository interface {
	List(ctx context.Context) ([]entity.Book, error)
	GetByID(ctx context.Context, id string) (entity.Book, error)
	// Search matches query as a case-sensitive substring of the book
	// title, author or category name.
	Search(ctx context.Context, query string) ([]entity.Book, error)
	Create(ctx context.Context, b *entity.Book) error
	Update(ctx context.Context, b *entity.Book) error
	Delete(ctx context.Context, id string) error
}
