package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bokloftet/internal/entity"
	"bokloftet/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

const bookColumns = `
	b.id, b.title, b.author, b.language, b.publisher, b.publish_year,
	b.pages, b.isbn, b.description, b.cover_image_url, b.category_id,
	c.name, b.is_available, b.created_at, b.updated_at`

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.Language, &b.Publisher,
		&b.PublishYear, &b.Pages, &b.ISBN, &b.Description, &b.CoverImageURL,
		&b.CategoryID, &b.CategoryName, &b.IsAvailable, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BookPG) List(ctx context.Context) ([]entity.Book, error) {
	query := `
	SELECT` + bookColumns + `
	FROM books b
	JOIN categories c ON c.id = b.category_id
	ORDER BY b.created_at, b.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookPG) GetByID(ctx context.Context, id string) (entity.Book, error) {
	query := `
	SELECT` + bookColumns + `
	FROM books b
	JOIN categories c ON c.id = b.category_id
	WHERE b.id = $1
	LIMIT 1
	`
	var b entity.Book
	if err := scanBook(r.db.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

// escapeLike neutralizes LIKE metacharacters so the query is matched
// literally. Postgres LIKE is case-sensitive, which matches the search
// behavior of the catalog.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *BookPG) Search(ctx context.Context, q string) ([]entity.Book, error) {
	query := `
	SELECT` + bookColumns + `
	FROM books b
	JOIN categories c ON c.id = b.category_id
	WHERE b.title LIKE '%' || $1 || '%'
	   OR b.author LIKE '%' || $1 || '%'
	   OR c.name LIKE '%' || $1 || '%'
	ORDER BY b.created_at, b.id
	`
	rows, err := r.db.Query(ctx, query, escapeLike(q))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (id, title, author, language, publisher, publish_year,
		pages, isbn, description, cover_image_url, category_id, is_available)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
	RETURNING id, is_available, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, b.Title, b.Author, b.Language, b.Publisher,
		b.PublishYear, b.Pages, b.ISBN, b.Description, b.CoverImageURL, b.CategoryID).
		Scan(&b.ID, &b.IsAvailable, &b.CreatedAt, &b.UpdatedAt)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("category %s: %w", b.CategoryID, usecase.ErrNotFound)
	}
	return err
}

func (r *BookPG) Update(ctx context.Context, b *entity.Book) error {
	const query = `
	UPDATE books
	SET title = $2, author = $3, language = $4, publisher = $5,
		publish_year = $6, pages = $7, isbn = $8, description = $9,
		cover_image_url = $10, category_id = $11, updated_at = now()
	WHERE id = $1
	RETURNING is_available, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, b.ID, b.Title, b.Author, b.Language,
		b.Publisher, b.PublishYear, b.Pages, b.ISBN, b.Description,
		b.CoverImageURL, b.CategoryID).
		Scan(&b.IsAvailable, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrNotFound
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("category %s: %w", b.CategoryID, usecase.ErrNotFound)
	}
	return err
}

func (r *BookPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		// Loan history references the book.
		return fmt.Errorf("book %s has loans: %w", id, usecase.ErrConflict)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
