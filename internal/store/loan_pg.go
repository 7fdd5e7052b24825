package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bokloftet/internal/entity"
	"bokloftet/internal/loan"
	"bokloftet/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoanPG implements loan.Store on Postgres. Row locks taken with
// SELECT ... FOR UPDATE serialize concurrent borrow/return attempts on the
// same book; the partial unique index on open loans backs up the invariant
// at the schema level.
type LoanPG struct {
	db *pgxpool.Pool
}

func NewLoanPG(db *pgxpool.Pool) *LoanPG {
	return &LoanPG{db: db}
}

func (r *LoanPG) WithTx(ctx context.Context, fn func(tx loan.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&loanTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *LoanPG) ListActiveByUser(ctx context.Context, userID string) ([]entity.Loan, error) {
	query := `
	SELECT l.id, l.user_id, l.book_id, l.loan_date, l.due_date, l.returned_at, l.created_at,
	` + bookColumns + `
	FROM loans l
	JOIN books b ON b.id = l.book_id
	JOIN categories c ON c.id = b.category_id
	WHERE l.user_id = $1 AND l.returned_at IS NULL
	ORDER BY l.loan_date DESC, l.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []entity.Loan{}
	for rows.Next() {
		var l entity.Loan
		var b entity.Book
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate,
			&l.ReturnedAt, &l.CreatedAt,
			&b.ID, &b.Title, &b.Author, &b.Language, &b.Publisher, &b.PublishYear,
			&b.Pages, &b.ISBN, &b.Description, &b.CoverImageURL, &b.CategoryID,
			&b.CategoryName, &b.IsAvailable, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		l.Book = &b
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}

type loanTx struct {
	tx pgx.Tx
}

func (t *loanTx) GetBookForUpdate(ctx context.Context, bookID string) (entity.Book, error) {
	const query = `
	SELECT id, title, author, language, publisher, publish_year, pages, isbn,
		description, cover_image_url, category_id, is_available, created_at, updated_at
	FROM books
	WHERE id = $1
	FOR UPDATE
	`
	var b entity.Book
	err := t.tx.QueryRow(ctx, query, bookID).Scan(&b.ID, &b.Title, &b.Author,
		&b.Language, &b.Publisher, &b.PublishYear, &b.Pages, &b.ISBN,
		&b.Description, &b.CoverImageURL, &b.CategoryID, &b.IsAvailable,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, fmt.Errorf("book %s: %w", bookID, usecase.ErrNotFound)
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (t *loanTx) UserExists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	return exists, err
}

func (t *loanTx) SetBookAvailability(ctx context.Context, bookID string, available bool) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE books SET is_available = $2, updated_at = now() WHERE id = $1`,
		bookID, available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", bookID, usecase.ErrNotFound)
	}
	return nil
}

func (t *loanTx) CreateLoan(ctx context.Context, l *entity.Loan) error {
	const query = `
	INSERT INTO loans (id, user_id, book_id, loan_date, due_date)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, created_at
	`
	err := t.tx.QueryRow(ctx, query, l.UserID, l.BookID, l.LoanDate, l.DueDate).
		Scan(&l.ID, &l.CreatedAt)
	if isUniqueViolation(err) {
		// Another open loan slipped in on this book.
		return fmt.Errorf("book %s is already on loan: %w", l.BookID, usecase.ErrConflict)
	}
	return err
}

func (t *loanTx) OpenLoanByBookForUpdate(ctx context.Context, bookID string) (entity.Loan, error) {
	const query = `
	SELECT id, user_id, book_id, loan_date, due_date, returned_at, created_at
	FROM loans
	WHERE book_id = $1 AND returned_at IS NULL
	FOR UPDATE
	`
	var l entity.Loan
	err := t.tx.QueryRow(ctx, query, bookID).Scan(&l.ID, &l.UserID, &l.BookID,
		&l.LoanDate, &l.DueDate, &l.ReturnedAt, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Loan{}, usecase.ErrNotFound
		}
		return entity.Loan{}, err
	}
	return l, nil
}

func (t *loanTx) CloseLoan(ctx context.Context, loanID string, returnedAt time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE loans SET returned_at = $2 WHERE id = $1 AND returned_at IS NULL`,
		loanID, returnedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s is not open: %w", loanID, usecase.ErrConflict)
	}
	return nil
}
