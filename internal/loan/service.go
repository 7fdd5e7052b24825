// Package loan enforces the borrow/return state machine and keeps book
// availability consistent with outstanding loans.
package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bokloftet/internal/entity"
	"bokloftet/internal/usecase"
)

// Tx is the set of store operations available inside one atomic unit.
// Implementations must hold row locks on the book (and open loan) for the
// duration of the transaction so two concurrent borrows cannot both observe
// an available book.
type Tx interface {
	// GetBookForUpdate loads the book and locks its row. Fails with
	// usecase.ErrNotFound if the book does not exist.
	GetBookForUpdate(ctx context.Context, bookID string) (entity.Book, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	SetBookAvailability(ctx context.Context, bookID string, available bool) error
	CreateLoan(ctx context.Context, l *entity.Loan) error
	// OpenLoanByBookForUpdate finds the open loan referencing the book and
	// locks it. Fails with usecase.ErrNotFound if no loan is open.
	OpenLoanByBookForUpdate(ctx context.Context, bookID string) (entity.Loan, error)
	CloseLoan(ctx context.Context, loanID string, returnedAt time.Time) error
}

// Store abstracts the loan persistence layer.
type Store interface {
	// WithTx runs fn inside a transaction, committing when fn returns nil
	// and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	ListActiveByUser(ctx context.Context, userID string) ([]entity.Loan, error)
}

// Service transitions books between available and on-loan.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Borrow lends the book to the user: it marks the book unavailable and
// creates an open loan due back after entity.LoanPeriod, atomically.
// Fails with usecase.ErrNotFound if the book or user does not exist and
// with usecase.ErrConflict if the book is already on loan.
func (s *Service) Borrow(ctx context.Context, bookID, userID string) (entity.Loan, error) {
	var created entity.Loan
	err := s.store.WithTx(ctx, func(tx Tx) error {
		book, err := tx.GetBookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if !book.IsAvailable {
			return fmt.Errorf("book %s is already on loan: %w", bookID, usecase.ErrConflict)
		}

		ok, err := tx.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("user %s: %w", userID, usecase.ErrNotFound)
		}

		if err := tx.SetBookAvailability(ctx, bookID, false); err != nil {
			return err
		}

		now := s.now()
		created = entity.Loan{
			UserID:   userID,
			BookID:   bookID,
			LoanDate: now,
			DueDate:  now.Add(entity.LoanPeriod),
		}
		return tx.CreateLoan(ctx, &created)
	})
	if err != nil {
		return entity.Loan{}, err
	}
	return created, nil
}

// Return closes the open loan on the book and marks the book available
// again, atomically. Fails with usecase.ErrNotFound if the book does not
// exist, usecase.ErrConflict if no loan is open on it, and
// usecase.ErrForbidden if the caller neither holds the loan nor is an admin.
func (s *Service) Return(ctx context.Context, bookID, userID, role string) (entity.Loan, error) {
	var closed entity.Loan
	err := s.store.WithTx(ctx, func(tx Tx) error {
		if _, err := tx.GetBookForUpdate(ctx, bookID); err != nil {
			return err
		}

		open, err := tx.OpenLoanByBookForUpdate(ctx, bookID)
		if err != nil {
			if errors.Is(err, usecase.ErrNotFound) {
				return fmt.Errorf("no open loan on book %s: %w", bookID, usecase.ErrConflict)
			}
			return err
		}
		if open.UserID != userID && !entity.RoleCanManageCatalog(role) {
			return fmt.Errorf("loan is held by another customer: %w", usecase.ErrForbidden)
		}

		returnedAt := s.now()
		if err := tx.CloseLoan(ctx, open.ID, returnedAt); err != nil {
			return err
		}
		if err := tx.SetBookAvailability(ctx, bookID, true); err != nil {
			return err
		}
		open.ReturnedAt = &returnedAt
		closed = open
		return nil
	})
	if err != nil {
		return entity.Loan{}, err
	}
	return closed, nil
}

// ListActiveLoans returns the user's open loans, most recent first.
func (s *Service) ListActiveLoans(ctx context.Context, userID string) ([]entity.Loan, error) {
	return s.store.ListActiveByUser(ctx, userID)
}
