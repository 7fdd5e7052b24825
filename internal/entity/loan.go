package entity

import "time"

// LoanPeriod is how long a borrowed book may be kept before it is due back.
const LoanPeriod = 30 * 24 * time.Hour

// Loan records one book borrowed by one customer. A loan is open while
// ReturnedAt is nil and closed once the book has been returned.
type Loan struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	BookID     string     `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	Book *Book `json:"book,omitempty"`
}

// Open reports whether the book is still out on this loan.
func (l Loan) Open() bool {
	return l.ReturnedAt == nil
}
