package http

import (
	"context"
	"encoding/json"
	"net/http"

	"bokloftet/internal/entity"
	"bokloftet/internal/httpx"
)

// LoanService is the slice of the loan service the handlers need.
type LoanService interface {
	Borrow(ctx context.Context, bookID, userID string) (entity.Loan, error)
	Return(ctx context.Context, bookID, userID, role string) (entity.Loan, error)
	ListActiveLoans(ctx context.Context, userID string) ([]entity.Loan, error)
}

type LoanHandler struct {
	loans LoanService
}

func NewLoanHandler(loans LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type borrowReq struct {
	BookID string `json:"book_id" validate:"required,uuid"`
	// UserID lets an admin register a loan on behalf of a customer at the
	// desk. Customers may only borrow for themselves.
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	borrowerID := httpx.UserIDFrom(r)
	if req.UserID != "" && req.UserID != borrowerID {
		if !entity.RoleCanManageCatalog(httpx.RoleFrom(r)) {
			JSONError(w, http.StatusForbidden, "FORBIDDEN", "Cannot borrow on behalf of another customer", nil)
			return
		}
		borrowerID = req.UserID
	}

	created, err := h.loans.Borrow(r.Context(), req.BookID, borrowerID)
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessCreated(w, created)
}

type returnReq struct {
	BookID string `json:"book_id" validate:"required,uuid"`
}

func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req returnReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	closed, err := h.loans.Return(r.Context(), req.BookID, httpx.UserIDFrom(r), httpx.RoleFrom(r))
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, closed, nil)
}

func (h *LoanHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.ListActiveLoans(r.Context(), httpx.UserIDFrom(r))
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	if loans == nil {
		loans = []entity.Loan{}
	}
	JSONSuccess(w, map[string]any{"loans": loans}, nil)
}
