package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bokloftet/internal/entity"
	"bokloftet/internal/httpx"
	"bokloftet/internal/testutil"
	"bokloftet/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoanService records the arguments the handler passed through.
type stubLoanService struct {
	borrowErr    error
	returnErr    error
	listErr      error
	loans        []entity.Loan
	gotBookID    string
	gotUserID    string
	gotRole      string
	borrowCalled bool
}

func (s *stubLoanService) Borrow(ctx context.Context, bookID, userID string) (entity.Loan, error) {
	s.borrowCalled = true
	s.gotBookID, s.gotUserID = bookID, userID
	if s.borrowErr != nil {
		return entity.Loan{}, s.borrowErr
	}
	return entity.Loan{
		ID:       "loan-1",
		UserID:   userID,
		BookID:   bookID,
		LoanDate: time.Now(),
		DueDate:  time.Now().Add(entity.LoanPeriod),
	}, nil
}

func (s *stubLoanService) Return(ctx context.Context, bookID, userID, role string) (entity.Loan, error) {
	s.gotBookID, s.gotUserID, s.gotRole = bookID, userID, role
	if s.returnErr != nil {
		return entity.Loan{}, s.returnErr
	}
	now := time.Now()
	return entity.Loan{ID: "loan-1", UserID: userID, BookID: bookID, ReturnedAt: &now}, nil
}

func (s *stubLoanService) ListActiveLoans(ctx context.Context, userID string) ([]entity.Loan, error) {
	s.gotUserID = userID
	return s.loans, s.listErr
}

func authedRequest(method, path string, body any, userID, role string) *http.Request {
	r := testutil.NewRequest(method, path, body)
	return r.WithContext(httpx.ContextWithUser(r.Context(), userID, role))
}

func TestLoanHandler_Borrow(t *testing.T) {
	customerID := testutil.TestUser.ID
	adminID := testutil.TestAdminUser.ID

	tests := []struct {
		name           string
		body           map[string]string
		userID         string
		role           string
		svc            *stubLoanService
		expectedStatus int
		expectedUser   string
	}{
		{
			name:           "success - customer borrows for themselves",
			body:           map[string]string{"book_id": testutil.TestBook.ID},
			userID:         customerID,
			role:           entity.RoleCustomer,
			svc:            &stubLoanService{},
			expectedStatus: http.StatusCreated,
			expectedUser:   customerID,
		},
		{
			name:           "conflict - book already on loan",
			body:           map[string]string{"book_id": testutil.TestBook.ID},
			userID:         customerID,
			role:           entity.RoleCustomer,
			svc:            &stubLoanService{borrowErr: usecase.ErrConflict},
			expectedStatus: http.StatusConflict,
			expectedUser:   customerID,
		},
		{
			name:           "not found - unknown book",
			body:           map[string]string{"book_id": "99999999-9999-4999-8999-999999999999"},
			userID:         customerID,
			role:           entity.RoleCustomer,
			svc:            &stubLoanService{borrowErr: usecase.ErrNotFound},
			expectedStatus: http.StatusNotFound,
			expectedUser:   customerID,
		},
		{
			name: "forbidden - customer borrows on behalf of another",
			body: map[string]string{
				"book_id": testutil.TestBook.ID,
				"user_id": adminID,
			},
			userID:         customerID,
			role:           entity.RoleCustomer,
			svc:            &stubLoanService{},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "success - admin borrows on behalf of a customer",
			body: map[string]string{
				"book_id": testutil.TestBook.ID,
				"user_id": customerID,
			},
			userID:         adminID,
			role:           entity.RoleAdmin,
			svc:            &stubLoanService{},
			expectedStatus: http.StatusCreated,
			expectedUser:   customerID,
		},
		{
			name:           "bad request - missing book id",
			body:           map[string]string{},
			userID:         customerID,
			role:           entity.RoleCustomer,
			svc:            &stubLoanService{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLoanHandler(tt.svc)

			w := httptest.NewRecorder()
			handler.Borrow(w, authedRequest(http.MethodPost, "/loans", tt.body, tt.userID, tt.role))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedUser != "" {
				assert.Equal(t, tt.expectedUser, tt.svc.gotUserID)
			} else {
				assert.False(t, tt.svc.borrowCalled, "handler must reject before reaching the service")
			}
		})
	}
}

func TestLoanHandler_Return(t *testing.T) {
	tests := []struct {
		name           string
		svc            *stubLoanService
		expectedStatus int
	}{
		{
			name:           "success",
			svc:            &stubLoanService{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "conflict - no open loan",
			svc:            &stubLoanService{returnErr: usecase.ErrConflict},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "forbidden - not the holder",
			svc:            &stubLoanService{returnErr: usecase.ErrForbidden},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLoanHandler(tt.svc)
			body := map[string]string{"book_id": testutil.TestBook.ID}

			w := httptest.NewRecorder()
			handler.Return(w, authedRequest(http.MethodPost, "/loans/return", body, testutil.TestUser.ID, entity.RoleCustomer))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, testutil.TestUser.ID, tt.svc.gotUserID)
			assert.Equal(t, entity.RoleCustomer, tt.svc.gotRole)

			if tt.expectedStatus == http.StatusOK {
				resp := testutil.RecordHTTPResponse(w)
				data := resp.Body["data"].(map[string]interface{})
				assert.NotNil(t, data["returned_at"])
			}
		})
	}
}

func TestLoanHandler_ListActive(t *testing.T) {
	svc := &stubLoanService{loans: []entity.Loan{
		{ID: "loan-2", UserID: testutil.TestUser.ID, BookID: testutil.TestBook.ID},
	}}
	handler := NewLoanHandler(svc)

	w := httptest.NewRecorder()
	handler.ListActive(w, authedRequest(http.MethodGet, "/loans", nil, testutil.TestUser.ID, entity.RoleCustomer))

	resp := testutil.RecordHTTPResponse(w)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, testutil.TestUser.ID, svc.gotUserID)
	loans := resp.Body["data"].(map[string]interface{})["loans"].([]interface{})
	assert.Len(t, loans, 1)
}
