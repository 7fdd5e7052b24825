package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"bokloftet/internal/entity"
	"bokloftet/internal/store/mocks"
	"bokloftet/internal/testutil"
	"bokloftet/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookHandler_Search(t *testing.T) {
	lindgren := testutil.TestBook

	tests := []struct {
		name            string
		query           string
		setupMock       func(mockRepo *mocks.MockBookRepository)
		expectedCount   int
		expectNoResults bool
	}{
		{
			name:  "one author match",
			query: "Astrid Lindgren",
			setupMock: func(mockRepo *mocks.MockBookRepository) {
				mockRepo.EXPECT().
					Search(gomock.Any(), "Astrid Lindgren").
					Return([]entity.Book{lindgren}, nil)
			},
			expectedCount: 1,
		},
		{
			name:  "no match",
			query: "Nonexistent Book",
			setupMock: func(mockRepo *mocks.MockBookRepository) {
				mockRepo.EXPECT().
					Search(gomock.Any(), "Nonexistent Book").
					Return([]entity.Book{}, nil)
			},
			expectedCount:   0,
			expectNoResults: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockRepo := mocks.NewMockBookRepository(ctrl)
			handler := NewBookHandler(mockRepo)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/books/search?searchString="+url.QueryEscape(tt.query), nil)
			handler.Search(w, r)

			resp := testutil.RecordHTTPResponse(w)
			require.Equal(t, http.StatusOK, resp.Code)
			data := resp.Body["data"].(map[string]interface{})
			books := data["books"].([]interface{})
			assert.Len(t, books, tt.expectedCount)
			assert.Equal(t, tt.expectNoResults, data["no_results"])

			if tt.expectedCount == 1 {
				first := books[0].(map[string]interface{})
				assert.Equal(t, lindgren.Title, first["title"])
				assert.Equal(t, "Astrid Lindgren", first["author"])
			}
		})
	}
}

func TestBookHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockBookRepository(ctrl)
	handler := NewBookHandler(mockRepo)

	mockRepo.EXPECT().
		GetByID(gomock.Any(), "missing-id").
		Return(entity.Book{}, usecase.ErrNotFound)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/books/missing-id", nil)
	r.SetPathValue("id", "missing-id")
	handler.Get(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func validBookBody() map[string]any {
	return map[string]any{
		"title":        "Pippi Långstrump",
		"author":       "Astrid Lindgren",
		"language":     "Svenska",
		"publisher":    "Bonnier",
		"publish_year": 1948,
		"pages":        60,
		"isbn":         "9789129697285",
		"description":  "En festlig bok om en stark liten flicka.",
		"category_id":  "44444444-4444-4444-8444-444444444444",
	}
}

func TestBookHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           func() map[string]any
		setupMock      func(mockRepo *mocks.MockBookRepository)
		expectedStatus int
	}{
		{
			name: "success",
			body: validBookBody,
			setupMock: func(mockRepo *mocks.MockBookRepository) {
				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "bad request - missing title",
			body: func() map[string]any {
				b := validBookBody()
				delete(b, "title")
				return b
			},
			setupMock:      func(mockRepo *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - malformed isbn",
			body: func() map[string]any {
				b := validBookBody()
				b["isbn"] = "not-an-isbn"
				return b
			},
			setupMock:      func(mockRepo *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not found - unknown category",
			body: validBookBody,
			setupMock: func(mockRepo *mocks.MockBookRepository) {
				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockRepo := mocks.NewMockBookRepository(ctrl)
			handler := NewBookHandler(mockRepo)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			handler.Create(w, testutil.NewRequest(http.MethodPost, "/books", tt.body()))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestBookHandler_DeleteWithLoans(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockBookRepository(ctrl)
	handler := NewBookHandler(mockRepo)

	mockRepo.EXPECT().
		Delete(gomock.Any(), testutil.TestBook.ID).
		Return(usecase.ErrConflict)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/books/"+testutil.TestBook.ID, nil)
	r.SetPathValue("id", testutil.TestBook.ID)
	handler.Delete(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}
