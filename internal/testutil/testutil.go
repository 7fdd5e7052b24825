package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"bokloftet/internal/auth"
	"bokloftet/internal/entity"
)

// TestUser is a seeded customer for tests.
var TestUser = entity.User{
	ID:          "11111111-1111-4111-8111-111111111111",
	FirstName:   "Janne",
	LastName:    "Karlsson",
	Email:       "janneloffe@karlsson.se",
	Address:     "Blomvägen 1, Göteborg",
	PhoneNumber: "555 123 456",
	Role:        entity.RoleCustomer,
	Password:    "hashedpassword",
	CreatedAt:   time.Now(),
	UpdatedAt:   time.Now(),
}

// TestAdminUser is a seeded admin for tests.
var TestAdminUser = entity.User{
	ID:          "22222222-2222-4222-8222-222222222222",
	FirstName:   "Greta",
	LastName:    "Svensson",
	Email:       "greta@bokloftet.se",
	Address:     "Ringvägen 1, Göteborg",
	PhoneNumber: "555 123 457",
	Role:        entity.RoleAdmin,
	Password:    "hashedpassword",
	CreatedAt:   time.Now(),
	UpdatedAt:   time.Now(),
}

// TestBook is a seeded available book for tests.
var TestBook = entity.Book{
	ID:           "33333333-3333-4333-8333-333333333333",
	Title:        "Pippi Långstrump",
	Author:       "Astrid Lindgren",
	Language:     "Svenska",
	Publisher:    "Bonnier",
	PublishYear:  1948,
	Pages:        60,
	ISBN:         "9789129697285",
	Description:  "En festlig bok om en stark liten flicka.",
	CategoryID:   "44444444-4444-4444-8444-444444444444",
	CategoryName: "Barnböcker",
	IsAvailable:  true,
	CreatedAt:    time.Now(),
	UpdatedAt:    time.Now(),
}

// GenerateTestToken generates a JWT token for testing.
func GenerateTestToken(secret, userID, role string) string {
	token, _ := auth.GenerateToken(secret, userID, role, time.Hour)
	return token
}

// NewRequest creates a new HTTP request for testing.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth creates a new HTTP request with JWT auth for testing.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// RecordedResponse is a decoded HTTP response for assertions.
type RecordedResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes the recorded response body as JSON.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordedResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordedResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
