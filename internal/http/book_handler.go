package http

import (
	"encoding/json"
	"net/http"

	"bokloftet/internal/entity"
	"bokloftet/internal/usecase"
)

type BookHandler struct {
	books usecase.BookRepository
}

func NewBookHandler(books usecase.BookRepository) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	JSONSuccess(w, map[string]any{"books": books}, nil)
}

// Search matches the query as a case-sensitive substring of title, author
// or category name. The empty result set is a normal response flagged with
// no_results, not an error.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("searchString")

	books, err := h.books.Search(r.Context(), query)
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	if books == nil {
		books = []entity.Book{}
	}
	JSONSuccess(w, map[string]any{
		"books":      books,
		"no_results": len(books) == 0,
	}, nil)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	book, err := h.books.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, book, nil)
}

type bookReq struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Language      string `json:"language" validate:"required"`
	Publisher     string `json:"publisher" validate:"required"`
	PublishYear   int    `json:"publish_year" validate:"required"`
	Pages         int    `json:"pages" validate:"required,gt=0"`
	ISBN          string `json:"isbn" validate:"required,isbn"`
	Description   string `json:"description" validate:"required"`
	CoverImageURL string `json:"cover_image_url"`
	CategoryID    string `json:"category_id" validate:"required,uuid"`
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	book := entity.Book{
		Title:         req.Title,
		Author:        req.Author,
		Language:      req.Language,
		Publisher:     req.Publisher,
		PublishYear:   req.PublishYear,
		Pages:         req.Pages,
		ISBN:          req.ISBN,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		CategoryID:    req.CategoryID,
	}
	if err := h.books.Create(r.Context(), &book); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessCreated(w, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req bookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	book := entity.Book{
		ID:            r.PathValue("id"),
		Title:         req.Title,
		Author:        req.Author,
		Language:      req.Language,
		Publisher:     req.Publisher,
		PublishYear:   req.PublishYear,
		Pages:         req.Pages,
		ISBN:          req.ISBN,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		CategoryID:    req.CategoryID,
	}
	if err := h.books.Update(r.Context(), &book); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccess(w, book, nil)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.books.Delete(r.Context(), r.PathValue("id")); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessNoContent(w)
}
