package http

import (
	"encoding/json"
	"net/http"

	"bokloftet/internal/entity"
	"bokloftet/internal/usecase"
)

type CategoryHandler struct {
	categories usecase.CategoryRepository
}

func NewCategoryHandler(categories usecase.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		JSONDomainError(w, err)
		return
	}
	if categories == nil {
		categories = []entity.Category{}
	}
	JSONSuccess(w, map[string]any{"categories": categories}, nil)
}

type categoryReq struct {
	Name string `json:"name" validate:"required"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	category := entity.Category{Name: req.Name}
	if err := h.categories.Create(r.Context(), &category); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessCreated(w, category)
}

// Delete refuses to remove a category that is still referenced by books.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), r.PathValue("id")); err != nil {
		JSONDomainError(w, err)
		return
	}
	JSONSuccessNoContent(w)
}
