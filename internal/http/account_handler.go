package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"bokloftet/internal/auth"
	"bokloftet/internal/entity"
	"bokloftet/internal/httpx"
	"bokloftet/internal/usecase"
)

const tokenTTL = 24 * time.Hour

type AccountHandler struct {
	users  usecase.UserRepository
	secret string
}

func NewAccountHandler(users usecase.UserRepository, secret string) *AccountHandler {
	return &AccountHandler{users: users, secret: secret}
}

type registerReq struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Register creates a customer account. When the e-mail is already taken and
// the password also fails the format policy, the e-mail error wins: it is
// the one reported back.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	_, err := h.users.GetByEmail(r.Context(), req.Email)
	if err == nil {
		JSONError(w, http.StatusConflict, "ALREADY_EXISTS", "Invalid input", []ErrorDetail{
			{Field: "email", Message: "E-mail already exists."},
		})
		return
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	if err := auth.CheckPasswordFormat(req.Password); err != nil {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []ErrorDetail{
			{Field: "password", Message: "Password must include at least one capital letter, one number, and one symbol."},
		})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	newUser := &entity.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.Phone,
		Password:    hashedPassword,
		Role:        entity.RoleCustomer,
	}
	if err := h.users.Create(r.Context(), newUser); err != nil {
		if errors.Is(err, usecase.ErrAlreadyExists) {
			JSONError(w, http.StatusConflict, "ALREADY_EXISTS", "Invalid input", []ErrorDetail{
				{Field: "email", Message: "E-mail already exists."},
			})
			return
		}
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSONSuccessCreated(w, map[string]any{
		"id":         newUser.ID,
		"email":      newUser.Email,
		"first_name": newUser.FirstName,
		"last_name":  newUser.LastName,
		"role":       newUser.Role,
	})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if details := ValidateStruct(req); len(details) > 0 {
		JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil || !auth.VerifyPassword(user.Password, req.Password) {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Felaktiga inloggningsuppgifter!", nil)
		return
	}

	token, err := auth.GenerateToken(h.secret, user.ID, user.Role, tokenTTL)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	JSONSuccess(w, map[string]any{
		"access_token": token,
		"expires_in":   int(tokenTTL.Seconds()),
	}, nil)
}

// Logout ends the session. Tokens are stateless, so the server has nothing
// to revoke; clients discard the token.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	JSONSuccessNoContent(w)
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	JSONSuccess(w, user, nil)
}
