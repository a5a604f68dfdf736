package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/triplog/triplog-backend/internal/middleware"
	"github.com/triplog/triplog-backend/internal/models"
	"github.com/triplog/triplog-backend/internal/store"
	"github.com/triplog/triplog-backend/pkg/utils"
)

type AuthHandler struct {
	users  store.UserStore
	tokens TokenIssuer
}

// TokenIssuer is the part of the token service the auth handlers need.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

func NewAuthHandler(users store.UserStore, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /create-account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := &models.User{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedOn: time.Now(),
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		// The original API reports a duplicate email as 400, not 409.
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "User already exists!")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	accessToken, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue access token")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"error":       false,
		"user":        user.Profile(),
		"accessToken": accessToken,
		"message":     "Registration successful",
	})
}

// Login handles POST /login. Both failure branches return 400 for
// compatibility with the existing frontend.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and Password are required")
		return
	}

	user, err := h.users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "User Not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	valid, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		writeError(w, http.StatusBadRequest, "Password is Invalid")
		return
	}

	accessToken, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue access token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"error":       false,
		"message":     "Login successful",
		"user":        user.Profile(),
		"accessToken": accessToken,
	})
}

// GetUser handles GET /get-user. A valid token whose user record no
// longer exists yields a bare 401.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	user, err := h.users.UserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":    user,
		"message": "",
	})
}
