package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"quicknotes-server/internal/domain"
	"quicknotes-server/internal/middleware"
	"quicknotes-server/internal/service"
	"quicknotes-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Conflict(w, "Username already taken")
			return
		}
		response.InternalError(w, "Failed to register user")
		return
	}

	response.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	loginResp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		response.InternalError(w, "Failed to log in")
		return
	}

	response.JSON(w, http.StatusOK, loginResp)
}

// Profile answers from the verified token alone; there is no session record
// to consult.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	response.JSON(w, http.StatusOK, domain.Profile{
		UserID:   identity.UserID,
		Username: identity.Username,
	})
}
