package handler

import (
	"net/http"
	"time"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// userResponse is the public view of a user.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode registration")
		return
	}

	user, session, err := h.authService.Register(req.Email, req.Name, req.Password)
	if err != nil {
		respondError(w, err, "register user")
		return
	}

	h.authService.SetSessionCookie(w, session)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User created successfully",
		"user":    newUserResponse(user),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode login")
		return
	}

	user, session, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, err, "log in")
		return
	}

	h.authService.SetSessionCookie(w, session)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    newUserResponse(user),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(service.SessionCookieName)
	if err == nil {
		err = h.authService.Logout(cookie.Value)
		if err != nil {
			respondError(w, err, "log out")
			return
		}
	}

	h.authService.ClearSessionCookie(w)
	writeSuccess(w)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	user, err := h.userService.ByID(userID)
	if err != nil {
		respondError(w, err, "get user", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    newUserResponse(user),
	})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode profile")
		return
	}

	var token string
	if cookie, err := r.Cookie(service.SessionCookieName); err == nil {
		token = cookie.Value
	}

	user, err := h.userService.UpdateProfile(userID, token, req.Name, req.Email)
	if err != nil {
		respondError(w, err, "update profile", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    newUserResponse(user),
	})
}
