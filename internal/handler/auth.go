package handler

import (
	"encoding/json"
	"net/http"

	"moments/backend/internal/httputil"
	"moments/backend/internal/model"
	"moments/backend/internal/service"
	"moments/backend/internal/transport/http/middleware"
)

// AuthHandler serves registration, login and the token lifecycle.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authData struct {
	User   *model.User      `json:"user"`
	Tokens *model.TokenPair `json:"tokens"`
}

// Register creates an account and signs the new user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	tokens, err := h.authService.GenerateTokenPair(r.Context(), user, clientDevice(r), clientIP(r))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, "registered", authData{User: user, Tokens: tokens})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	tokens, err := h.authService.GenerateTokenPair(r.Context(), user, clientDevice(r), clientIP(r))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "logged in", authData{User: user, Tokens: tokens})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httputil.WriteBadRequest(w, "refresh_token is required")
		return
	}

	tokens, user, err := h.authService.Refresh(r.Context(), req.RefreshToken, clientDevice(r), clientIP(r))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "token refreshed", authData{User: user, Tokens: tokens})
}

// Logout revokes the presented refresh token and denylists the access token
// used to make this request.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	// Body is optional; an empty body still denylists the access token.
	_ = json.NewDecoder(r.Body).Decode(&req)

	claims, _ := middleware.ClaimsFromContext(r.Context())
	if err := h.authService.Logout(r.Context(), req.RefreshToken, claims); err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "logged out", nil)
}

func clientDevice(r *http.Request) *string {
	ua := r.UserAgent()
	if ua == "" {
		return nil
	}
	return &ua
}

func clientIP(r *http.Request) *string {
	ip := r.RemoteAddr
	if ip == "" {
		return nil
	}
	return &ip
}
