package handler

import (
	"net/http"

	"moments/backend/internal/httputil"
	"moments/backend/internal/model"
	"moments/backend/internal/service"
	"moments/backend/internal/transport/http/middleware"
)

const maxAvatarUploadBytes = 10 << 20

// UserHandler serves the current user's account and profile.
type UserHandler struct {
	userService  *service.UserService
	authService  *service.AuthService
	mediaService *service.MediaService
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService, mediaService *service.MediaService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService, mediaService: mediaService}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	user, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	var req model.UpdateMeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateMe(r.Context(), claims.UserID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "profile updated", user)
}

// UploadAvatar accepts a multipart image, normalizes it and points the
// profile at the stored copy.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	if err := r.ParseMultipartForm(maxAvatarUploadBytes); err != nil {
		httputil.WriteBadRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		httputil.WriteBadRequest(w, "avatar file is required")
		return
	}
	defer file.Close()

	url, err := h.mediaService.SaveAvatar(claims.UserID, file, header.Filename)
	if err != nil {
		if err == service.ErrUnsupportedMediaType {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	user, err := h.userService.UpdateMe(r.Context(), claims.UserID, model.UpdateMeRequest{Avatar: &url})
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "avatar updated", user)
}

// ChangePassword verifies the old password, sets the new one and revokes all
// of the user's refresh tokens.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	var req model.ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.userService.ChangePassword(r.Context(), claims.UserID, req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.authService.RevokeAllSessions(r.Context(), claims.UserID); err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "password changed", nil)
}
