package handler

import (
	"net/http"

	"moments/backend/internal/httputil"
	"moments/backend/internal/service"
	"moments/backend/internal/transport/http/middleware"
)

// FollowHandler serves the one-way follow graph.
type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	targetID, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.followService.Follow(r.Context(), claims.UserID, targetID); err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "followed", nil)
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	targetID, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.followService.Unfollow(r.Context(), claims.UserID, targetID); err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "unfollowed", nil)
}

func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	users, err := h.followService.Following(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"following": users})
}

func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	users, err := h.followService.Followers(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"followers": users})
}
