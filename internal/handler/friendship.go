package handler

import (
	"net/http"

	"moments/backend/internal/httputil"
	"moments/backend/internal/model"
	"moments/backend/internal/service"
	"moments/backend/internal/transport/http/middleware"
)

// FriendshipHandler serves the friend-request flow.
type FriendshipHandler struct {
	friendshipService *service.FriendshipService
}

func NewFriendshipHandler(friendshipService *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

func (h *FriendshipHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	var req model.SendFriendRequestBody
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fr, err := h.friendshipService.SendRequest(r.Context(), claims.UserID, req.ToUserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "friend request sent", fr)
}

func (h *FriendshipHandler) Respond(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	friendshipID, ok := idParam(w, r)
	if !ok {
		return
	}

	var req model.RespondFriendRequestBody
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fr, err := h.friendshipService.Respond(r.Context(), friendshipID, claims.UserID, req.Action)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "friend request "+fr.Status, fr)
}

func (h *FriendshipHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	requests, err := h.friendshipService.PendingRequests(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"requests": requests})
}

func (h *FriendshipHandler) Friends(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	friends, err := h.friendshipService.Friends(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"friends": friends})
}
