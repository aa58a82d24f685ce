package handler

import (
	"encoding/json"
	"net/http"

	"moments/backend/internal/httputil"
	"moments/backend/internal/service"
)

// AdminHandler serves the staff-only management endpoints. The router mounts
// it behind the staff middleware.
type AdminHandler struct {
	userService *service.UserService
	postService *service.PostService
}

func NewAdminHandler(userService *service.UserService, postService *service.PostService) *AdminHandler {
	return &AdminHandler{userService: userService, postService: postService}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", service.DefaultPageSize)

	users, total, err := h.userService.AdminList(r.Context(), search, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"users": users, "total": total})
}

type toggleUserRequest struct {
	IsActive *bool `json:"is_active"`
}

// ToggleUser sets the account's active flag to the state the body asks for.
func (h *AdminHandler) ToggleUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r)
	if !ok {
		return
	}

	var req toggleUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
		httputil.WriteBadRequest(w, "is_active is required")
		return
	}

	if err := h.userService.SetActive(r.Context(), userID, *req.IsActive); err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "user updated", map[string]bool{"is_active": *req.IsActive})
}

func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", service.DefaultPageSize)

	posts, total, err := h.postService.AdminList(r.Context(), keyword, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", postListData{Results: posts, Total: total})
}

// DeletePost removes any post. The staff check already happened in middleware.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.postService.AdminDelete(r.Context(), postID); err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "post deleted", nil)
}
