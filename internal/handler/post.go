package handler

import (
	"encoding/json"
	"net/http"

	"moments/backend/internal/httputil"
	"moments/backend/internal/model"
	"moments/backend/internal/service"
	"moments/backend/internal/transport/http/middleware"
)

// PostHandler serves the feed and per-post actions.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type postListData struct {
	Results []model.Post `json:"results"`
	Total   int          `json:"total"`
}

type likeRequest struct {
	Liked bool `json:"liked"`
}

type likeData struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// Feed lists the posts the viewer's audience allows, newest first.
// Anonymous viewers see public posts only.
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.ViewerIDFromContext(r.Context())
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", service.DefaultPageSize)

	posts, total, err := h.postService.Feed(r.Context(), viewerID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", postListData{Results: posts, Total: total})
}

// Like moves the post to the requested like state.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	postID, ok := idParam(w, r)
	if !ok {
		return
	}

	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "invalid request body")
		return
	}

	likes, err := h.postService.SetLike(r.Context(), postID, claims.UserID, req.Liked)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", likeData{Liked: req.Liked, LikesCount: likes})
}

func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.ViewerIDFromContext(r.Context())
	postID, ok := idParam(w, r)
	if !ok {
		return
	}
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", service.DefaultPageSize)

	data, err := h.postService.ListComments(r.Context(), viewerID, postID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", data)
}

func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	postID, ok := idParam(w, r)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.postService.AddComment(r.Context(), postID, claims.UserID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "comment created", comment)
}

// Delete removes the caller's own post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	postID, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), postID, claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "post deleted", nil)
}
