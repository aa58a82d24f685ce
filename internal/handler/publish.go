package handler

import (
	"io"
	"net/http"

	"moments/backend/internal/httputil"
	"moments/backend/internal/model"
	"moments/backend/internal/service"
	"moments/backend/internal/transport/http/middleware"
)

const maxMediaUploadBytes = 200 << 20

// PublishHandler serves the authoring surface: creating posts, uploading
// media and managing tags.
type PublishHandler struct {
	postService   *service.PostService
	searchService *service.SearchService
	mediaService  *service.MediaService
}

func NewPublishHandler(postService *service.PostService, searchService *service.SearchService, mediaService *service.MediaService) *PublishHandler {
	return &PublishHandler{postService: postService, searchService: searchService, mediaService: mediaService}
}

func (h *PublishHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	var req model.CreatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	post, err := h.postService.Create(r.Context(), claims.UserID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "post created", post)
}

// ListOwnPosts returns all of the caller's posts regardless of visibility.
func (h *PublishHandler) ListOwnPosts(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	posts, err := h.postService.ListOwn(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", postListData{Results: posts, Total: len(posts)})
}

func (h *PublishHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, h.mediaService.SaveImage)
}

func (h *PublishHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, h.mediaService.SaveVideo)
}

// CommonTags returns the most used tag names for the tag picker.
func (h *PublishHandler) CommonTags(w http.ResponseWriter, r *http.Request) {
	counts, err := h.searchService.HotTags(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	names := make([]string, 0, len(counts))
	for _, c := range counts {
		names = append(names, c.Name)
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"tags": names})
}

// CreateTag explicitly creates a tag; duplicates are a business error.
func (h *PublishHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTagRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := h.searchService.CreateTag(r.Context(), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "tag created", tag)
}

func (h *PublishHandler) upload(w http.ResponseWriter, r *http.Request, save func(file io.Reader, name string) (string, error)) {
	if err := r.ParseMultipartForm(maxMediaUploadBytes); err != nil {
		httputil.WriteBadRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteBadRequest(w, "file is required")
		return
	}
	defer file.Close()

	url, err := save(file, header.Filename)
	if err != nil {
		if err == service.ErrUnsupportedMediaType {
			httputil.WriteBadRequest(w, err.Error())
			return
		}
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "uploaded", map[string]string{"url": url})
}
