package handler

import (
	"net/http"
	"strings"
	"time"

	"moments/backend/internal/httputil"
	"moments/backend/internal/model"
	"moments/backend/internal/service"
	"moments/backend/internal/transport/http/middleware"
)

// SearchHandler serves search, hot tags, suggestions and search history.
type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs the composed post search for the current viewer.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.ViewerIDFromContext(r.Context())
	params := parseSearchParams(r)

	data, err := h.searchService.Search(r.Context(), viewerID, params)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", data)
}

func (h *SearchHandler) HotTags(w http.ResponseWriter, r *http.Request) {
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

func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.searchService.Suggestions(r.Context(), strings.TrimSpace(r.URL.Query().Get("keyword")))
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"suggestions": suggestions})
}

func (h *SearchHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	entries, err := h.searchService.RecentHistory(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "", map[string]interface{}{"history": entries})
}

func (h *SearchHandler) SaveHistory(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	var req model.SaveSearchHistoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Keyword == "" {
		httputil.WriteBadRequest(w, "keyword is required")
		return
	}

	if err := h.searchService.SaveHistory(r.Context(), claims.UserID, req); err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "search saved", nil)
}

func (h *SearchHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())

	if err := h.searchService.ClearHistory(r.Context(), claims.UserID); err != nil {
		respondError(w, err)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "search history cleared", nil)
}

// parseSearchParams reads the search query string. Keyword and tag are
// trimmed of surrounding whitespace; malformed dates are treated as absent,
// not rejected.
func parseSearchParams(r *http.Request) model.SearchParams {
	q := r.URL.Query()

	params := model.SearchParams{
		Keyword:  strings.TrimSpace(q.Get("keyword")),
		Tag:      strings.TrimSpace(q.Get("tag")),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", service.DefaultPageSize),
	}

	if raw := q.Get("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				params.Tags = append(params.Tags, t)
			}
		}
	}

	params.Date = parseDate(q.Get("date"))
	params.DateFrom = parseDate(q.Get("date_from"))
	params.DateTo = parseDate(q.Get("date_to"))

	return params
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
