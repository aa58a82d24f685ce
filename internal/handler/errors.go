package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"moments/backend/internal/httputil"
	"moments/backend/internal/model"
)

// respondError translates sentinel business errors into envelope responses.
// Unknown errors are logged and masked as 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrPostNotFound),
		errors.Is(err, model.ErrCommentNotFound),
		errors.Is(err, model.ErrFriendRequestNotFound):
		httputil.WriteNotFound(w, err.Error())

	case errors.Is(err, model.ErrUsernameExists),
		errors.Is(err, model.ErrWrongPassword),
		errors.Is(err, model.ErrAlreadyFriends),
		errors.Is(err, model.ErrCannotFriendSelf),
		errors.Is(err, model.ErrAlreadyFollowing),
		errors.Is(err, model.ErrNotFollowing),
		errors.Is(err, model.ErrCannotFollowSelf),
		errors.Is(err, model.ErrAlreadyLiked),
		errors.Is(err, model.ErrNotLiked),
		errors.Is(err, model.ErrTagExists),
		errors.Is(err, model.ErrPostTooLong),
		errors.Is(err, model.ErrTooManyMedia):
		httputil.WriteBadRequest(w, err.Error())

	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrUserDisabled):
		httputil.WriteUnauthorized(w, err.Error())

	case errors.Is(err, model.ErrRefreshTokenNotFound):
		httputil.WriteErrorCode(w, http.StatusUnauthorized, err.Error(), model.CodeTokenInvalid)

	case errors.Is(err, model.ErrRefreshTokenExpired):
		httputil.WriteErrorCode(w, http.StatusUnauthorized, err.Error(), model.CodeTokenExpired)

	case errors.Is(err, model.ErrRefreshTokenReused):
		httputil.WriteErrorCode(w, http.StatusUnauthorized, err.Error(), model.CodeTokenRevoked)

	case errors.Is(err, model.ErrNotPostOwner):
		httputil.WriteForbidden(w, err.Error())

	default:
		log.Printf("[ERROR] %v", err)
		httputil.WriteInternalError(w)
	}
}

// idParam parses the {id} URL parameter. Writes the 400 itself on failure.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httputil.WriteBadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
