package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"moments/backend/internal/httputil"
	"moments/backend/internal/service"
)

// MediaHandler serves stored media files. Video serving implements Range
// requests by hand so seeking works in browser players.
type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

var (
	errMalformedRange     = errors.New("malformed range")
	errUnsatisfiableRange = errors.New("unsatisfiable range")
)

// ServeVideo streams a stored video. A valid bytes=start-end header yields
// 206 with Content-Range; an unsatisfiable one yields 416; a header we cannot
// parse is ignored and the full file is served, same as no header at all.
func (h *MediaHandler) ServeVideo(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	path, err := h.mediaService.VideoPath(filename)
	if err != nil {
		httputil.WriteNotFound(w, "video not found")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		httputil.WriteNotFound(w, "video not found")
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		httputil.WriteNotFound(w, "video not found")
		return
	}
	size := fi.Size()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Accept-Ranges", "bytes")

	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		start, end, err := parseRange(rangeHeader, size)
		switch {
		case errors.Is(err, errUnsatisfiableRange):
			w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			return
		case err == nil:
			w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
			w.Header().Set("Content-Length", strconv.FormatInt(end-start+1, 10))
			w.WriteHeader(http.StatusPartialContent)
			if _, err := f.Seek(start, io.SeekStart); err != nil {
				return
			}
			io.CopyN(w, f, end-start+1)
			return
		}
		// Malformed header: fall through and serve the whole file.
	}

	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}

// parseRange parses a single bytes=start-end header against the file size.
// Headers not in single-range bytes form are malformed; ranges in the right
// form but outside the file (start or end beyond it, start after end) are
// unsatisfiable. The caller treats the two differently.
func parseRange(header string, size int64) (start, end int64, err error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return 0, 0, errMalformedRange
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return 0, 0, errMalformedRange
	}

	if startStr == "" {
		// Suffix range: last N bytes.
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return 0, 0, errMalformedRange
		}
		if n <= 0 || n > size {
			return 0, 0, errUnsatisfiableRange
		}
		return size - n, size - 1, nil
	}

	start, err = strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return 0, 0, errMalformedRange
	}
	if start >= size {
		return 0, 0, errUnsatisfiableRange
	}

	if endStr == "" {
		return start, size - 1, nil
	}
	end, err = strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return 0, 0, errMalformedRange
	}
	if end >= size || start > end {
		return 0, 0, errUnsatisfiableRange
	}
	return start, end, nil
}
