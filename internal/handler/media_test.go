package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"moments/backend/internal/config"
	"moments/backend/internal/service"
)

func TestParseRange(t *testing.T) {
	const size = 100

	tests := []struct {
		name      string
		header    string
		wantStart int64
		wantEnd   int64
		wantErr   error
	}{
		{name: "full range", header: "bytes=0-99", wantStart: 0, wantEnd: 99},
		{name: "middle range", header: "bytes=10-19", wantStart: 10, wantEnd: 19},
		{name: "open ended", header: "bytes=50-", wantStart: 50, wantEnd: 99},
		{name: "suffix range", header: "bytes=-10", wantStart: 90, wantEnd: 99},
		{name: "start at size", header: "bytes=100-", wantErr: errUnsatisfiableRange},
		{name: "start beyond size", header: "bytes=200-300", wantErr: errUnsatisfiableRange},
		{name: "end at size", header: "bytes=0-100", wantErr: errUnsatisfiableRange},
		{name: "start after end", header: "bytes=20-10", wantErr: errUnsatisfiableRange},
		{name: "suffix longer than file", header: "bytes=-200", wantErr: errUnsatisfiableRange},
		{name: "not bytes unit", header: "items=0-10", wantErr: errMalformedRange},
		{name: "multiple ranges", header: "bytes=0-1,5-6", wantErr: errMalformedRange},
		{name: "garbage", header: "bytes=abc-def", wantErr: errMalformedRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := parseRange(tt.header, size)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("parseRange(%q) error = %v, want %v", tt.header, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("parseRange(%q) = (%d, %d), want (%d, %d)", tt.header, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func newVideoServer(t *testing.T, content []byte) *chi.Mux {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "uploads", "videos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	media := service.NewMediaService(&config.Config{MediaRoot: root, MediaBaseURL: "/media"})
	h := NewMediaHandler(media)

	r := chi.NewRouter()
	r.Get("/media/uploads/videos/{filename}", h.ServeVideo)
	return r
}

func TestServeVideoFull(t *testing.T) {
	content := []byte("0123456789abcdefghij")
	router := newVideoServer(t, content)

	req := httptest.NewRequest(http.MethodGet, "/media/uploads/videos/clip.mp4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Accept-Ranges"); got != "bytes" {
		t.Errorf("Accept-Ranges = %q, want bytes", got)
	}
	if rec.Body.String() != string(content) {
		t.Errorf("body = %q, want full file", rec.Body.String())
	}
}

func TestServeVideoPartial(t *testing.T) {
	content := []byte("0123456789abcdefghij")
	router := newVideoServer(t, content)

	req := httptest.NewRequest(http.MethodGet, "/media/uploads/videos/clip.mp4", nil)
	req.Header.Set("Range", "bytes=5-9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusPartialContent {
		t.Fatalf("status = %d, want 206", rec.Code)
	}
	if got := rec.Header().Get("Content-Range"); got != "bytes 5-9/20" {
		t.Errorf("Content-Range = %q, want bytes 5-9/20", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "5" {
		t.Errorf("Content-Length = %q, want 5", got)
	}
	if rec.Body.String() != "56789" {
		t.Errorf("body = %q, want 56789", rec.Body.String())
	}
}

func TestServeVideoUnsatisfiableRange(t *testing.T) {
	content := []byte("0123456789abcdefghij")
	router := newVideoServer(t, content)

	req := httptest.NewRequest(http.MethodGet, "/media/uploads/videos/clip.mp4", nil)
	req.Header.Set("Range", "bytes=100-200")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestedRangeNotSatisfiable {
		t.Fatalf("status = %d, want 416", rec.Code)
	}
	if got := rec.Header().Get("Content-Range"); got != "bytes */20" {
		t.Errorf("Content-Range = %q, want bytes */20", got)
	}
}

func TestServeVideoMalformedRange(t *testing.T) {
	content := []byte("0123456789abcdefghij")
	router := newVideoServer(t, content)

	for _, header := range []string{"items=0-10", "bytes=abc-def", "bytes=0-1,5-6"} {
		req := httptest.NewRequest(http.MethodGet, "/media/uploads/videos/clip.mp4", nil)
		req.Header.Set("Range", header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Range %q: status = %d, want 200", header, rec.Code)
		}
		if rec.Body.String() != string(content) {
			t.Errorf("Range %q: body = %q, want full file", header, rec.Body.String())
		}
	}
}

func TestServeVideoMissingFile(t *testing.T) {
	router := newVideoServer(t, []byte("x"))

	req := httptest.NewRequest(http.MethodGet, "/media/uploads/videos/nope.mp4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestServeVideoRejectsTraversal(t *testing.T) {
	media := service.NewMediaService(&config.Config{MediaRoot: t.TempDir(), MediaBaseURL: "/media"})
	if _, err := media.VideoPath("../secret.txt"); err == nil {
		t.Error("VideoPath accepted a traversal filename")
	}
	if _, err := media.VideoPath(""); err == nil {
		t.Error("VideoPath accepted an empty filename")
	}
}
