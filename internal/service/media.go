package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"moments/backend/internal/config"
)

// Upload subdirectories under the media root. Videos get their own segment
// so the Range-serving endpoint and the stale-poster rule can key off it.
const (
	imageDir = "uploads/images"
	videoDir = "uploads/videos"
)

// AvatarSize is the square edge avatars are resized to.
const AvatarSize = 256

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidFilename      = errors.New("invalid filename")
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".webm": true, ".mov": true,
}

// MediaService stores uploaded files on local disk and hands out their
// public URLs. Filenames are random UUIDs; the client's name only
// contributes the extension.
type MediaService struct {
	root    string
	baseURL string
}

func NewMediaService(cfg *config.Config) *MediaService {
	return &MediaService{root: cfg.MediaRoot, baseURL: strings.TrimRight(cfg.MediaBaseURL, "/")}
}

// SaveImage stores an uploaded image and returns its public URL.
func (s *MediaService) SaveImage(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !imageExtensions[ext] {
		return "", ErrUnsupportedMediaType
	}
	return s.save(r, imageDir, ext)
}

// SaveVideo stores an uploaded video and returns its public URL.
func (s *MediaService) SaveVideo(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !videoExtensions[ext] {
		return "", ErrUnsupportedMediaType
	}
	return s.save(r, videoDir, ext)
}

// SaveAvatar decodes, center-crops to a square and resizes the image before
// storing it under the user's avatar directory, so avatars are uniform
// regardless of what was uploaded.
func (s *MediaService) SaveAvatar(userID int64, r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !imageExtensions[ext] {
		return "", ErrUnsupportedMediaType
	}

	// A file that does not decode is the client's problem, same as a bad
	// extension.
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrUnsupportedMediaType
	}
	img = imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	subdir := path.Join("avatars", strconv.FormatInt(userID, 10))
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	name := uuid.New().String() + ".jpg"
	if err := imaging.Save(img, filepath.Join(dir, name), imaging.JPEGQuality(90)); err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}

	return s.publicURL(subdir, name), nil
}

// VideoPath maps a requested video filename to its on-disk path. Filenames
// with path separators or traversal segments are rejected before touching
// the filesystem.
func (s *MediaService) VideoPath(filename string) (string, error) {
	if filename == "" || filename != path.Base(filename) || strings.Contains(filename, "..") {
		return "", ErrInvalidFilename
	}
	return filepath.Join(s.root, videoDir, filename), nil
}

func (s *MediaService) save(r io.Reader, subdir, ext string) (string, error) {
	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write media file: %w", err)
	}

	return s.publicURL(subdir, name), nil
}

func (s *MediaService) publicURL(subdir, name string) string {
	return s.baseURL + "/" + path.Join(subdir, name)
}
