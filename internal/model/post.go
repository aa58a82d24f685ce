package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Post visibility tiers.
const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"
)

// Post types.
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeVideo = "video"
)

// Post represents a user's post with its metadata.
type Post struct {
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"-"`
	Text          string         `db:"text" json:"text"`
	Type          string         `db:"type" json:"type"`
	Media         pq.StringArray `db:"media" json:"media"`
	Visibility    string         `db:"visibility" json:"visibility"`
	LikesCount    int            `db:"likes_count" json:"likes_count"`
	CommentsCount int            `db:"comments_count" json:"comments_count"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`

	// Joined fields (not in posts table)
	Author  *User    `json:"user,omitempty"`
	Tags    []string `json:"tags"`
	IsLiked bool     `json:"is_liked"`
}

// CreatePostRequest is the request body for publishing a post.
// Type is inferred: video if Video is set, image if Images is non-empty,
// otherwise text.
type CreatePostRequest struct {
	Text        string   `json:"text"`
	Images      []string `json:"images"`
	Video       string   `json:"video"`
	VideoPoster string   `json:"videoPoster"`
	Tags        []string `json:"tags"`
	Visibility  string   `json:"visibility" validate:"omitempty,oneof=public friends private"`
}

// Post constraints
const (
	MaxPostTextLength = 2000
	MaxPostMediaCount = 9
)

// VideoPathSegment is the reserved path segment for uploaded video files.
// Image URLs living under it are stale poster entries from legacy data and
// must never be served as covers.
const VideoPathSegment = "/uploads/videos/"

var imageURLPattern = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif)$`)

// IsImageURL reports whether a media URL points at an image by extension.
func IsImageURL(url string) bool {
	return imageURLPattern.MatchString(url)
}

// NormalizeMedia cleans a post's media list for serving. All post types get
// empty entries dropped and duplicates removed, preserving first-seen order.
// For video posts the first non-image URL is the playable video and leads the
// result; image URLs stored under VideoPathSegment are dropped entirely; the
// remaining images follow as covers. A video post whose list contains no
// actual video degrades to its image list.
func NormalizeMedia(postType string, media []string) []string {
	deduped := make([]string, 0, len(media))
	seen := make(map[string]struct{}, len(media))
	for _, m := range media {
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		deduped = append(deduped, m)
	}

	if postType != PostTypeVideo {
		return deduped
	}

	var videoURL string
	images := make([]string, 0, len(deduped))
	for _, m := range deduped {
		if videoURL == "" && !IsImageURL(m) {
			videoURL = m
			continue
		}
		if IsImageURL(m) {
			if strings.Contains(m, VideoPathSegment) {
				continue
			}
			images = append(images, m)
		}
	}

	if videoURL == "" {
		return images
	}
	return append([]string{videoURL}, images...)
}

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the owner of this post")
	ErrPostTooLong  = errors.New("post text too long")
	ErrTooManyMedia = errors.New("too many media items")
	ErrAlreadyLiked = errors.New("already liked this post")
	ErrNotLiked     = errors.New("have not liked this post")
)
