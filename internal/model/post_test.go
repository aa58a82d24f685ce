package model

import (
	"reflect"
	"testing"
)

func TestNormalizeMedia(t *testing.T) {
	tests := []struct {
		name     string
		postType string
		media    []string
		want     []string
	}{
		{
			name:     "image post drops empties and duplicates",
			postType: PostTypeImage,
			media:    []string{"/media/uploads/images/a.jpg", "", "/media/uploads/images/a.jpg", "/media/uploads/images/b.png"},
			want:     []string{"/media/uploads/images/a.jpg", "/media/uploads/images/b.png"},
		},
		{
			name:     "video post puts the first non-image first",
			postType: PostTypeVideo,
			media:    []string{"/media/uploads/images/cover.jpg", "/media/uploads/videos/clip.mp4"},
			want:     []string{"/media/uploads/videos/clip.mp4", "/media/uploads/images/cover.jpg"},
		},
		{
			name:     "stale poster under the videos path is dropped",
			postType: PostTypeVideo,
			media:    []string{"/media/uploads/videos/clip.mp4", "/media/uploads/videos/clip.jpg", "/media/uploads/images/ok.webp"},
			want:     []string{"/media/uploads/videos/clip.mp4", "/media/uploads/images/ok.webp"},
		},
		{
			name:     "image extension match is case-insensitive",
			postType: PostTypeVideo,
			media:    []string{"/media/uploads/images/COVER.JPG", "/media/uploads/videos/clip.mp4"},
			want:     []string{"/media/uploads/videos/clip.mp4", "/media/uploads/images/COVER.JPG"},
		},
		{
			name:     "video post without an actual video degrades to images",
			postType: PostTypeVideo,
			media:    []string{"/media/uploads/images/a.jpg", "/media/uploads/images/b.jpeg"},
			want:     []string{"/media/uploads/images/a.jpg", "/media/uploads/images/b.jpeg"},
		},
		{
			name:     "text post passes through",
			postType: PostTypeText,
			media:    []string{},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMedia(tt.postType, tt.media)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeMedia() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsImageURL(t *testing.T) {
	if !IsImageURL("/x/y.PNG") {
		t.Error("expected .PNG to be an image")
	}
	if IsImageURL("/x/y.mp4") {
		t.Error("expected .mp4 not to be an image")
	}
	if IsImageURL("/x/y.jpg?size=2") {
		t.Error("extension must terminate the URL")
	}
}
