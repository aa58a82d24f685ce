package service

import (
	"context"
	"errors"
	"testing"

	"moments/backend/internal/model"
)

func newPostServiceForViewing(post *model.Post, friendIDs []int64, comments []model.Comment) *PostService {
	postRepo := &mockPostRepo{
		getByIDFn: func(_ context.Context, postID int64) (*model.Post, error) {
			if postID != post.ID {
				return nil, model.ErrPostNotFound
			}
			return post, nil
		},
	}
	commentRepo := &mockCommentRepo{
		listByPostFn: func(_ context.Context, _ int64, _, _ int) ([]model.Comment, int, error) {
			return comments, len(comments), nil
		},
	}
	friendshipRepo := &mockFriendshipRepo{
		getFriendIDsFn: func(_ context.Context, _ int64) ([]int64, error) {
			return friendIDs, nil
		},
	}
	followRepo := &mockFollowRepo{
		getFollowingIDsFn: func(_ context.Context, _ int64) ([]int64, error) {
			return nil, nil
		},
		getFollowerIDsFn: func(_ context.Context, _ int64) ([]int64, error) {
			return nil, nil
		},
	}
	resolver := NewVisibilityResolver(friendshipRepo, followRepo)
	return NewPostService(nil, postRepo, commentRepo, &mockUserRepo{}, resolver)
}

func TestListCommentsVisibility(t *testing.T) {
	post := &model.Post{ID: 10, UserID: 2, Visibility: model.VisibilityFriends}
	comments := []model.Comment{{ID: 1, Content: "nice"}}

	tests := []struct {
		name      string
		viewerID  *int64
		friendIDs []int64
		wantErr   error
	}{
		{
			name:     "anonymous viewer cannot list friends-only comments",
			viewerID: nil,
			wantErr:  model.ErrPostNotFound,
		},
		{
			name:     "non-friend viewer cannot list friends-only comments",
			viewerID: int64Ptr(3),
			wantErr:  model.ErrPostNotFound,
		},
		{
			name:      "friend viewer sees comments",
			viewerID:  int64Ptr(3),
			friendIDs: []int64{2},
		},
		{
			name:     "owner sees comments",
			viewerID: int64Ptr(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newPostServiceForViewing(post, tt.friendIDs, comments)
			data, err := svc.ListComments(context.Background(), tt.viewerID, post.ID, 1, 10)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ListComments() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListComments() error = %v", err)
			}
			if data.Total != len(comments) {
				t.Errorf("ListComments() total = %d, want %d", data.Total, len(comments))
			}
		})
	}
}

func TestListCommentsPublicPostAnonymous(t *testing.T) {
	post := &model.Post{ID: 10, UserID: 2, Visibility: model.VisibilityPublic}
	comments := []model.Comment{{ID: 1, Content: "hi"}, {ID: 2, Content: "hello"}}

	svc := newPostServiceForViewing(post, nil, comments)
	data, err := svc.ListComments(context.Background(), nil, post.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(data.Comments) != 2 || data.Total != 2 {
		t.Errorf("ListComments() = %d comments, total %d, want 2 and 2", len(data.Comments), data.Total)
	}
}

func TestDeleteOwnerOnly(t *testing.T) {
	post := &model.Post{ID: 10, UserID: 2, Visibility: model.VisibilityPublic}

	tests := []struct {
		name       string
		userID     int64
		wantErr    error
		wantDelete bool
	}{
		{name: "owner deletes", userID: 2, wantDelete: true},
		{name: "non-owner rejected", userID: 3, wantErr: model.ErrNotPostOwner},
		{name: "staff-like caller without ownership rejected", userID: 1, wantErr: model.ErrNotPostOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deleted := false
			postRepo := &mockPostRepo{
				getByIDFn: func(_ context.Context, _ int64) (*model.Post, error) {
					return post, nil
				},
				deleteFn: func(_ context.Context, postID int64) error {
					deleted = true
					if postID != post.ID {
						t.Errorf("Delete called with %d, want %d", postID, post.ID)
					}
					return nil
				},
			}
			svc := NewPostService(nil, postRepo, &mockCommentRepo{}, &mockUserRepo{}, nil)

			err := svc.Delete(context.Background(), post.ID, tt.userID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Delete() error = %v, want %v", err, tt.wantErr)
			}
			if deleted != tt.wantDelete {
				t.Errorf("delete called = %v, want %v", deleted, tt.wantDelete)
			}
		})
	}
}

func TestAdminDelete(t *testing.T) {
	deleted := false
	postRepo := &mockPostRepo{
		getByIDFn: func(_ context.Context, _ int64) (*model.Post, error) {
			return &model.Post{ID: 10, UserID: 2}, nil
		},
		deleteFn: func(_ context.Context, _ int64) error {
			deleted = true
			return nil
		},
	}
	svc := NewPostService(nil, postRepo, &mockCommentRepo{}, &mockUserRepo{}, nil)

	if err := svc.AdminDelete(context.Background(), 10); err != nil {
		t.Fatalf("AdminDelete() error = %v", err)
	}
	if !deleted {
		t.Error("AdminDelete() did not delete the post")
	}
}

func TestAdminDeleteMissingPost(t *testing.T) {
	postRepo := &mockPostRepo{
		getByIDFn: func(_ context.Context, _ int64) (*model.Post, error) {
			return nil, model.ErrPostNotFound
		},
	}
	svc := NewPostService(nil, postRepo, &mockCommentRepo{}, &mockUserRepo{}, nil)

	if err := svc.AdminDelete(context.Background(), 99); !errors.Is(err, model.ErrPostNotFound) {
		t.Fatalf("AdminDelete() error = %v, want %v", err, model.ErrPostNotFound)
	}
}

func int64Ptr(v int64) *int64 { return &v }
