package service

import (
	"context"
	"testing"

	"moments/backend/internal/model"
)

func TestFollow(t *testing.T) {
	tests := []struct {
		name       string
		followerID int64
		targetID   int64
		targetErr  error
		created    bool
		wantErr    error
	}{
		{
			name:       "success",
			followerID: 1,
			targetID:   2,
			created:    true,
		},
		{
			name:       "self follow rejected",
			followerID: 1,
			targetID:   1,
			wantErr:    model.ErrCannotFollowSelf,
		},
		{
			name:       "unknown target",
			followerID: 1,
			targetID:   99,
			targetErr:  model.ErrUserNotFound,
			wantErr:    model.ErrUserNotFound,
		},
		{
			name:       "duplicate follow",
			followerID: 1,
			targetID:   2,
			created:    false,
			wantErr:    model.ErrAlreadyFollowing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := &mockUserRepo{
				getByIDFn: func(_ context.Context, id int64) (*model.User, error) {
					if tt.targetErr != nil {
						return nil, tt.targetErr
					}
					return &model.User{ID: id}, nil
				},
			}
			followRepo := &mockFollowRepo{
				createFn: func(_ context.Context, _, _ int64) (bool, error) {
					return tt.created, nil
				},
			}

			svc := NewFollowService(followRepo, userRepo)
			err := svc.Follow(context.Background(), tt.followerID, tt.targetID)
			if err != tt.wantErr {
				t.Errorf("Follow() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnfollowNotFollowing(t *testing.T) {
	followRepo := &mockFollowRepo{
		deleteFn: func(_ context.Context, _, _ int64) error {
			return model.ErrNotFollowing
		},
	}

	svc := NewFollowService(followRepo, &mockUserRepo{})
	if err := svc.Unfollow(context.Background(), 1, 2); err != model.ErrNotFollowing {
		t.Errorf("Unfollow() error = %v, want ErrNotFollowing", err)
	}
}
