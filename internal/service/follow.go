package service

import (
	"context"

	"moments/backend/internal/model"
	"moments/backend/internal/repository"
)

// FollowService manages the one-way follow graph.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates the edge from follower to target.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID int64) error {
	if followerID == targetID {
		return model.ErrCannotFollowSelf
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	created, err := s.followRepo.Create(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !created {
		return model.ErrAlreadyFollowing
	}
	return nil
}

// Unfollow removes the edge from follower to target.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID int64) error {
	return s.followRepo.Delete(ctx, followerID, targetID)
}

func (s *FollowService) Following(ctx context.Context, userID int64) ([]model.FollowUserInfo, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

func (s *FollowService) Followers(ctx context.Context, userID int64) ([]model.FollowUserInfo, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}
