package service

import (
	"context"
	"log"

	"moments/backend/internal/model"
	"moments/backend/internal/repository"
)

// FriendshipService manages the friend-request state machine.
type FriendshipService struct {
	friendshipRepo repository.FriendshipRepository
	userRepo       repository.UserRepository
}

func NewFriendshipService(friendshipRepo repository.FriendshipRepository, userRepo repository.UserRepository) *FriendshipService {
	return &FriendshipService{friendshipRepo: friendshipRepo, userRepo: userRepo}
}

// SendRequest sends or re-sends a friend request. A previously rejected
// request goes back to pending; an accepted one is an error.
func (s *FriendshipService) SendRequest(ctx context.Context, fromUserID, toUserID int64) (*model.Friendship, error) {
	if fromUserID == toUserID {
		return nil, model.ErrCannotFriendSelf
	}
	if _, err := s.userRepo.GetByID(ctx, toUserID); err != nil {
		return nil, err
	}

	fr, err := s.friendshipRepo.SendRequest(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}

	log.Printf("[FriendshipService] user %d sent friend request to user %d", fromUserID, toUserID)
	return fr, nil
}

// Respond accepts or rejects a pending request addressed to userID.
func (s *FriendshipService) Respond(ctx context.Context, friendshipID, userID int64, action string) (*model.Friendship, error) {
	status := model.FriendStatusRejected
	if action == "accept" {
		status = model.FriendStatusAccepted
	}
	return s.friendshipRepo.Respond(ctx, friendshipID, userID, status)
}

func (s *FriendshipService) PendingRequests(ctx context.Context, userID int64) ([]model.FriendRequestInfo, error) {
	return s.friendshipRepo.ListPendingFor(ctx, userID)
}

func (s *FriendshipService) Friends(ctx context.Context, userID int64) ([]model.FriendInfo, error) {
	return s.friendshipRepo.ListFriends(ctx, userID)
}
