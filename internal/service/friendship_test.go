package service

import (
	"context"
	"testing"

	"moments/backend/internal/model"
)

func TestSendFriendRequest(t *testing.T) {
	tests := []struct {
		name       string
		fromUserID int64
		toUserID   int64
		targetErr  error
		sendErr    error
		wantErr    error
	}{
		{
			name:       "success",
			fromUserID: 1,
			toUserID:   2,
		},
		{
			name:       "self request rejected before any lookup",
			fromUserID: 1,
			toUserID:   1,
			wantErr:    model.ErrCannotFriendSelf,
		},
		{
			name:       "unknown target",
			fromUserID: 1,
			toUserID:   99,
			targetErr:  model.ErrUserNotFound,
			wantErr:    model.ErrUserNotFound,
		},
		{
			name:       "already accepted",
			fromUserID: 1,
			toUserID:   2,
			sendErr:    model.ErrAlreadyFriends,
			wantErr:    model.ErrAlreadyFriends,
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
			friendshipRepo := &mockFriendshipRepo{
				sendRequestFn: func(_ context.Context, from, to int64) (*model.Friendship, error) {
					if tt.sendErr != nil {
						return nil, tt.sendErr
					}
					return &model.Friendship{ID: 10, FromUserID: from, ToUserID: to, Status: model.FriendStatusPending}, nil
				},
			}

			svc := NewFriendshipService(friendshipRepo, userRepo)
			fr, err := svc.SendRequest(context.Background(), tt.fromUserID, tt.toUserID)
			if err != tt.wantErr {
				t.Fatalf("SendRequest() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && fr.Status != model.FriendStatusPending {
				t.Errorf("SendRequest() status = %q, want pending", fr.Status)
			}
		})
	}
}

func TestRespondMapsActionToStatus(t *testing.T) {
	tests := []struct {
		action     string
		wantStatus string
	}{
		{action: "accept", wantStatus: model.FriendStatusAccepted},
		{action: "reject", wantStatus: model.FriendStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			var gotStatus string
			friendshipRepo := &mockFriendshipRepo{
				respondFn: func(_ context.Context, friendshipID, toUserID int64, status string) (*model.Friendship, error) {
					gotStatus = status
					return &model.Friendship{ID: friendshipID, ToUserID: toUserID, Status: status}, nil
				},
			}

			svc := NewFriendshipService(friendshipRepo, &mockUserRepo{})
			fr, err := svc.Respond(context.Background(), 10, 2, tt.action)
			if err != nil {
				t.Fatalf("Respond() error = %v", err)
			}
			if gotStatus != tt.wantStatus || fr.Status != tt.wantStatus {
				t.Errorf("Respond(%q) status = %q, want %q", tt.action, gotStatus, tt.wantStatus)
			}
		})
	}
}

func TestRespondUnknownRequest(t *testing.T) {
	friendshipRepo := &mockFriendshipRepo{
		respondFn: func(_ context.Context, _, _ int64, _ string) (*model.Friendship, error) {
			return nil, model.ErrFriendRequestNotFound
		},
	}

	svc := NewFriendshipService(friendshipRepo, &mockUserRepo{})
	_, err := svc.Respond(context.Background(), 10, 2, "accept")
	if err != model.ErrFriendRequestNotFound {
		t.Errorf("Respond() error = %v, want ErrFriendRequestNotFound", err)
	}
}
