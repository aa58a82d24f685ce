package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"moments/backend/internal/model"
)

type friendshipRepository struct {
	db *sqlx.DB
}

func NewFriendshipRepository(db *sqlx.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

// SendRequest creates the (from, to) edge in pending, or resets an existing
// non-accepted edge back to pending, in a single upsert. The conditional
// DO UPDATE means an already-accepted edge is left untouched and RETURNING
// yields no row, which we translate to the business error. Two concurrent
// identical requests race on the unique index and both land on the same edge.
func (r *friendshipRepository) SendRequest(ctx context.Context, fromUserID, toUserID int64) (*model.Friendship, error) {
	query := `
		INSERT INTO friendships (from_user_id, to_user_id, status)
		VALUES ($1, $2, 'pending')
		ON CONFLICT (from_user_id, to_user_id)
		DO UPDATE SET status = 'pending', updated_at = NOW()
		WHERE friendships.status <> 'accepted'
		RETURNING id, from_user_id, to_user_id, status, created_at, updated_at
	`
	var fr model.Friendship
	err := r.db.GetContext(ctx, &fr, query, fromUserID, toUserID)
	if err == sql.ErrNoRows {
		return nil, model.ErrAlreadyFriends
	}
	if err != nil {
		return nil, fmt.Errorf("upsert friend request: %w", err)
	}
	return &fr, nil
}

// Respond transitions a pending edge addressed to toUserID. The WHERE clause
// enforces both the addressing and the pending precondition, so a missing
// edge, someone else's edge and an already-settled edge all surface as
// not-found.
func (r *friendshipRepository) Respond(ctx context.Context, friendshipID, toUserID int64, status string) (*model.Friendship, error) {
	query := `
		UPDATE friendships
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND to_user_id = $2 AND status = 'pending'
		RETURNING id, from_user_id, to_user_id, status, created_at, updated_at
	`
	var fr model.Friendship
	err := r.db.GetContext(ctx, &fr, query, friendshipID, toUserID, status)
	if err == sql.ErrNoRows {
		return nil, model.ErrFriendRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("respond to friend request: %w", err)
	}
	return &fr, nil
}

func (r *friendshipRepository) ListPendingFor(ctx context.Context, toUserID int64) ([]model.FriendRequestInfo, error) {
	query := `
		SELECT f.id, f.from_user_id, f.to_user_id, f.status, f.created_at, f.updated_at,
		       u.username AS from_username, pr.avatar AS from_avatar
		FROM friendships f
		JOIN users u ON u.id = f.from_user_id
		JOIN profiles pr ON pr.user_id = u.id
		WHERE f.to_user_id = $1 AND f.status = 'pending'
		ORDER BY f.created_at DESC
	`
	var requests []model.FriendRequestInfo
	if err := r.db.SelectContext(ctx, &requests, query, toUserID); err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	return requests, nil
}

// ListFriends returns the counterparty of every accepted edge touching
// userID, whichever direction the edge was stored in.
func (r *friendshipRepository) ListFriends(ctx context.Context, userID int64) ([]model.FriendInfo, error) {
	query := `
		SELECT u.id, u.username, f.id AS friendship_id, pr.avatar, pr.signature
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.from_user_id = $1 THEN f.to_user_id ELSE f.from_user_id END
		JOIN profiles pr ON pr.user_id = u.id
		WHERE f.status = 'accepted' AND (f.from_user_id = $1 OR f.to_user_id = $1)
		ORDER BY f.updated_at DESC
	`
	var friends []model.FriendInfo
	if err := r.db.SelectContext(ctx, &friends, query, userID); err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return friends, nil
}

func (r *friendshipRepository) GetFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT CASE WHEN from_user_id = $1 THEN to_user_id ELSE from_user_id END
		FROM friendships
		WHERE status = 'accepted' AND (from_user_id = $1 OR to_user_id = $1)
	`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("get friend ids: %w", err)
	}
	return ids, nil
}
