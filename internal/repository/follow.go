package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"moments/backend/internal/model"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("create follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotFollowing
	}
	return nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID int64) ([]model.FollowUserInfo, error) {
	query := `
		SELECT u.id, u.username, pr.avatar
		FROM follows f
		JOIN users u ON u.id = f.following_id
		JOIN profiles pr ON pr.user_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	var users []model.FollowUserInfo
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID int64) ([]model.FollowUserInfo, error) {
	query := `
		SELECT u.id, u.username, pr.avatar
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		JOIN profiles pr ON pr.user_id = u.id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`
	var users []model.FollowUserInfo
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids,
		`SELECT following_id FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get following ids: %w", err)
	}
	return ids, nil
}

func (r *followRepository) GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids,
		`SELECT follower_id FROM follows WHERE following_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get follower ids: %w", err)
	}
	return ids, nil
}
