package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"moments/backend/internal/model"
)

type UserRepository interface {
	// Create inserts the user and their profile row in one transaction.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	SearchByUsername(ctx context.Context, keyword string, limit int) ([]model.User, error)
	UpdateMe(ctx context.Context, userID int64, req model.UpdateMeRequest) (*model.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHashed string) error
	SetActive(ctx context.Context, userID int64, active bool) error
	AdminList(ctx context.Context, search string, page, pageSize int) ([]model.User, int, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

type FriendshipRepository interface {
	// SendRequest upserts the (from, to) edge to pending in one statement.
	// Returns model.ErrAlreadyFriends if the edge is already accepted.
	SendRequest(ctx context.Context, fromUserID, toUserID int64) (*model.Friendship, error)
	// Respond transitions a pending edge addressed to toUserID.
	// Returns model.ErrFriendRequestNotFound if no such edge exists.
	Respond(ctx context.Context, friendshipID, toUserID int64, status string) (*model.Friendship, error)
	ListPendingFor(ctx context.Context, toUserID int64) ([]model.FriendRequestInfo, error)
	ListFriends(ctx context.Context, userID int64) ([]model.FriendInfo, error)
	// GetFriendIDs returns accepted-friendship counterparties in either direction.
	GetFriendIDs(ctx context.Context, userID int64) ([]int64, error)
}

type FollowRepository interface {
	// Create inserts the edge if absent. Returns false when it already existed.
	Create(ctx context.Context, followerID, followingID int64) (bool, error)
	// Delete removes the edge. Returns model.ErrNotFollowing if it was absent.
	Delete(ctx context.Context, followerID, followingID int64) error
	ListFollowing(ctx context.Context, userID int64) ([]model.FollowUserInfo, error)
	ListFollowers(ctx context.Context, userID int64) ([]model.FollowUserInfo, error)
	GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error)
	GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, userID int64, text, postType string, media []string, visibility string, tags []string) (*model.Post, error)
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// List executes the composed filter, returning the page slice and the
	// total count over the full filtered set (pre-pagination).
	List(ctx context.Context, filter PostFilter) ([]model.Post, int, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Post, error)
	// Delete removes the post together with its likes, comments and tag links.
	Delete(ctx context.Context, postID int64) error
	GetTags(ctx context.Context, postIDs []int64) (map[int64][]string, error)
	CheckLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
	Like(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error
	Unlike(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error
	IncrementLikesCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error
	IncrementCommentsCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error
	GetLikesCount(ctx context.Context, postID int64) (int, error)
	AdminList(ctx context.Context, keyword string, page, pageSize int) ([]model.Post, int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, tx *sqlx.Tx, postID, userID int64, content string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64, page, pageSize int) ([]model.Comment, int, error)
}

type TagRepository interface {
	// Create inserts a new tag. Returns model.ErrTagExists on duplicate.
	// Publishing does not use this; its get-or-create runs inside the post
	// transaction.
	Create(ctx context.Context, name string) (*model.Tag, error)
	HotTags(ctx context.Context, limit int) ([]model.TagCount, error)
	SearchNames(ctx context.Context, keyword string, limit int) ([]string, error)
}

type SearchHistoryRepository interface {
	// Save upserts on (user, keyword, tag, date), bumping created_at.
	Save(ctx context.Context, userID int64, keyword, tag string, date time.Time) error
	ListRecent(ctx context.Context, userID int64, limit int) ([]model.SearchHistory, error)
	Clear(ctx context.Context, userID int64) error
	SearchKeywords(ctx context.Context, keyword string, limit int) ([]string, error)
}
