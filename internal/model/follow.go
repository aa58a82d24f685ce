package model

import (
	"errors"
	"time"
)

// Follow is a directed edge with no status: existence alone means an active
// follow. A mutual follow grants friends-tier visibility (weaker than an
// accepted friendship only in that both directions must exist).
type Follow struct {
	FollowerID  int64     `db:"follower_id" json:"follower_id"`
	FollowingID int64     `db:"following_id" json:"following_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FollowUserInfo is one entry in a following/followers list.
type FollowUserInfo struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Avatar   string `db:"avatar" json:"avatar"`
}

var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
)
