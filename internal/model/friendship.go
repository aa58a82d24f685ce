package model

import (
	"errors"
	"time"
)

// Friendship statuses. The edge is stored directionally (from requester to
// target) but "friends" is symmetric in effect: an accepted edge in either
// direction makes the two users friends.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusRejected = "rejected"
)

// Friendship is a directed friend-request edge with a status.
type Friendship struct {
	ID         int64     `db:"id" json:"id"`
	FromUserID int64     `db:"from_user_id" json:"from_user"`
	ToUserID   int64     `db:"to_user_id" json:"to_user"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// FriendRequestInfo is a pending request enriched with the sender's display fields.
type FriendRequestInfo struct {
	Friendship
	FromUsername string `db:"from_username" json:"from_username"`
	FromAvatar   string `db:"from_avatar" json:"from_avatar"`
}

// FriendInfo is one entry in the friends list: the counterparty of an
// accepted edge, whichever direction it was stored in.
type FriendInfo struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	FriendshipID int64  `db:"friendship_id" json:"friendship_id"`
	Avatar       string `db:"avatar" json:"avatar"`
	Signature    string `db:"signature" json:"signature"`
}

// SendFriendRequestBody is the request body for initiating a friend request.
type SendFriendRequestBody struct {
	ToUserID int64 `json:"to_user_id" validate:"required"`
}

// RespondFriendRequestBody is the request body for answering a request.
type RespondFriendRequestBody struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

var (
	ErrAlreadyFriends        = errors.New("already friends with this user")
	ErrCannotFriendSelf      = errors.New("cannot send a friend request to yourself")
	ErrFriendRequestNotFound = errors.New("friend request not found")
)
