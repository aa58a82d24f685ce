package model

import (
	"errors"
	"time"
)

// Comment represents a comment on a post.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"-"`
	UserID    int64     `db:"user_id" json:"-"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields
	Name   string `db:"name" json:"name"`
	Avatar string `db:"avatar" json:"avatar"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// CommentListData is the paginated comment list payload.
type CommentListData struct {
	Comments []Comment `json:"comments"`
	Total    int       `json:"total"`
}

var (
	ErrCommentNotFound = errors.New("comment not found")
)
