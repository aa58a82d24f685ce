package model

import "errors"

// Tag is a shared label on posts. Tags are get-or-create by name and are
// never deleted by normal flows.
type Tag struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// TagCount is a tag name with its usage frequency across posts.
type TagCount struct {
	Name  string `db:"name" json:"name"`
	Count int    `db:"count" json:"count"`
}

// CreateTagRequest is the request body for explicitly creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

var (
	ErrTagExists = errors.New("tag already exists")
)
