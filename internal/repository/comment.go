package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"moments/backend/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment inside the caller's transaction, so the insert and
// the post's comments_count bump commit together.
func (r *commentRepository) Create(ctx context.Context, tx *sqlx.Tx, postID, userID int64, content string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, user_id, content, created_at
	`
	var comment model.Comment
	if err := tx.GetContext(ctx, &comment, query, postID, userID, content); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

// ListByPost returns a page of comments on a post, newest first, with the
// commenter's username and avatar joined in.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64, page, pageSize int) ([]model.Comment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	query := `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
		       u.username AS name, pr.avatar
		FROM comments c
		JOIN users u ON u.id = c.user_id
		JOIN profiles pr ON pr.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`
	var comments []model.Comment
	err = r.db.SelectContext(ctx, &comments, query, postID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, total, nil
}
