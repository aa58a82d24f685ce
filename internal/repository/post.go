package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"moments/backend/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postSelectColumns = `
	p.id, p.user_id, p.text, p.type, p.media, p.visibility,
	p.likes_count, p.comments_count, p.created_at,
	u.username AS author_username, u.email AS author_email, u.created_at AS author_joined,
	pr.avatar AS author_avatar, pr.signature AS author_signature
`

const postFromClause = `
	FROM posts p
	JOIN users u ON u.id = p.user_id
	JOIN profiles pr ON pr.user_id = u.id
`

// postRow is a post joined with its author columns.
type postRow struct {
	model.Post
	AuthorUsername  string    `db:"author_username"`
	AuthorEmail     *string   `db:"author_email"`
	AuthorJoined    time.Time `db:"author_joined"`
	AuthorAvatar    string    `db:"author_avatar"`
	AuthorSignature string    `db:"author_signature"`
}

func (r postRow) toPost() model.Post {
	p := r.Post
	p.Author = &model.User{
		ID:        p.UserID,
		Username:  r.AuthorUsername,
		Email:     r.AuthorEmail,
		CreatedAt: r.AuthorJoined,
		Profile: &model.Profile{
			UserID:    p.UserID,
			Avatar:    r.AuthorAvatar,
			Signature: r.AuthorSignature,
		},
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// Create inserts a post and links its tags in one transaction. Tags are
// get-or-create by name; the DO UPDATE arm makes RETURNING yield the row
// on conflict as well, so a concurrent creator and reuser converge on the
// same tag id.
func (r *postRepository) Create(ctx context.Context, userID int64, text, postType string, media []string, visibility string, tags []string) (*model.Post, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var post model.Post
	query := `
		INSERT INTO posts (user_id, text, type, media, visibility)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, text, type, media, visibility, likes_count, comments_count, created_at
	`
	err = tx.GetContext(ctx, &post, query, userID, text, postType, pq.Array(media), visibility)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	post.Tags = make([]string, 0, len(tags))
	for _, name := range tags {
		var tagID int64
		err = tx.GetContext(ctx, &tagID, `
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name)
		if err != nil {
			return nil, fmt.Errorf("get or create tag %q: %w", name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, post.ID, tagID)
		if err != nil {
			return nil, fmt.Errorf("link tag %q: %w", name, err)
		}
		post.Tags = append(post.Tags, name)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `SELECT ` + postSelectColumns + postFromClause + `WHERE p.id = $1`

	var row postRow
	err := r.db.GetContext(ctx, &row, query, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	post := row.toPost()
	if err := r.attachTags(ctx, []*model.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

// List executes the composed filter: total over the full filtered set, then
// the requested page, newest first.
func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]model.Post, int, error) {
	where, args := filter.BuildWhere()

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p JOIN users u ON u.id = p.user_id ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`,
		postSelectColumns, postFromClause, where, len(args)-1, len(args))

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]model.Post, 0, len(rows))
	refs := make([]*model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
		refs = append(refs, &posts[len(posts)-1])
	}
	if err := r.attachTags(ctx, refs); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID int64) ([]model.Post, error) {
	query := `SELECT ` + postSelectColumns + postFromClause + `
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list posts by user: %w", err)
	}

	posts := make([]model.Post, 0, len(rows))
	refs := make([]*model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
		refs = append(refs, &posts[len(posts)-1])
	}
	if err := r.attachTags(ctx, refs); err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a post with its likes, comments and tag links in one
// transaction, so no orphaned rows survive a crash mid-delete.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM likes WHERE post_id = $1`,
		`DELETE FROM comments WHERE post_id = $1`,
		`DELETE FROM post_tags WHERE post_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, postID); err != nil {
			return fmt.Errorf("delete post children: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}

	return tx.Commit()
}

func (r *postRepository) GetTags(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	if len(postIDs) == 0 {
		return map[int64][]string{}, nil
	}

	query := `
		SELECT pt.post_id, t.name
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY pt.post_id, t.id
	`
	type tagRow struct {
		PostID int64  `db:"post_id"`
		Name   string `db:"name"`
	}
	var rows []tagRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(postIDs)); err != nil {
		return nil, fmt.Errorf("get post tags: %w", err)
	}

	result := make(map[int64][]string)
	for _, row := range rows {
		result[row.PostID] = append(result[row.PostID], row.Name)
	}
	return result, nil
}

// CheckLikes checks which of the given posts the user has liked.
func (r *postRepository) CheckLikes(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	if len(postIDs) == 0 {
		return make(map[int64]bool), nil
	}

	var likedIDs []int64
	err := r.db.SelectContext(ctx, &likedIDs,
		`SELECT post_id FROM likes WHERE user_id = $1 AND post_id = ANY($2)`,
		userID, pq.Array(postIDs))
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("check likes: %w", err)
	}

	result := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		result[id] = false
	}
	for _, id := range likedIDs {
		result[id] = true
	}
	return result, nil
}

// Like inserts a like record. Returns ErrAlreadyLiked on the unique pair.
func (r *postRepository) Like(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO likes (post_id, user_id) VALUES ($1, $2)`, postID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return model.ErrAlreadyLiked
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

// Unlike deletes a like record. Returns ErrNotLiked if there was none.
func (r *postRepository) Unlike(ctx context.Context, tx *sqlx.Tx, postID, userID int64) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrNotLiked
	}
	return nil
}

func (r *postRepository) IncrementLikesCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE posts SET likes_count = likes_count + $1 WHERE id = $2`, delta, postID)
	if err != nil {
		return fmt.Errorf("update likes count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) IncrementCommentsCount(ctx context.Context, tx *sqlx.Tx, postID int64, delta int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE posts SET comments_count = comments_count + $1 WHERE id = $2`, delta, postID)
	if err != nil {
		return fmt.Errorf("update comments count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) GetLikesCount(ctx context.Context, postID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT likes_count FROM posts WHERE id = $1`, postID)
	if err == sql.ErrNoRows {
		return 0, model.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get likes count: %w", err)
	}
	return count, nil
}

// AdminList returns posts matching keyword over text, author username or tag
// names, newest first. No visibility filtering: staff see everything.
func (r *postRepository) AdminList(ctx context.Context, keyword string, page, pageSize int) ([]model.Post, int, error) {
	where := ""
	var args []interface{}
	if keyword != "" {
		args = append(args, "%"+keyword+"%")
		where = `WHERE p.text ILIKE $1 OR u.username ILIKE $1 OR EXISTS (
			SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.name ILIKE $1)`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p JOIN users u ON u.id = p.user_id ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d`,
		postSelectColumns, postFromClause, where, len(args)-1, len(args))

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]model.Post, 0, len(rows))
	refs := make([]*model.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toPost())
		refs = append(refs, &posts[len(posts)-1])
	}
	if err := r.attachTags(ctx, refs); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) attachTags(ctx context.Context, posts []*model.Post) error {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	tagMap, err := r.GetTags(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if tags, ok := tagMap[p.ID]; ok {
			p.Tags = tags
		} else if p.Tags == nil {
			p.Tags = []string{}
		}
	}
	return nil
}
