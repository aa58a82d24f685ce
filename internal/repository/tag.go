package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"moments/backend/internal/model"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create inserts a new tag, failing on duplicates. Used by the explicit
// tag-creation endpoint where "already exists" is an error, unlike publishing.
func (r *tagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.GetContext(ctx, &tag, `INSERT INTO tags (name) VALUES ($1) RETURNING id, name`, name)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, model.ErrTagExists
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}
	return &tag, nil
}

// HotTags returns the most used tags by post count. Ties are left to the
// database's ordering.
func (r *tagRepository) HotTags(ctx context.Context, limit int) ([]model.TagCount, error) {
	query := `
		SELECT t.name, COUNT(pt.post_id) AS count
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY count DESC
		LIMIT $1
	`
	var tags []model.TagCount
	if err := r.db.SelectContext(ctx, &tags, query, limit); err != nil {
		return nil, fmt.Errorf("list hot tags: %w", err)
	}
	if tags == nil {
		tags = []model.TagCount{}
	}
	return tags, nil
}

func (r *tagRepository) SearchNames(ctx context.Context, keyword string, limit int) ([]string, error) {
	var names []string
	err := r.db.SelectContext(ctx, &names,
		`SELECT name FROM tags WHERE name ILIKE $1 ORDER BY name LIMIT $2`,
		"%"+keyword+"%", limit)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("search tag names: %w", err)
	}
	return names, nil
}
