package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"moments/backend/internal/model"
)

type searchHistoryRepository struct {
	db *sqlx.DB
}

func NewSearchHistoryRepository(db *sqlx.DB) SearchHistoryRepository {
	return &searchHistoryRepository{db: db}
}

// Save records a search. Repeating the same (keyword, tag, date) triple bumps
// created_at instead of stacking duplicate rows, so the recent list stays
// deduplicated.
func (r *searchHistoryRepository) Save(ctx context.Context, userID int64, keyword, tag string, date time.Time) error {
	query := `
		INSERT INTO search_histories (user_id, keyword, tag, date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, keyword, tag, date) DO UPDATE SET created_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, keyword, tag, date); err != nil {
		return fmt.Errorf("save search history: %w", err)
	}
	return nil
}

func (r *searchHistoryRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]model.SearchHistory, error) {
	query := `
		SELECT id, user_id, keyword, tag, date, created_at
		FROM search_histories
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var entries []model.SearchHistory
	if err := r.db.SelectContext(ctx, &entries, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	if entries == nil {
		entries = []model.SearchHistory{}
	}
	return entries, nil
}

func (r *searchHistoryRepository) Clear(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM search_histories WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear search history: %w", err)
	}
	return nil
}

// SearchKeywords returns distinct previously searched keywords containing
// keyword, across all users. Feeds the suggestion endpoint.
func (r *searchHistoryRepository) SearchKeywords(ctx context.Context, keyword string, limit int) ([]string, error) {
	query := `
		SELECT DISTINCT keyword
		FROM search_histories
		WHERE keyword <> '' AND keyword ILIKE $1
		ORDER BY keyword
		LIMIT $2
	`
	var keywords []string
	err := r.db.SelectContext(ctx, &keywords, query, "%"+keyword+"%", limit)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("search keywords: %w", err)
	}
	return keywords, nil
}
