package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"moments/backend/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// userRow is a user joined with its profile columns.
type userRow struct {
	model.User
	Avatar    string `db:"avatar"`
	Signature string `db:"signature"`
}

func (r userRow) toUser() *model.User {
	u := r.User
	u.Profile = &model.Profile{UserID: u.ID, Avatar: r.Avatar, Signature: r.Signature}
	return &u
}

const userSelectColumns = `
	u.id, u.username, u.email, u.password_hashed, u.is_staff, u.is_active,
	u.created_at, u.updated_at, pr.avatar, pr.signature
`

// Create inserts a new user and their profile row in one transaction.
// Profiles exist from account creation on; there is no lazy backfill path.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (username, email, password_hashed, is_staff, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW(), NOW())
		RETURNING id, is_active, created_at, updated_at
	`
	row := tx.QueryRowxContext(ctx, query, u.Username, u.Email, u.PasswordHashed, u.IsStaff)
	if err := row.Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO profiles (user_id, avatar, signature) VALUES ($1, '', '')`, u.ID)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	u.Profile = &model.Profile{UserID: u.ID}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		JOIN profiles pr ON pr.user_id = u.id
		WHERE u.id = $1
	`

	var row userRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return row.toUser(), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		JOIN profiles pr ON pr.user_id = u.id
		WHERE u.username = $1
	`

	var row userRow
	err := r.db.GetContext(ctx, &row, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return row.toUser(), nil
}

// SearchByUsername returns users whose username contains keyword, case-insensitive.
func (r *userRepository) SearchByUsername(ctx context.Context, keyword string, limit int) ([]model.User, error) {
	query := `
		SELECT ` + userSelectColumns + `
		FROM users u
		JOIN profiles pr ON pr.user_id = u.id
		WHERE u.username ILIKE $1
		ORDER BY u.id
		LIMIT $2
	`

	var rows []userRow
	err := r.db.SelectContext(ctx, &rows, query, "%"+keyword+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *row.toUser())
	}
	return users, nil
}

// UpdateMe applies a partial update to the user row and profile row.
func (r *userRepository) UpdateMe(ctx context.Context, userID int64, req model.UpdateMeRequest) (*model.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sets []string
	var args []interface{}
	if req.Username != nil {
		args = append(args, *req.Username)
		sets = append(sets, fmt.Sprintf("username = $%d", len(args)))
	}
	if req.Email != nil {
		args = append(args, *req.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if len(sets) > 0 {
		args = append(args, userID)
		query := fmt.Sprintf("UPDATE users SET %s, updated_at = NOW() WHERE id = $%d",
			strings.Join(sets, ", "), len(args))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return nil, model.ErrUsernameExists
			}
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	if req.Avatar != nil || req.Signature != nil {
		var psets []string
		var pargs []interface{}
		if req.Avatar != nil {
			pargs = append(pargs, *req.Avatar)
			psets = append(psets, fmt.Sprintf("avatar = $%d", len(pargs)))
		}
		if req.Signature != nil {
			pargs = append(pargs, *req.Signature)
			psets = append(psets, fmt.Sprintf("signature = $%d", len(pargs)))
		}
		pargs = append(pargs, userID)
		query := fmt.Sprintf("UPDATE profiles SET %s WHERE user_id = $%d",
			strings.Join(psets, ", "), len(pargs))
		if _, err := tx.ExecContext(ctx, query, pargs...); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return r.GetByID(ctx, userID)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHashed string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hashed = $1, updated_at = NOW() WHERE id = $2`, passwordHashed, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, userID)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// AdminList returns users matching search over username or email, newest first.
func (r *userRepository) AdminList(ctx context.Context, search string, page, pageSize int) ([]model.User, int, error) {
	where := ""
	var args []interface{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where = "WHERE u.username ILIKE $1 OR u.email ILIKE $1"
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users u %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
		SELECT `+userSelectColumns+`
		FROM users u
		JOIN profiles pr ON pr.user_id = u.id
		%s
		ORDER BY u.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, *row.toUser())
	}
	return users, total, nil
}
