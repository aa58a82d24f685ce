package model

import (
	"errors"
	"time"
)

// RefreshToken is a persisted, hashed refresh token. Raw tokens are never stored.
type RefreshToken struct {
	ID         string     `db:"id"`
	UserID     int64      `db:"user_id"`
	TokenHash  string     `db:"token_hash"`
	DeviceInfo *string    `db:"device_info"`
	IPAddress  *string    `db:"ip_address"`
	ExpiresAt  time.Time  `db:"expires_at"`
	RevokedAt  *time.Time `db:"revoked_at"`
	ReplacedBy *string    `db:"replaced_by"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// TokenPair is returned to the client on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// Error codes surfaced to clients alongside 401 responses so they can
// distinguish "refresh me" from "log in again".
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeTokenRevoked = "TOKEN_REVOKED"
)

var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrRefreshTokenReused   = errors.New("refresh token reuse detected")
)
