package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"moments/backend/internal/config"
	"moments/backend/internal/model"
	"moments/backend/internal/repository"
	"moments/backend/internal/session"
)

// AccessClaims is the decoded payload of a verified access token.
type AccessClaims struct {
	UserID    int64
	TokenID   string
	IsStaff   bool
	ExpiresAt time.Time
}

// AuthService issues and verifies the token pair: short-lived JWT access
// tokens plus opaque, hashed, rotating refresh tokens.
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	tokens   repository.RefreshTokenRepository
	denylist session.Denylist
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, tokens repository.RefreshTokenRepository, denylist session.Denylist) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, tokens: tokens, denylist: denylist}
}

// GenerateTokenPair mints an access token and persists a new refresh token
// for the user. The raw refresh token is returned to the caller and only its
// hash is stored.
func (s *AuthService) GenerateTokenPair(ctx context.Context, user *model.User, deviceInfo, ipAddress *string) (*model.TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	rawRefresh, err := generateOpaqueToken()
	if err != nil {
		return nil, err
	}

	refresh := &model.RefreshToken{
		UserID:     user.ID,
		TokenHash:  hashToken(rawRefresh),
		DeviceInfo: deviceInfo,
		IPAddress:  ipAddress,
		ExpiresAt:  time.Now().Add(time.Duration(s.cfg.RefreshTokenMaxAge) * time.Second),
	}
	if err := s.tokens.Create(ctx, refresh); err != nil {
		return nil, err
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		ExpiresIn:    s.cfg.AccessTokenMaxAge,
	}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Presenting an already-revoked token is treated as theft
// evidence and revokes every session the user has.
func (s *AuthService) Refresh(ctx context.Context, rawToken string, deviceInfo, ipAddress *string) (*model.TokenPair, *model.User, error) {
	token, err := s.tokens.FindByTokenHash(ctx, hashToken(rawToken))
	if err != nil {
		return nil, nil, err
	}

	if token.IsRevoked() {
		log.Printf("[AuthService] refresh token reuse detected for user %d, revoking all sessions", token.UserID)
		if err := s.tokens.RevokeAllForUser(ctx, token.UserID); err != nil {
			return nil, nil, err
		}
		return nil, nil, model.ErrRefreshTokenReused
	}
	if token.IsExpired() {
		return nil, nil, model.ErrRefreshTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, model.ErrUserDisabled
	}

	pair, err := s.GenerateTokenPair(ctx, user, deviceInfo, ipAddress)
	if err != nil {
		return nil, nil, err
	}

	replacedBy := hashToken(pair.RefreshToken)
	if err := s.tokens.Revoke(ctx, token.ID, &replacedBy); err != nil {
		return nil, nil, err
	}

	return pair, user, nil
}

// Logout revokes the presented refresh token and denylists the live access
// token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, rawRefreshToken string, access *AccessClaims) error {
	if rawRefreshToken != "" {
		token, err := s.tokens.FindByTokenHash(ctx, hashToken(rawRefreshToken))
		if err == nil {
			if err := s.tokens.Revoke(ctx, token.ID, nil); err != nil {
				return err
			}
		} else if err != model.ErrRefreshTokenNotFound {
			return err
		}
	}

	if access != nil {
		ttl := time.Until(access.ExpiresAt)
		if err := s.denylist.Revoke(ctx, access.TokenID, ttl); err != nil {
			return err
		}
	}
	return nil
}

// RevokeAllSessions revokes every refresh token the user has. Used after
// password changes.
func (s *AuthService) RevokeAllSessions(ctx context.Context, userID int64) error {
	return s.tokens.RevokeAllForUser(ctx, userID)
}

// ParseAccessToken verifies the signature and expiry of an access token and
// returns its claims. Denylist checking is the middleware's job.
func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	isStaff, _ := claims["is_staff"].(bool)
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &AccessClaims{
		UserID:    int64(userID),
		TokenID:   tokenID,
		IsStaff:   isStaff,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

func (s *AuthService) generateAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"jti":      uuid.New().String(),
		"is_staff": user.IsStaff,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(s.cfg.AccessTokenMaxAge) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func generateOpaqueToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
