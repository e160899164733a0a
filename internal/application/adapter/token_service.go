package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is the access/refresh pair handed to an operator at sign-in.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identifies the operator behind a verified token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies operator session tokens.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// RevokeRefreshToken ends the session bound to one refresh token.
	RevokeRefreshToken(ctx context.Context, token string) error

	// RevokeSessions ends every session of an operator, used when the
	// account is blocked, deactivated or gets a new password.
	RevokeSessions(ctx context.Context, userID uuid.UUID) error

	// IsRefreshTokenActive reports whether token is stored, unrevoked and unexpired.
	IsRefreshTokenActive(ctx context.Context, token string) (bool, error)

	// PurgeExpiredTokens drops stored refresh tokens past their expiry.
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

// RefreshTokenStore persists issued refresh tokens so they can be revoked.
type RefreshTokenStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	IsActive(ctx context.Context, token string, now time.Time) (bool, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
