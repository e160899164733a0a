// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated operator's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated operator's email.
	UserEmailKey ContextKey = "user_email"
)

// AuthMiddleware provides JWT authentication and role checks.
type AuthMiddleware struct {
	tokenService adapter.TokenService
	userRepo     adapter.UserRepository
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService, userRepo adapter.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// Authenticate rejects requests without a valid bearer access token and
// stores the operator's ID and email in the Gin context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		switch {
		case errors.Is(err, domainerror.ErrExpiredToken):
			abort(c, http.StatusUnauthorized, "Token has expired", string(domainerror.ErrCodeExpiredToken))
			return
		case err != nil:
			abort(c, http.StatusUnauthorized, "Invalid or expired token", string(domainerror.ErrCodeInvalidToken))
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)
		c.Next()
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>",
// aborting the request when the header is missing or malformed.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abort(c, http.StatusUnauthorized, "Authorization header is required", string(domainerror.ErrCodeMissingToken))
		return "", false
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		abort(c, http.StatusUnauthorized, "Invalid authorization header format", string(domainerror.ErrCodeInvalidToken))
		return "", false
	}
	if token = strings.TrimSpace(token); token == "" {
		abort(c, http.StatusUnauthorized, "Token is required", string(domainerror.ErrCodeMissingToken))
		return "", false
	}
	return token, true
}

// RequireAdmin returns a Gin middleware handler that only lets active administrators through.
// It must run after Authenticate.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "User not authenticated", string(domainerror.ErrCodeMissingToken))
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainerror.ErrUserNotFound) {
				abort(c, http.StatusForbidden, "Administrator access required", string(domainerror.ErrCodeAdminRequired))
				return
			}
			slog.Error("Failed to load user for role check", "user_id", userID, "error", err)
			abort(c, http.StatusInternalServerError, "An internal error occurred", "")
			return
		}

		if !user.IsAdmin || !user.CanLogin() {
			abort(c, http.StatusForbidden, "Administrator access required", string(domainerror.ErrCodeAdminRequired))
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get(string(UserEmailKey))
	if !exists {
		return "", false
	}
	emailStr, ok := email.(string)
	return emailStr, ok
}

func abort(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
