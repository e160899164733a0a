package fake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// Clock is a fixed business clock.
type Clock struct {
	Date valueobject.CalendarDate
}

// Today returns the fixed date.
func (c Clock) Today() valueobject.CalendarDate { return c.Date }

// SummaryCache is an in-memory adapter.SummaryCache that counts invalidations.
type SummaryCache struct {
	mu            sync.Mutex
	entries       map[valueobject.CalendarDate][]*entity.ClientSummary
	Invalidations int
	Hits          int
}

// NewSummaryCache creates an empty SummaryCache.
func NewSummaryCache() *SummaryCache {
	return &SummaryCache{entries: make(map[valueobject.CalendarDate][]*entity.ClientSummary)}
}

// Get returns the cached summaries for date.
func (c *SummaryCache) Get(_ context.Context, date valueobject.CalendarDate) ([]*entity.ClientSummary, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[date]
	if ok {
		c.Hits++
	}
	return s, ok, nil
}

// Set stores summaries for date.
func (c *SummaryCache) Set(_ context.Context, date valueobject.CalendarDate, summaries []*entity.ClientSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[date] = summaries
	return nil
}

// InvalidateAll drops every entry.
func (c *SummaryCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[valueobject.CalendarDate][]*entity.ClientSummary)
	c.Invalidations++
	return nil
}

// PasswordService hashes by prefixing "hashed:".
type PasswordService struct {
	MinLength int
}

// HashPassword returns a reversible fake hash.
func (p PasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

// VerifyPassword compares against the fake hash.
func (p PasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// ValidatePasswordStrength enforces MinLength.
func (p PasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < p.MinLength {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// TokenService issues opaque tokens of the form "<kind>:<userID>:<n>".
type TokenService struct {
	mu          sync.Mutex
	n           int
	invalidated map[string]bool
	emails      map[uuid.UUID]string
}

// NewTokenService creates a TokenService.
func NewTokenService() *TokenService {
	return &TokenService{invalidated: make(map[string]bool), emails: make(map[uuid.UUID]string)}
}

// GenerateTokenPair issues a new pair.
func (t *TokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
	t.emails[userID] = email
	return &adapter.TokenPair{
		AccessToken:  fmt.Sprintf("access:%s:%d", userID, t.n),
		RefreshToken: fmt.Sprintf("refresh:%s:%d", userID, t.n),
	}, nil
}

func (t *TokenService) validate(token, kind string) (*adapter.TokenClaims, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != kind {
		return nil, domainerror.ErrInvalidToken
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, domainerror.ErrInvalidToken
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return &adapter.TokenClaims{UserID: id, Email: t.emails[id], ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// ValidateAccessToken parses an access token.
func (t *TokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return t.validate(token, "access")
}

// ValidateRefreshToken parses a refresh token.
func (t *TokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return t.validate(token, "refresh")
}

// RevokeRefreshToken marks token as invalidated.
func (t *TokenService) RevokeRefreshToken(_ context.Context, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.invalidated[token] = true
	return nil
}

// RevokeSessions marks every issued token of the user as invalidated.
func (t *TokenService) RevokeSessions(_ context.Context, userID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 1; i <= t.n; i++ {
		t.invalidated[fmt.Sprintf("refresh:%s:%d", userID, i)] = true
	}
	return nil
}

// IsRefreshTokenActive reports whether token has not been invalidated.
func (t *TokenService) IsRefreshTokenActive(_ context.Context, token string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.invalidated[token], nil
}

// PurgeExpiredTokens has nothing to purge; fake tokens never expire.
func (t *TokenService) PurgeExpiredTokens(context.Context) (int64, error) {
	return 0, nil
}

// ReportFormatter records the last report it rendered.
type ReportFormatter struct {
	Last *balance.PeriodReport
}

// Render returns a tiny document describing the report.
func (f *ReportFormatter) Render(report *balance.PeriodReport, format adapter.ReportFormat) (*adapter.Document, error) {
	f.Last = report
	ext := map[adapter.ReportFormat]string{
		adapter.ReportFormatText:     "txt",
		adapter.ReportFormatMarkdown: "md",
		adapter.ReportFormatPNG:      "png",
	}[format]
	return &adapter.Document{
		ContentType: "text/plain",
		Extension:   ext,
		Body:        []byte(fmt.Sprintf("%d rows", len(report.Rows))),
	}, nil
}
