// Package client contains client management use cases.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

const (
	// MaxNameLength is the maximum allowed length for client names.
	MaxNameLength = 100
	// SearchLimit caps the number of clients returned by a search.
	SearchLimit = 20
)

// normalizeName trims the name and checks length and uniqueness among active clients.
func normalizeName(
	ctx context.Context,
	clientRepo adapter.ClientRepository,
	name string,
	excludeID *uuid.UUID,
) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewClientError(
			domainerror.ErrCodeClientNameRequired,
			"client name is required",
			domainerror.ErrClientNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", domainerror.NewClientError(
			domainerror.ErrCodeClientNameTooLong,
			fmt.Sprintf("client name must not exceed %d characters", MaxNameLength),
			domainerror.ErrClientNameTooLong,
		)
	}

	exists, err := clientRepo.ExistsActiveByName(ctx, name, excludeID)
	if err != nil {
		return "", fmt.Errorf("failed to check client name: %w", err)
	}
	if exists {
		return "", domainerror.NewClientError(
			domainerror.ErrCodeClientNameExists,
			"a client with this name already exists",
			domainerror.ErrClientNameExists,
		)
	}

	return name, nil
}

func findClient(ctx context.Context, clientRepo adapter.ClientRepository, id uuid.UUID) (*entity.Client, error) {
	client, err := clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrClientNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	if !client.Status.IsActive() {
		return nil, notFound()
	}
	return client, nil
}

func notFound() error {
	return domainerror.NewClientError(
		domainerror.ErrCodeClientNotFound,
		"client not found",
		domainerror.ErrClientNotFound,
	)
}

func invalidateSummaries(ctx context.Context, cache adapter.SummaryCache) {
	if err := cache.InvalidateAll(ctx); err != nil {
		slog.Warn("Failed to invalidate summary cache", "error", err)
	}
}
