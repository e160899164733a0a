// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// SummaryCache stores computed client summaries per reference date.
// A miss is reported as (nil, false, nil).
type SummaryCache interface {
	// Get returns the cached summaries for date.
	Get(ctx context.Context, date valueobject.CalendarDate) ([]*entity.ClientSummary, bool, error)

	// Set stores the summaries for date.
	Set(ctx context.Context, date valueobject.CalendarDate, summaries []*entity.ClientSummary) error

	// InvalidateAll drops every cached date. Called after any transaction or client write.
	InvalidateAll(ctx context.Context) error
}
