// Package export contains the period recap export use case.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// fileDateLayout is the dd-MM-yyyy layout used in export file names.
const fileDateLayout = "02-01-2006"

// ExportSummaryInput represents the input for a period recap export.
type ExportSummaryInput struct {
	Start       valueobject.CalendarDate
	End         valueobject.CalendarDate
	Format      string // Empty uses the configured default
	Password    string
	RequestedBy uuid.UUID
}

// ExportSummaryOutput represents the rendered recap.
type ExportSummaryOutput struct {
	FileName string
	Document *adapter.Document
	Report   *balance.PeriodReport
}

// ExportSummaryUseCase renders the per-client recap of an inclusive date window.
// The export is protected by a shared password whose bcrypt hash comes from configuration.
type ExportSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	passwordService adapter.PasswordService
	formatter       adapter.ReportFormatter
	passwordHash    string
	defaultFormat   adapter.ReportFormat
}

// NewExportSummaryUseCase creates a new ExportSummaryUseCase instance.
func NewExportSummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	passwordService adapter.PasswordService,
	formatter adapter.ReportFormatter,
	passwordHash string,
	defaultFormat adapter.ReportFormat,
) *ExportSummaryUseCase {
	return &ExportSummaryUseCase{
		transactionRepo: transactionRepo,
		passwordService: passwordService,
		formatter:       formatter,
		passwordHash:    passwordHash,
		defaultFormat:   defaultFormat,
	}
}

// Execute renders the recap.
func (uc *ExportSummaryUseCase) Execute(ctx context.Context, input ExportSummaryInput) (*ExportSummaryOutput, error) {
	if uc.passwordHash == "" {
		return nil, domainerror.NewExportError(
			domainerror.ErrCodeExportNotConfigured,
			"export password is not configured",
			domainerror.ErrExportNotConfigured,
		)
	}
	if err := uc.passwordService.VerifyPassword(uc.passwordHash, input.Password); err != nil {
		slog.Warn("Export password rejected", "user_id", input.RequestedBy)
		return nil, domainerror.NewExportError(
			domainerror.ErrCodeExportPasswordMismatch,
			"incorrect export password",
			domainerror.ErrExportPasswordMismatch,
		)
	}

	format := uc.defaultFormat
	if f := strings.ToLower(strings.TrimSpace(input.Format)); f != "" {
		format = adapter.ReportFormat(f)
	}
	if !format.IsValid() {
		return nil, domainerror.NewExportError(
			domainerror.ErrCodeUnsupportedFormat,
			"format must be 'text', 'markdown' or 'png'",
			domainerror.ErrUnsupportedExportFormat,
		)
	}

	if input.Start.IsZero() || input.End.IsZero() || input.Start.After(input.End) {
		return nil, domainerror.NewExportError(
			domainerror.ErrCodeInvalidExportRange,
			"start date must be on or before end date",
			domainerror.ErrInvalidDateRange,
		)
	}

	transactions, err := uc.transactionRepo.FindWithClientsUntil(ctx, input.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	report, err := balance.ComputePeriodTotals(transactions, input.Start, input.End)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidDateRange) {
			return nil, domainerror.NewExportError(
				domainerror.ErrCodeInvalidExportRange,
				"start date must be on or before end date",
				err,
			)
		}
		return nil, fmt.Errorf("failed to compute period totals: %w", err)
	}

	if report.TransactionCount == 0 {
		return nil, domainerror.NewExportError(
			domainerror.ErrCodeNoTransactionsInRange,
			"no transactions found in the selected period",
			domainerror.ErrNoTransactionsInRange,
		)
	}

	document, err := uc.formatter.Render(report, format)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	fileName := fmt.Sprintf("recap_%s_%s.%s",
		input.Start.Format(fileDateLayout),
		input.End.Format(fileDateLayout),
		document.Extension,
	)

	slog.Info("Recap exported",
		"user_id", input.RequestedBy,
		"file", fileName,
		"clients", len(report.Rows),
	)

	return &ExportSummaryOutput{FileName: fileName, Document: document, Report: report}, nil
}
