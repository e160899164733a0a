package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/application/usecase/fake"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

var (
	start = valueobject.NewCalendarDate(2024, time.February, 1)
	end   = valueobject.NewCalendarDate(2024, time.February, 29)
)

func newUseCase(store *fake.Store, formatter *fake.ReportFormatter, hash string) *ExportSummaryUseCase {
	return NewExportSummaryUseCase(store.Transactions(), fake.PasswordService{}, formatter, hash, adapter.ReportFormatText)
}

func TestExportSummaryUseCase(t *testing.T) {
	ctx := context.Background()
	store := fake.NewStore()
	client := store.AddClient("Diallo")
	store.AddTransaction(entity.NewSendTransaction(client.ID, start.AddDays(-3), fake.Amount(700), fake.Amount(700), "", "", nil))
	store.AddTransaction(entity.NewSendTransaction(client.ID, end, fake.Amount(300), fake.Amount(300), "", "", nil))

	t.Run("renders recap with dated file name", func(t *testing.T) {
		formatter := &fake.ReportFormatter{}
		out, err := newUseCase(store, formatter, "hashed:secret").Execute(ctx, ExportSummaryInput{
			Start:    start,
			End:      end,
			Format:   "Markdown",
			Password: "secret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.FileName != "recap_01-02-2024_29-02-2024.md" {
			t.Errorf("unexpected file name %s", out.FileName)
		}
		if !formatter.Last.TotalDebt.Equal(fake.Amount(1000)) {
			t.Errorf("expected total debt including previous debt, got %s", formatter.Last.TotalDebt)
		}
	})

	tests := []struct {
		name    string
		hash    string
		input   ExportSummaryInput
		wantErr error
	}{
		{name: "not configured", hash: "", input: ExportSummaryInput{Start: start, End: end}, wantErr: domainerror.ErrExportNotConfigured},
		{name: "wrong password", hash: "hashed:secret", input: ExportSummaryInput{Start: start, End: end, Password: "guess"}, wantErr: domainerror.ErrExportPasswordMismatch},
		{name: "unknown format", hash: "hashed:secret", input: ExportSummaryInput{Start: start, End: end, Password: "secret", Format: "pdf"}, wantErr: domainerror.ErrUnsupportedExportFormat},
		{name: "inverted window", hash: "hashed:secret", input: ExportSummaryInput{Start: end, End: start, Password: "secret"}, wantErr: domainerror.ErrInvalidDateRange},
		{name: "empty window", hash: "hashed:secret", input: ExportSummaryInput{Start: end.AddDays(1), End: end.AddDays(10), Password: "secret"}, wantErr: domainerror.ErrNoTransactionsInRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(store, &fake.ReportFormatter{}, tt.hash).Execute(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
