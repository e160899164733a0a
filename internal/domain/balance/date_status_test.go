package balance

import (
	"errors"
	"testing"

	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

func TestDateStatuses(t *testing.T) {
	from, to := refDate.AddDays(-5), refDate
	debtor, creditor := newClient("Debtor"), newClient("Creditor")

	statuses, err := DateStatuses([]*entity.TransactionWithClient{
		record(debtor, refDate, 1000, 0),
		record(creditor, refDate, 0, 300),
		record(debtor, refDate.AddDays(-1), 500, 500),
		record(debtor, refDate.AddDays(-2), 200, 0),
		record(creditor, refDate.AddDays(-2), 0, 50),
		record(creditor, refDate.AddDays(-2), 100, 0),
		record(debtor, from.AddDays(-1), 700, 0),
	}, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		offset      int
		wantPresent bool
		want        entity.DateStatus
	}{
		{name: "debt and advance on same day", offset: 0, wantPresent: true, want: entity.DateStatus{HasDebt: true, HasAdvance: true}},
		{name: "settled day", offset: -1, wantPresent: true, want: entity.DateStatus{}},
		{name: "nets per client", offset: -2, wantPresent: true, want: entity.DateStatus{HasDebt: true}},
		{name: "quiet day", offset: -3, wantPresent: false},
		{name: "outside range", offset: -6, wantPresent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := statuses[refDate.AddDays(tt.offset)]
			if ok != tt.wantPresent {
				t.Fatalf("expected present=%v, got %v", tt.wantPresent, ok)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDateStatuses_InvalidRange(t *testing.T) {
	if _, err := DateStatuses(nil, refDate, refDate.AddDays(-1)); !errors.Is(err, domainerror.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}
