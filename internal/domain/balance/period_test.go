package balance

import (
	"errors"
	"testing"

	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
)

func TestComputePeriodTotals(t *testing.T) {
	start, end := refDate.AddDays(-7), refDate
	diallo, ba, late := newClient("Diallo"), newClient("Ba"), newClient("Late")

	input := []*entity.TransactionWithClient{
		record(diallo, start.AddDays(-1), 2000, 500), // before window
		record(diallo, start, 1000, 0),               // first day, inclusive
		record(diallo, end, 0, 700),                  // last day, inclusive
		record(diallo, end.AddDays(1), 9000, 0),      // after window
		record(ba, start.AddDays(2), 400, 400),
		record(late, end.AddDays(5), 100, 0),
	}

	report, err := ComputePeriodTotals(input, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}
	if report.Rows[0].ClientName != "Ba" || report.Rows[1].ClientName != "Diallo" {
		t.Errorf("expected rows sorted by name, got %s, %s", report.Rows[0].ClientName, report.Rows[1].ClientName)
	}

	d := report.Rows[1]
	assertAmount(t, "previousDebt", d.PreviousDebt, 1500)
	assertAmount(t, "totalToPay", d.TotalToPay, 1000)
	assertAmount(t, "totalPaid", d.TotalPaid, 700)
	assertAmount(t, "totalDebt", d.TotalDebt, 1800)

	assertAmount(t, "grand totalToPay", report.TotalToPay, 1400)
	assertAmount(t, "grand totalPaid", report.TotalPaid, 1100)
	assertAmount(t, "grand totalDebt", report.TotalDebt, 1800)
	if report.TransactionCount != 3 {
		t.Errorf("expected 3 transactions in window, got %d", report.TransactionCount)
	}
}

func TestComputePeriodTotals_InvalidWindow(t *testing.T) {
	_, err := ComputePeriodTotals(nil, refDate, refDate.AddDays(-1))
	if !errors.Is(err, domainerror.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestComputePeriodTotals_SingleDay(t *testing.T) {
	client := newClient("Kane")
	report, err := ComputePeriodTotals([]*entity.TransactionWithClient{
		record(client, refDate, 250, 50),
	}, refDate, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, "totalDebt", report.TotalDebt, 200)
}
