package balance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// PeriodRow is one client's activity over an export window.
type PeriodRow struct {
	ClientID     uuid.UUID
	ClientName   string
	TotalSent    decimal.Decimal
	TotalToPay   decimal.Decimal
	TotalPaid    decimal.Decimal
	PreviousDebt decimal.Decimal // Net owed from entries strictly before the window
	TotalDebt    decimal.Decimal // PreviousDebt + (TotalToPay - TotalPaid)
}

// PeriodReport is the aggregated view of an inclusive date window.
type PeriodReport struct {
	Start            valueobject.CalendarDate
	End              valueobject.CalendarDate
	Rows             []PeriodRow
	TotalSent        decimal.Decimal
	TotalToPay       decimal.Decimal
	TotalPaid        decimal.Decimal
	TotalDebt        decimal.Decimal
	TransactionCount int // Transactions dated inside the window
}

// ComputePeriodTotals aggregates transactions over [start, end]. Entries before
// start only feed PreviousDebt; entries after end are ignored. A client appears
// when it has at least one entry on or before end.
func ComputePeriodTotals(
	transactions []*entity.TransactionWithClient,
	start, end valueobject.CalendarDate,
) (*PeriodReport, error) {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil, domainerror.ErrInvalidDateRange
	}

	rows := make(map[uuid.UUID]*PeriodRow)
	report := &PeriodReport{
		Start:      start,
		End:        end,
		TotalSent:  decimal.Zero,
		TotalToPay: decimal.Zero,
		TotalPaid:  decimal.Zero,
		TotalDebt:  decimal.Zero,
	}

	for _, record := range transactions {
		if record == nil || record.Transaction == nil {
			return nil, Validate(nil)
		}
		if !hasResolvableClient(record) {
			continue
		}
		tx := record.Transaction
		if err := Validate(tx); err != nil {
			return nil, err
		}
		if tx.Date.After(end) {
			continue
		}

		row, ok := rows[tx.ClientID]
		if !ok {
			row = &PeriodRow{
				ClientID:     tx.ClientID,
				ClientName:   record.Client.Name,
				TotalSent:    decimal.Zero,
				TotalToPay:   decimal.Zero,
				TotalPaid:    decimal.Zero,
				PreviousDebt: decimal.Zero,
			}
			rows[tx.ClientID] = row
		}

		if tx.Date.Before(start) {
			row.PreviousDebt = row.PreviousDebt.Add(tx.NetDebt())
			continue
		}

		row.TotalSent = row.TotalSent.Add(tx.AmountSent)
		row.TotalToPay = row.TotalToPay.Add(tx.AmountToPay)
		row.TotalPaid = row.TotalPaid.Add(tx.AmountPaid)
		report.TransactionCount++
	}

	report.Rows = make([]PeriodRow, 0, len(rows))
	for _, row := range rows {
		row.TotalDebt = row.PreviousDebt.Add(row.TotalToPay.Sub(row.TotalPaid))
		report.TotalSent = report.TotalSent.Add(row.TotalSent)
		report.TotalToPay = report.TotalToPay.Add(row.TotalToPay)
		report.TotalPaid = report.TotalPaid.Add(row.TotalPaid)
		report.TotalDebt = report.TotalDebt.Add(row.TotalDebt)
		report.Rows = append(report.Rows, *row)
	}

	sortRows(report.Rows)
	return report, nil
}

func sortRows(rows []PeriodRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ClientName != rows[j].ClientName {
			return rows[i].ClientName < rows[j].ClientName
		}
		return rows[i].ClientID.String() < rows[j].ClientID.String()
	})
}
