package balance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// DateStatuses flags each date in [from, to] that carries transactions.
// A date has debt when some client's net for that day (to pay minus paid) is
// positive, and an advance when some client's net is negative. Dates without
// transactions are absent from the result.
func DateStatuses(
	transactions []*entity.TransactionWithClient,
	from, to valueobject.CalendarDate,
) (map[valueobject.CalendarDate]entity.DateStatus, error) {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, domainerror.ErrInvalidDateRange
	}

	type dayClient struct {
		date     valueobject.CalendarDate
		clientID uuid.UUID
	}
	nets := make(map[dayClient]decimal.Decimal)
	statuses := make(map[valueobject.CalendarDate]entity.DateStatus)

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
		if tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}

		key := dayClient{date: tx.Date, clientID: tx.ClientID}
		nets[key] = nets[key].Add(tx.NetDebt())
		if _, ok := statuses[tx.Date]; !ok {
			statuses[tx.Date] = entity.DateStatus{}
		}
	}

	for key, net := range nets {
		status := statuses[key.date]
		if net.IsPositive() {
			status.HasDebt = true
		}
		if net.IsNegative() {
			status.HasAdvance = true
		}
		statuses[key.date] = status
	}

	return statuses, nil
}
