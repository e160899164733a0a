package balance

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// SortOrder selects how summaries are ordered for display.
type SortOrder string

const (
	SortByName     SortOrder = "name"
	SortByDebtDesc SortOrder = "debt"
)

// ParseSortOrder maps a query value to a SortOrder, defaulting to SortByName.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == SortByDebtDesc {
		return SortByDebtDesc
	}
	return SortByName
}

// SortSummaries orders summaries in place. Ties fall back to name, then id.
func SortSummaries(summaries []*entity.ClientSummary, order SortOrder) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if order == SortByDebtDesc {
			if c := a.TotalDebt.Cmp(b.TotalDebt); c != 0 {
				return c > 0
			}
		}
		if a.ClientName != b.ClientName {
			return a.ClientName < b.ClientName
		}
		return a.ClientID.String() < b.ClientID.String()
	})
}

// FilterByName keeps summaries whose client name contains term, ignoring case.
// An empty term keeps everything.
func FilterByName(summaries []*entity.ClientSummary, term string) []*entity.ClientSummary {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return summaries
	}

	filtered := make([]*entity.ClientSummary, 0, len(summaries))
	for _, s := range summaries {
		if strings.Contains(strings.ToLower(s.ClientName), term) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Totals sums positive total debts and negative total debts (advances) separately.
func Totals(summaries []*entity.ClientSummary) entity.SummaryTotals {
	totals := entity.SummaryTotals{
		TotalDebts:    decimal.Zero,
		TotalAdvances: decimal.Zero,
		ClientCount:   len(summaries),
	}
	for _, s := range summaries {
		switch {
		case s.HasDebt():
			totals.TotalDebts = totals.TotalDebts.Add(s.TotalDebt)
		case s.HasAdvance():
			totals.TotalAdvances = totals.TotalAdvances.Add(s.TotalDebt)
		}
	}
	return totals
}

// GroupByDate buckets transactions by calendar date, newest date first.
// Input order is preserved inside each bucket.
func GroupByDate(transactions []*entity.TransactionWithClient) []entity.TransactionsByDate {
	index := make(map[valueobject.CalendarDate]int)
	groups := make([]entity.TransactionsByDate, 0)

	for _, record := range transactions {
		if record == nil || record.Transaction == nil {
			continue
		}
		date := record.Transaction.Date
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, entity.TransactionsByDate{Date: date})
		}
		groups[i].Transactions = append(groups[i].Transactions, record)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
	return groups
}
