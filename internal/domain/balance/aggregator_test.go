package balance

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

var refDate = valueobject.NewCalendarDate(2024, time.March, 15)

func newClient(name string) *entity.Client {
	return &entity.Client{ID: uuid.New(), Name: name, Status: entity.ActiveStatus()}
}

func record(client *entity.Client, date valueobject.CalendarDate, toPay, paid int64) *entity.TransactionWithClient {
	return &entity.TransactionWithClient{
		Transaction: &entity.Transaction{
			ID:          uuid.New(),
			ClientID:    client.ID,
			Date:        date,
			AmountSent:  decimal.NewFromInt(toPay),
			AmountToPay: decimal.NewFromInt(toPay),
			AmountPaid:  decimal.NewFromInt(paid),
		},
		Client: client,
	}
}

func assertAmount(t *testing.T, field string, got decimal.Decimal, want int64) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("expected %s = %d, got %s", field, want, got)
	}
}

func TestComputeSummaries_Scenarios(t *testing.T) {
	t.Run("previous debt, today activity and running total", func(t *testing.T) {
		amadou := newClient("Amadou")
		input := []*entity.TransactionWithClient{
			record(amadou, refDate.AddDays(-2), 5000, 0),
			record(amadou, refDate.AddDays(-1), 0, 2000),
			record(amadou, refDate, 1000, 500),
		}

		summaries, err := ComputeSummaries(input, refDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}

		s := summaries[0]
		assertAmount(t, "previousDebt", s.PreviousDebt, 3000)
		assertAmount(t, "todaySent", s.TodaySent, 1000)
		assertAmount(t, "todayPaid", s.TodayPaid, 500)
		assertAmount(t, "totalDebt", s.TotalDebt, 3500)
		if len(s.Transactions) != 3 {
			t.Errorf("expected 3 transactions, got %d", len(s.Transactions))
		}
	})

	t.Run("pure advance payment yields negative total", func(t *testing.T) {
		amadou := newClient("Amadou")
		summaries, err := ComputeSummaries([]*entity.TransactionWithClient{
			record(amadou, refDate, 0, 200),
		}, refDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		s := summaries[0]
		assertAmount(t, "todaySent", s.TodaySent, 0)
		assertAmount(t, "todayPaid", s.TodayPaid, 200)
		assertAmount(t, "previousDebt", s.PreviousDebt, 0)
		assertAmount(t, "totalDebt", s.TotalDebt, -200)
		if !s.HasAdvance() {
			t.Error("expected summary to be an advance")
		}
	})

	t.Run("record with unnamed client is excluded", func(t *testing.T) {
		named := newClient("Fatou")
		unnamed := &entity.Client{ID: uuid.New()}
		orphan := record(named, refDate, 100, 0)
		orphan.Client = nil

		summaries, err := ComputeSummaries([]*entity.TransactionWithClient{
			record(unnamed, refDate, 700, 0),
			orphan,
			record(named, refDate, 300, 0),
		}, refDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
		if summaries[0].ClientName != "Fatou" {
			t.Errorf("expected Fatou, got %q", summaries[0].ClientName)
		}
		assertAmount(t, "todaySent", summaries[0].TodaySent, 300)
	})

	t.Run("same date same client accumulates into one bucket", func(t *testing.T) {
		moussa := newClient("Moussa")
		summaries, err := ComputeSummaries([]*entity.TransactionWithClient{
			record(moussa, refDate, 1000, 0),
			record(moussa, refDate, 2500, 400),
		}, refDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
		assertAmount(t, "todaySent", summaries[0].TodaySent, 3500)
		assertAmount(t, "todayPaid", summaries[0].TodayPaid, 400)
		assertAmount(t, "totalDebt", summaries[0].TotalDebt, 3100)
	})
}

func TestComputeSummaries_TodaySentUsesAmountToPay(t *testing.T) {
	client := newClient("Awa")
	rec := record(client, refDate, 0, 0)
	rec.Transaction.AmountSent = decimal.NewFromInt(10000)
	rec.Transaction.AmountToPay = decimal.NewFromInt(10500)

	summaries, err := ComputeSummaries([]*entity.TransactionWithClient{rec}, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, "todaySent", summaries[0].TodaySent, 10500)
}

func TestComputeSummaries_EmptyInput(t *testing.T) {
	summaries, err := ComputeSummaries(nil, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected no summaries, got %d", len(summaries))
	}
}

func TestComputeSummaries_ZeroSumIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		client := newClient("Client")
		input := make([]*entity.TransactionWithClient, 0)
		for n := rng.Intn(5) + 1; n > 0; n-- {
			input = append(input, record(client, refDate, rng.Int63n(100000), rng.Int63n(100000)))
		}

		summaries, err := ComputeSummaries(input, refDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := summaries[0]
		if !s.PreviousDebt.IsZero() {
			t.Fatalf("expected zero previous debt, got %s", s.PreviousDebt)
		}
		if !s.TotalDebt.Equal(s.TodaySent.Sub(s.TodayPaid)) {
			t.Fatalf("expected totalDebt %s, got %s", s.TodaySent.Sub(s.TodayPaid), s.TotalDebt)
		}
	}
}

func TestComputeSummaries_Additivity(t *testing.T) {
	alpha, beta := newClient("Alpha"), newClient("Beta")
	setA := []*entity.TransactionWithClient{
		record(alpha, refDate.AddDays(-3), 4000, 1000),
		record(alpha, refDate, 500, 0),
	}
	setB := []*entity.TransactionWithClient{
		record(beta, refDate.AddDays(-1), 0, 700),
		record(beta, refDate.AddDays(2), 9000, 0),
	}

	union, err := ComputeSummaries(append(append([]*entity.TransactionWithClient{}, setA...), setB...), refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	onlyA, _ := ComputeSummaries(setA, refDate)
	onlyB, _ := ComputeSummaries(setB, refDate)

	separate := map[uuid.UUID]*entity.ClientSummary{}
	for _, s := range append(onlyA, onlyB...) {
		separate[s.ClientID] = s
	}
	if len(union) != len(separate) {
		t.Fatalf("expected %d summaries, got %d", len(separate), len(union))
	}
	for _, s := range union {
		other, ok := separate[s.ClientID]
		if !ok {
			t.Fatalf("unexpected client %s in union", s.ClientName)
		}
		if !s.TotalDebt.Equal(other.TotalDebt) || !s.PreviousDebt.Equal(other.PreviousDebt) ||
			!s.TodaySent.Equal(other.TodaySent) || !s.TodayPaid.Equal(other.TodayPaid) {
			t.Errorf("summary for %s differs between union and separate computation", s.ClientName)
		}
	}
}

func TestComputeSummaries_DateBoundaries(t *testing.T) {
	client := newClient("Ibrahima")

	tests := []struct {
		name         string
		date         valueobject.CalendarDate
		wantPrevious int64
		wantToday    int64
		wantTotal    int64
	}{
		{name: "on reference date", date: refDate, wantPrevious: 0, wantToday: 800, wantTotal: 800},
		{name: "day before", date: refDate.AddDays(-1), wantPrevious: 800, wantToday: 0, wantTotal: 800},
		{name: "day after", date: refDate.AddDays(1), wantPrevious: 0, wantToday: 0, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries, err := ComputeSummaries([]*entity.TransactionWithClient{
				record(client, tt.date, 800, 0),
			}, refDate)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			s := summaries[0]
			assertAmount(t, "previousDebt", s.PreviousDebt, tt.wantPrevious)
			assertAmount(t, "todaySent", s.TodaySent, tt.wantToday)
			assertAmount(t, "totalDebt", s.TotalDebt, tt.wantTotal)
			if len(s.Transactions) != 1 {
				t.Errorf("expected transaction to remain in summary, got %d", len(s.Transactions))
			}
		})
	}
}

func TestComputeSummaries_PermutationDeterminism(t *testing.T) {
	clients := []*entity.Client{newClient("Zeinab"), newClient("Amina"), newClient("Ousmane")}
	input := make([]*entity.TransactionWithClient, 0)
	for i, c := range clients {
		input = append(input,
			record(c, refDate.AddDays(-i-1), int64(1000*(i+1)), 0),
			record(c, refDate, 250, int64(100*i)),
		)
	}

	baseline, err := ComputeSummaries(input, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]*entity.TransactionWithClient{}, input...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := ComputeSummaries(shuffled, refDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertSameSummaries(t, baseline, got)
	}

	if baseline[0].ClientName != "Amina" || baseline[2].ClientName != "Zeinab" {
		t.Errorf("expected summaries sorted by name, got %s..%s", baseline[0].ClientName, baseline[2].ClientName)
	}
}

func TestComputeSummaries_NameFromFirstRecord(t *testing.T) {
	client := newClient("Mariama")
	renamed := &entity.Client{ID: client.ID, Name: "Mariama Diallo"}
	second := record(renamed, refDate, 10, 0)

	summaries, err := ComputeSummaries([]*entity.TransactionWithClient{
		record(client, refDate, 10, 0),
		second,
	}, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ClientName != "Mariama" {
		t.Errorf("expected single summary named Mariama, got %+v", summaries)
	}
}

func TestComputeSummaries_MalformedRecords(t *testing.T) {
	client := newClient("Cheikh")

	tests := []struct {
		name      string
		mutate    func(r *entity.TransactionWithClient)
		wantField string
	}{
		{name: "missing id", mutate: func(r *entity.TransactionWithClient) { r.Transaction.ID = uuid.Nil }, wantField: "id"},
		{name: "missing date", mutate: func(r *entity.TransactionWithClient) { r.Transaction.Date = valueobject.CalendarDate{} }, wantField: "date"},
		{name: "negative amount to pay", mutate: func(r *entity.TransactionWithClient) {
			r.Transaction.AmountToPay = decimal.NewFromInt(-5)
		}, wantField: "amount_to_pay"},
		{name: "negative amount paid", mutate: func(r *entity.TransactionWithClient) {
			r.Transaction.AmountPaid = decimal.NewFromInt(-1)
		}, wantField: "amount_paid"},
		{name: "missing transaction", mutate: func(r *entity.TransactionWithClient) { r.Transaction = nil }, wantField: "transaction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := record(client, refDate, 100, 0)
			tt.mutate(bad)

			summaries, err := ComputeSummaries([]*entity.TransactionWithClient{
				record(client, refDate, 100, 0),
				bad,
			}, refDate)
			if summaries != nil {
				t.Error("expected no partial output")
			}
			if !errors.Is(err, domainerror.ErrMalformedRecord) {
				t.Fatalf("expected ErrMalformedRecord, got %v", err)
			}
			var malformed *domainerror.MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedRecordError, got %T", err)
			}
			if malformed.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, malformed.Field)
			}
		})
	}
}

func TestComputeSummaries_ZeroReferenceDate(t *testing.T) {
	if _, err := ComputeSummaries(nil, valueobject.CalendarDate{}); !errors.Is(err, domainerror.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestComputeClientSummary(t *testing.T) {
	client := newClient("Aissatou")
	txs := []*entity.Transaction{
		record(client, refDate.AddDays(-10), 6000, 0).Transaction,
		record(client, refDate, 0, 1500).Transaction,
		record(client, refDate.AddDays(3), 9999, 0).Transaction,
	}

	summary, err := ComputeClientSummary(client, txs, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, "previousDebt", summary.PreviousDebt, 6000)
	assertAmount(t, "todayPaid", summary.TodayPaid, 1500)
	assertAmount(t, "totalDebt", summary.TotalDebt, 4500)
	if len(summary.Transactions) != 3 {
		t.Errorf("expected 3 transactions, got %d", len(summary.Transactions))
	}
	if summary.Transactions[0].Client != client {
		t.Error("expected transactions to carry the client")
	}
}

func TestRoundForDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1000.49", want: "1000"},
		{in: "1000.5", want: "1001"},
		{in: "-1000.5", want: "-1001"},
		{in: "0.4", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundForDisplay(decimal.RequireFromString(tt.in))
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestComputeSummaries_TransactionOrderIndependentOfInput(t *testing.T) {
	client := newClient("Awa")
	older := record(client, refDate.AddDays(-1), 500, 0)
	today := record(client, refDate, 300, 100)
	sameDayLater := record(client, refDate, 200, 0)
	sameDayLater.Transaction.CreatedAt = time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)
	today.Transaction.CreatedAt = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

	forward, err := ComputeSummaries([]*entity.TransactionWithClient{older, today, sameDayLater}, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backward, err := ComputeSummaries([]*entity.TransactionWithClient{sameDayLater, today, older}, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSameSummaries(t, forward, backward)

	want := []uuid.UUID{sameDayLater.Transaction.ID, today.Transaction.ID, older.Transaction.ID}
	for i, id := range want {
		if got := forward[0].Transactions[i].Transaction.ID; got != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got)
		}
	}

	single, err := ComputeClientSummary(client, []*entity.Transaction{older.Transaction, today.Transaction, sameDayLater.Transaction}, refDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSameSummaries(t, forward, []*entity.ClientSummary{single})
}

func assertSameSummaries(t *testing.T, want, got []*entity.ClientSummary) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d summaries, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.ClientID != w.ClientID || g.ClientName != w.ClientName {
			t.Fatalf("position %d: expected client %s, got %s", i, w.ClientName, g.ClientName)
		}
		assertAmount(t, "todaySent", g.TodaySent, w.TodaySent.IntPart())
		assertAmount(t, "todayPaid", g.TodayPaid, w.TodayPaid.IntPart())
		assertAmount(t, "previousDebt", g.PreviousDebt, w.PreviousDebt.IntPart())
		assertAmount(t, "totalDebt", g.TotalDebt, w.TotalDebt.IntPart())
		if len(g.Transactions) != len(w.Transactions) {
			t.Fatalf("%s: expected %d transactions, got %d", w.ClientName, len(w.Transactions), len(g.Transactions))
		}
		for j := range w.Transactions {
			if g.Transactions[j].Transaction.ID != w.Transactions[j].Transaction.ID {
				t.Errorf("%s: transaction %d differs", w.ClientName, j)
			}
		}
	}
}
