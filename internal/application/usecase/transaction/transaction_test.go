package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/usecase/fake"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

var today = valueobject.NewCalendarDate(2024, time.April, 10)

type fixture struct {
	store *fake.Store
	cache *fake.SummaryCache
	clock fake.Clock
}

func newFixture() *fixture {
	return &fixture{store: fake.NewStore(), cache: fake.NewSummaryCache(), clock: fake.Clock{Date: today}}
}

func (f *fixture) send() *RecordSendUseCase {
	return NewRecordSendUseCase(f.store.Transactions(), f.store.Clients(), f.cache, f.clock)
}

func (f *fixture) payment() *RecordPaymentUseCase {
	return NewRecordPaymentUseCase(f.store.Transactions(), f.store.Clients(), f.cache, f.clock)
}

func TestRecordSendUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults date to today and invalidates cache", func(t *testing.T) {
		f := newFixture()
		client := f.store.AddClient("Amadou")

		out, err := f.send().Execute(ctx, RecordSendInput{
			ClientID:    client.ID,
			AmountSent:  fake.Amount(10000),
			AmountToPay: fake.Amount(10500),
			Description: "  envoi Dakar ",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.Date != today {
			t.Errorf("expected date %s, got %s", today, out.Transaction.Date)
		}
		if out.Transaction.Description != "envoi Dakar" {
			t.Errorf("expected trimmed description, got %q", out.Transaction.Description)
		}
		if !out.Transaction.AmountPaid.IsZero() {
			t.Errorf("expected zero amount paid, got %s", out.Transaction.AmountPaid)
		}
		if f.cache.Invalidations != 1 {
			t.Errorf("expected 1 cache invalidation, got %d", f.cache.Invalidations)
		}
		if f.store.TransactionCount() != 1 {
			t.Errorf("expected 1 stored transaction, got %d", f.store.TransactionCount())
		}
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture()
		client := f.store.AddClient("Binta")
		deleted := f.store.AddClient("Gone")
		gone, _ := f.store.Clients().FindByID(ctx, deleted.ID)
		gone.SoftDelete(time.Now())
		_ = f.store.Clients().Update(ctx, gone)

		long := make([]byte, MaxDescriptionLength+1)
		for i := range long {
			long[i] = 'a'
		}

		tests := []struct {
			name     string
			input    RecordSendInput
			wantCode domainerror.TransactionErrorCode
		}{
			{name: "zero amount sent", input: RecordSendInput{ClientID: client.ID, AmountToPay: fake.Amount(1)}, wantCode: domainerror.ErrCodeInvalidTransactionAmount},
			{name: "negative amount to pay", input: RecordSendInput{ClientID: client.ID, AmountSent: fake.Amount(1), AmountToPay: fake.Amount(-1)}, wantCode: domainerror.ErrCodeInvalidTransactionAmount},
			{name: "description too long", input: RecordSendInput{ClientID: client.ID, AmountSent: fake.Amount(1), Description: string(long)}, wantCode: domainerror.ErrCodeDescriptionTooLong},
			{name: "unknown client", input: RecordSendInput{ClientID: uuid.New(), AmountSent: fake.Amount(1)}, wantCode: domainerror.ErrCodeTxnClientNotFound},
			{name: "deleted client", input: RecordSendInput{ClientID: deleted.ID, AmountSent: fake.Amount(1)}, wantCode: domainerror.ErrCodeTxnClientNotActive},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.send().Execute(ctx, tt.input)
				var txErr *domainerror.TransactionError
				if !errors.As(err, &txErr) {
					t.Fatalf("expected TransactionError, got %v", err)
				}
				if txErr.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, txErr.Code)
				}
			})
		}
		if f.store.TransactionCount() != 0 {
			t.Errorf("expected nothing stored, got %d", f.store.TransactionCount())
		}
	})

	t.Run("description length counts characters", func(t *testing.T) {
		f := newFixture()
		client := f.store.AddClient("Aïssatou")
		accented := strings.Repeat("é", MaxDescriptionLength)

		out, err := f.send().Execute(ctx, RecordSendInput{ClientID: client.ID, AmountSent: fake.Amount(1), Description: accented})
		if err != nil {
			t.Fatalf("expected %d accented characters to be accepted, got %v", MaxDescriptionLength, err)
		}
		if out.Transaction.Description != accented {
			t.Errorf("expected description kept as is")
		}

		_, err = f.send().Execute(ctx, RecordSendInput{ClientID: client.ID, AmountSent: fake.Amount(1), Description: accented + "é"})
		if !errors.Is(err, domainerror.ErrDescriptionTooLong) {
			t.Errorf("expected ErrDescriptionTooLong, got %v", err)
		}
	})
}

func TestRecordPaymentUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("returns refreshed summary", func(t *testing.T) {
		f := newFixture()
		client := f.store.AddClient("Amadou")
		f.store.AddTransaction(entity.NewSendTransaction(client.ID, today.AddDays(-2), fake.Amount(5000), fake.Amount(5000), "", "", nil))

		out, err := f.payment().Execute(ctx, RecordPaymentInput{
			ClientID:     client.ID,
			AmountPaid:   fake.Amount(2000),
			ReceiverName: "Ousmane",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if *out.Transaction.PaymentMethod != entity.PaymentMethodCash {
			t.Errorf("expected CASH default, got %s", *out.Transaction.PaymentMethod)
		}
		if out.Transaction.ReceiverName != "" {
			t.Errorf("expected receiver dropped for cash payment, got %q", out.Transaction.ReceiverName)
		}
		if !out.Summary.PreviousDebt.Equal(fake.Amount(5000)) {
			t.Errorf("expected previous debt 5000, got %s", out.Summary.PreviousDebt)
		}
		if !out.Summary.TotalDebt.Equal(fake.Amount(3000)) {
			t.Errorf("expected total debt 3000, got %s", out.Summary.TotalDebt)
		}
	})

	t.Run("mobile money keeps receiver", func(t *testing.T) {
		f := newFixture()
		client := f.store.AddClient("Awa")

		out, err := f.payment().Execute(ctx, RecordPaymentInput{
			ClientID:      client.ID,
			AmountPaid:    fake.Amount(100),
			PaymentMethod: "mobile_money",
			ReceiverName:  "Kadi",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.ReceiverName != "Kadi" {
			t.Errorf("expected receiver Kadi, got %q", out.Transaction.ReceiverName)
		}
		if !out.Summary.TotalDebt.Equal(fake.Amount(-100)) {
			t.Errorf("expected advance of 100, got %s", out.Summary.TotalDebt)
		}
	})

	t.Run("rejects unknown method and non-positive amount", func(t *testing.T) {
		f := newFixture()
		client := f.store.AddClient("Awa")

		_, err := f.payment().Execute(ctx, RecordPaymentInput{ClientID: client.ID, AmountPaid: fake.Amount(1), PaymentMethod: "CHEQUE"})
		if !errors.Is(err, domainerror.ErrInvalidPaymentMethod) {
			t.Errorf("expected ErrInvalidPaymentMethod, got %v", err)
		}

		_, err = f.payment().Execute(ctx, RecordPaymentInput{ClientID: client.ID, AmountPaid: decimal.Zero})
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})
}

func TestUpdateTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	client := f.store.AddClient("Moussa")
	tx := entity.NewSendTransaction(client.ID, today, fake.Amount(1000), fake.Amount(1100), "", "", nil)
	f.store.AddTransaction(tx)
	uc := NewUpdateTransactionUseCase(f.store.Transactions(), f.cache)

	t.Run("applies provided fields only", func(t *testing.T) {
		newDate := today.AddDays(-1)
		toPay := fake.Amount(1200)
		out, err := uc.Execute(ctx, UpdateTransactionInput{TransactionID: tx.ID, Date: &newDate, AmountToPay: &toPay})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.Date != newDate || !out.Transaction.AmountToPay.Equal(toPay) {
			t.Errorf("unexpected transaction %+v", out.Transaction)
		}
		if !out.Transaction.AmountSent.Equal(fake.Amount(1000)) {
			t.Errorf("expected amount sent unchanged, got %s", out.Transaction.AmountSent)
		}
		if f.cache.Invalidations != 1 {
			t.Errorf("expected cache invalidation, got %d", f.cache.Invalidations)
		}
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		negative := fake.Amount(-1)
		_, err := uc.Execute(ctx, UpdateTransactionInput{TransactionID: tx.ID, AmountPaid: &negative})
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateTransactionInput{TransactionID: uuid.New()})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestDeleteTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	client := f.store.AddClient("Moussa")
	tx := entity.NewSendTransaction(client.ID, today, fake.Amount(1), fake.Amount(1), "", "", nil)
	f.store.AddTransaction(tx)
	uc := NewDeleteTransactionUseCase(f.store.Transactions(), f.cache)

	if err := uc.Execute(ctx, DeleteTransactionInput{TransactionID: tx.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.store.TransactionCount() != 0 {
		t.Error("expected transaction to be removed")
	}
	if err := uc.Execute(ctx, DeleteTransactionInput{TransactionID: tx.ID}); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
	}
}

func TestListClientTransactionsUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	client := f.store.AddClient("Seydou")
	for _, offset := range []int{-3, 0, -3, -1} {
		f.store.AddTransaction(entity.NewSendTransaction(client.ID, today.AddDays(offset), fake.Amount(1), fake.Amount(1), "", "", nil))
	}

	out, err := NewListClientTransactionsUseCase(f.store.Transactions(), f.store.Clients()).
		Execute(ctx, ListClientTransactionsInput{ClientID: client.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Groups) != 3 {
		t.Fatalf("expected 3 date groups, got %d", len(out.Groups))
	}
	if out.Groups[0].Date != today || out.Groups[2].Date != today.AddDays(-3) {
		t.Errorf("expected newest first, got %s..%s", out.Groups[0].Date, out.Groups[2].Date)
	}
	if len(out.Groups[2].Transactions) != 2 {
		t.Errorf("expected 2 transactions on oldest date, got %d", len(out.Groups[2].Transactions))
	}
}
