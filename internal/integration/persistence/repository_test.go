package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/balance"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.ClientModel{},
		&model.TransactionModel{},
		&model.DailyBalanceModel{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func day(d int) valueobject.CalendarDate {
	return valueobject.NewCalendarDate(2024, time.March, d)
}

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestTransactionRepository_JoinedQueries(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	clients := NewClientRepository(db)
	transactions := NewTransactionRepository(db)

	active := entity.NewClient("Awa", nil)
	gone := entity.NewClient("Moussa", nil)
	for _, c := range []*entity.Client{active, gone} {
		if err := clients.Create(ctx, c); err != nil {
			t.Fatalf("create client: %v", err)
		}
	}

	seed := []*entity.Transaction{
		entity.NewSendTransaction(active.ID, day(1), amount(1000), amount(1100), "first", "", nil),
		entity.NewPaymentTransaction(active.ID, day(10), amount(500), entity.PaymentMethodMobileMoney, "", "Fatou", nil),
		entity.NewSendTransaction(gone.ID, day(5), amount(200), amount(200), "", "", nil),
		entity.NewSendTransaction(uuid.New(), day(7), amount(300), amount(300), "orphan", "", nil),
	}
	for _, tx := range seed {
		if err := transactions.Create(ctx, tx); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	gone.SoftDelete(time.Now().UTC())
	if err := clients.Update(ctx, gone); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	t.Run("all excludes deleted clients, newest first", func(t *testing.T) {
		all, err := transactions.FindAllWithClients(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 records, got %d", len(all))
		}
		if all[0].Transaction.Date != day(10) || all[2].Transaction.Date != day(1) {
			t.Errorf("expected newest first, got %s .. %s", all[0].Transaction.Date, all[2].Transaction.Date)
		}
		if all[1].Client != nil {
			t.Errorf("expected orphan transaction to carry a nil client")
		}
		if all[0].Client == nil || all[0].Client.Name != "Awa" {
			t.Errorf("expected client Awa to be joined")
		}
		method := all[0].Transaction.PaymentMethod
		if method == nil || *method != entity.PaymentMethodMobileMoney || all[0].Transaction.ReceiverName != "Fatou" {
			t.Errorf("payment details not persisted: %+v", all[0].Transaction)
		}
	})

	t.Run("until is inclusive", func(t *testing.T) {
		until, err := transactions.FindWithClientsUntil(ctx, day(7))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(until) != 2 {
			t.Errorf("expected 2 records up to day 7, got %d", len(until))
		}
	})

	t.Run("between is inclusive on both ends", func(t *testing.T) {
		between, err := transactions.FindWithClientsBetween(ctx, day(7), day(10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(between) != 2 {
			t.Errorf("expected 2 records, got %d", len(between))
		}
	})

	t.Run("by client oldest first", func(t *testing.T) {
		own, err := transactions.FindByClient(ctx, active.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(own) != 2 || own[0].Date != day(1) {
			t.Fatalf("unexpected client transactions %+v", own)
		}
		if !own[0].AmountToPay.Equal(amount(1100)) {
			t.Errorf("expected amount to pay 1100, got %s", own[0].AmountToPay)
		}
	})
}

func TestTransactionRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	transactions := NewTransactionRepository(db)

	tx := entity.NewSendTransaction(uuid.New(), day(3), amount(100), amount(100), "", "", nil)
	if err := transactions.Create(ctx, tx); err != nil {
		t.Fatalf("create: %v", err)
	}

	tx.AmountToPay = amount(150)
	tx.Date = day(4)
	if err := transactions.Update(ctx, tx); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, err := transactions.FindByID(ctx, tx.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !stored.AmountToPay.Equal(amount(150)) || stored.Date != day(4) {
		t.Errorf("update not persisted: %+v", stored)
	}

	if err := transactions.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := transactions.FindByID(ctx, tx.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
	if err := transactions.Delete(ctx, tx.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
	}
}

func TestTransactionRepository_Archive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	clients := NewClientRepository(db)
	transactions := NewTransactionRepository(db)

	operator := uuid.New()
	mine := entity.NewClient("Mine", &operator)
	other := entity.NewClient("Other", nil)
	for _, c := range []*entity.Client{mine, other} {
		if err := clients.Create(ctx, c); err != nil {
			t.Fatalf("create client: %v", err)
		}
	}
	for _, tx := range []*entity.Transaction{
		entity.NewSendTransaction(mine.ID, day(1), amount(100), amount(110), "", "", nil),
		entity.NewPaymentTransaction(mine.ID, day(2), amount(60), entity.PaymentMethodCash, "", "", nil),
		entity.NewSendTransaction(mine.ID, day(20), amount(5), amount(5), "", "", nil),
		entity.NewSendTransaction(other.ID, day(1), amount(7), amount(7), "", "", nil),
	} {
		if err := transactions.Create(ctx, tx); err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	balancesAt := func(dates ...valueobject.CalendarDate) map[string][]*entity.ClientSummary {
		t.Helper()
		all, err := transactions.FindAllWithClients(ctx)
		if err != nil {
			t.Fatalf("load transactions: %v", err)
		}
		out := make(map[string][]*entity.ClientSummary, len(dates))
		for _, d := range dates {
			if out[d.String()], err = balance.ComputeSummaries(all, d); err != nil {
				t.Fatalf("compute summaries: %v", err)
			}
		}
		return out
	}
	checkpoints := []valueobject.CalendarDate{day(15), day(16), day(20), day(25)}
	before := balancesAt(checkpoints...)

	summaryID := uuid.New()
	result, err := transactions.ArchiveBefore(ctx, day(15), &operator, func(totals *adapter.ClientTotals) *entity.Transaction {
		return &entity.Transaction{
			ID:          summaryID,
			ClientID:    totals.ClientID,
			Date:        day(14),
			AmountSent:  totals.AmountSent,
			AmountToPay: totals.AmountToPay,
			AmountPaid:  totals.AmountPaid,
			CreatedAt:   time.Now().UTC(),
			UpdatedAt:   time.Now().UTC(),
		}
	})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if result.Deleted != 2 || len(result.Clients) != 1 {
		t.Fatalf("expected 2 deleted rows for 1 client, got %d for %d", result.Deleted, len(result.Clients))
	}
	got := result.Clients[0]
	if got.ClientName != "Mine" || got.TransactionCount != 2 ||
		!got.AmountSent.Equal(amount(100)) || !got.AmountToPay.Equal(amount(110)) || !got.AmountPaid.Equal(amount(60)) {
		t.Fatalf("unexpected totals %+v", got)
	}

	own, _ := transactions.FindByClient(ctx, mine.ID)
	if len(own) != 2 || own[0].ID != summaryID {
		t.Errorf("expected summary plus recent transaction, got %d records", len(own))
	}
	others, _ := transactions.FindByClient(ctx, other.ID)
	if len(others) != 1 {
		t.Errorf("expected other client untouched, got %d records", len(others))
	}

	after := balancesAt(checkpoints...)
	for _, d := range checkpoints {
		b, a := before[d.String()], after[d.String()]
		if len(a) != len(b) {
			t.Fatalf("%s: expected %d summaries, got %d", d, len(b), len(a))
		}
		for i := range b {
			if !a[i].PreviousDebt.Equal(b[i].PreviousDebt) || !a[i].TotalDebt.Equal(b[i].TotalDebt) ||
				!a[i].TodaySent.Equal(b[i].TodaySent) || !a[i].TodayPaid.Equal(b[i].TodayPaid) {
				t.Errorf("%s: balance of %s changed from %s to %s", d, b[i].ClientName, b[i].TotalDebt, a[i].TotalDebt)
			}
		}
	}

	t.Run("nothing before cutoff", func(t *testing.T) {
		called := false
		result, err := transactions.ArchiveBefore(ctx, day(1), nil, func(*adapter.ClientTotals) *entity.Transaction {
			called = true
			return nil
		})
		if err != nil {
			t.Fatalf("archive: %v", err)
		}
		if called || result.Deleted != 0 || len(result.Clients) != 0 {
			t.Errorf("expected empty archive, got %+v", result)
		}
	})
}

func TestClientRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewClientRepository(db)

	names := []string{"Binta", "Aminata", "Ibrahima"}
	created := make(map[string]*entity.Client)
	for _, n := range names {
		c := entity.NewClient(n, nil)
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create: %v", err)
		}
		created[n] = c
	}

	t.Run("search is case-insensitive and ordered", func(t *testing.T) {
		found, err := repo.Search(ctx, "IN", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 2 || found[0].Name != "Aminata" || found[1].Name != "Binta" {
			t.Errorf("unexpected search result %v", found)
		}
	})

	t.Run("exists by name", func(t *testing.T) {
		exists, _ := repo.ExistsActiveByName(ctx, "binta", nil)
		if !exists {
			t.Error("expected binta to exist")
		}
		id := created["Binta"].ID
		exists, _ = repo.ExistsActiveByName(ctx, "binta", &id)
		if exists {
			t.Error("expected excluded client to be ignored")
		}
	})

	t.Run("soft delete hides from lists but not from FindByID", func(t *testing.T) {
		c := created["Ibrahima"]
		c.SoftDelete(time.Now().UTC())
		if err := repo.Update(ctx, c); err != nil {
			t.Fatalf("update: %v", err)
		}

		active, _ := repo.ListActive(ctx)
		if len(active) != 2 {
			t.Errorf("expected 2 active clients, got %d", len(active))
		}
		stored, err := repo.FindByID(ctx, c.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if stored.Status.IsActive() {
			t.Error("expected deleted status")
		}
		exists, _ := repo.ExistsActiveByName(ctx, "Ibrahima", nil)
		if exists {
			t.Error("expected deleted client name to be free")
		}
	})

	t.Run("missing client", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrClientNotFound) {
			t.Errorf("expected ErrClientNotFound, got %v", err)
		}
		if err := repo.Update(ctx, entity.NewClient("ghost", nil)); !errors.Is(err, domainerror.ErrClientNotFound) {
			t.Errorf("expected ErrClientNotFound, got %v", err)
		}
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	first := entity.NewAppUser("first@desk.test", "", "hash")
	second := entity.NewAppUser("second@desk.test", "+221770000000", "hash")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	second.Blocked = true
	for _, u := range []*entity.AppUser{first, second} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	found, err := repo.FindByEmail(ctx, "SECOND@desk.test")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if !found.Blocked || !found.IsActive || found.PhoneNumber != "+221770000000" {
		t.Errorf("unexpected user %+v", found)
	}

	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].ID != second.ID {
		t.Errorf("expected newest user first")
	}

	first.IsActive = false
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, _ := repo.FindByID(ctx, first.ID)
	if stored.IsActive {
		t.Error("expected user to be inactive")
	}

	dup := entity.NewAppUser("FIRST@desk.test", "", "hash")
	if err := repo.Create(ctx, dup); !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got %v", err)
	}

	if exists, _ := repo.ExistsByEmail(ctx, "first@desk.test"); !exists {
		t.Error("expected email to exist")
	}
	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRefreshTokenRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRefreshTokenRepository(db)
	userID := uuid.New()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	if err := repo.Save(ctx, "token-a", userID, now.Add(time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, "token-b", userID, now.Add(-time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}

	if ok, _ := repo.IsActive(ctx, "token-a", now); !ok {
		t.Error("expected token-a to be active")
	}
	if ok, _ := repo.IsActive(ctx, "token-b", now); ok {
		t.Error("expected expired token-b to be inactive")
	}
	if ok, _ := repo.IsActive(ctx, "unknown", now); ok {
		t.Error("expected unknown token to be inactive")
	}

	revoked, err := repo.RevokeAllForUser(ctx, userID)
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked != 2 {
		t.Errorf("expected 2 revoked tokens, got %d", revoked)
	}
	if ok, _ := repo.IsActive(ctx, "token-a", now); ok {
		t.Error("expected token-a to be revoked")
	}

	purged, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Errorf("expected only token-b purged, got %d", purged)
	}
}

func TestDailyBalanceRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewDailyBalanceRepository(db)

	first := entity.NewDailyBalance(day(2), "SOLDE LPV", amount(100))
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	again := entity.NewDailyBalance(day(2), "SOLDE LPV", amount(-40))
	if err := repo.Upsert(ctx, again); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("expected upsert to reuse id %s, got %s", first.ID, again.ID)
	}

	stored, err := repo.FindByDate(ctx, day(2))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(stored) != 1 || !stored[0].Amount.Equal(amount(-40)) {
		t.Fatalf("unexpected balances %+v", stored)
	}

	other := entity.NewDailyBalance(day(2), "MD NOUS DOIT", amount(5))
	if err := repo.Upsert(ctx, other); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if exists, _ := repo.ExistsByDateAndName(ctx, day(2), "SOLDE LPV", other.ID); !exists {
		t.Error("expected name to be taken")
	}
	if exists, _ := repo.ExistsByDateAndName(ctx, day(3), "SOLDE LPV", other.ID); exists {
		t.Error("expected name to be free on another date")
	}

	other.Name = "RENAMED"
	if err := repo.Update(ctx, other); err != nil {
		t.Fatalf("update: %v", err)
	}
	renamed, _ := repo.FindByID(ctx, other.ID)
	if renamed.Name != "RENAMED" {
		t.Errorf("expected rename, got %s", renamed.Name)
	}
	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrDailyBalanceNotFound) {
		t.Errorf("expected ErrDailyBalanceNotFound, got %v", err)
	}
}
