// Package fake provides in-memory implementations of the application adapters
// for use case tests.
package fake

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/domain/entity"
	domainerror "github.com/transfer-desk/backend/internal/domain/error"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
)

// Store is a shared in-memory database backing the fake repositories.
type Store struct {
	mu           sync.Mutex
	clients      map[uuid.UUID]*entity.Client
	transactions map[uuid.UUID]*entity.Transaction
	users        map[uuid.UUID]*entity.AppUser
	balances     map[uuid.UUID]*entity.DailyBalance
	order        []uuid.UUID // insertion order across all maps
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		clients:      make(map[uuid.UUID]*entity.Client),
		transactions: make(map[uuid.UUID]*entity.Transaction),
		users:        make(map[uuid.UUID]*entity.AppUser),
		balances:     make(map[uuid.UUID]*entity.DailyBalance),
	}
}

// Transactions returns a TransactionRepository over the store.
func (s *Store) Transactions() adapter.TransactionRepository { return &transactionRepo{s} }

// Clients returns a ClientRepository over the store.
func (s *Store) Clients() adapter.ClientRepository { return &clientRepo{s} }

// Users returns a UserRepository over the store.
func (s *Store) Users() adapter.UserRepository { return &userRepo{s} }

// DailyBalances returns a DailyBalanceRepository over the store.
func (s *Store) DailyBalances() adapter.DailyBalanceRepository { return &dailyBalanceRepo{s} }

// AddClient seeds an active client.
func (s *Store) AddClient(name string) *entity.Client {
	c := entity.NewClient(name, nil)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = c
	s.order = append(s.order, c.ID)
	return c
}

// AddTransaction seeds a transaction.
func (s *Store) AddTransaction(tx *entity.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *tx
	s.transactions[tx.ID] = &copied
	s.order = append(s.order, tx.ID)
}

// AddUser seeds a user.
func (s *Store) AddUser(u *entity.AppUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *u
	s.users[u.ID] = &copied
	s.order = append(s.order, u.ID)
}

// TransactionCount returns the number of stored transactions.
func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

func (s *Store) ordered(ids func(uuid.UUID) bool) []uuid.UUID {
	out := make([]uuid.UUID, 0)
	for _, id := range s.order {
		if ids(id) {
			out = append(out, id)
		}
	}
	return out
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.s.AddTransaction(tx)
	return nil
}

func (r *transactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	copied := *tx
	return &copied, nil
}

func (r *transactionRepo) FindByClient(_ context.Context, clientID uuid.UUID) ([]*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Transaction, 0)
	for _, id := range r.s.ordered(func(id uuid.UUID) bool {
		tx, ok := r.s.transactions[id]
		return ok && tx.ClientID == clientID
	}) {
		copied := *r.s.transactions[id]
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *transactionRepo) joined(keep func(*entity.Transaction) bool) []*entity.TransactionWithClient {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.TransactionWithClient, 0)
	for _, id := range r.s.order {
		tx, ok := r.s.transactions[id]
		if !ok || !keep(tx) {
			continue
		}
		client, ok := r.s.clients[tx.ClientID]
		if ok && !client.Status.IsActive() {
			continue
		}
		copied := *tx
		rec := &entity.TransactionWithClient{Transaction: &copied}
		if ok {
			c := *client
			rec.Client = &c
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Transaction.Date.After(out[j].Transaction.Date)
	})
	return out
}

func (r *transactionRepo) FindAllWithClients(_ context.Context) ([]*entity.TransactionWithClient, error) {
	return r.joined(func(*entity.Transaction) bool { return true }), nil
}

func (r *transactionRepo) FindWithClientsUntil(_ context.Context, end valueobject.CalendarDate) ([]*entity.TransactionWithClient, error) {
	return r.joined(func(tx *entity.Transaction) bool { return !tx.Date.After(end) }), nil
}

func (r *transactionRepo) FindWithClientsBetween(_ context.Context, from, to valueobject.CalendarDate) ([]*entity.TransactionWithClient, error) {
	return r.joined(func(tx *entity.Transaction) bool {
		return !tx.Date.Before(from) && !tx.Date.After(to)
	}), nil
}

func (r *transactionRepo) Update(_ context.Context, tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[tx.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	copied := *tx
	r.s.transactions[tx.ID] = &copied
	return nil
}

func (r *transactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transactions[id]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

func (r *transactionRepo) ArchiveBefore(
	_ context.Context,
	cutoff valueobject.CalendarDate,
	createdBy *uuid.UUID,
	summarize adapter.ArchiveSummarizer,
) (*adapter.ArchiveResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := &adapter.ArchiveResult{}
	byClient := make(map[uuid.UUID]*adapter.ClientTotals)
	var archived []uuid.UUID
	for _, id := range r.s.order {
		tx, ok := r.s.transactions[id]
		if !ok || !tx.Date.Before(cutoff) {
			continue
		}
		client, ok := r.s.clients[tx.ClientID]
		if !ok {
			continue
		}
		if createdBy != nil && (client.CreatedBy == nil || *client.CreatedBy != *createdBy) {
			continue
		}
		totals, ok := byClient[tx.ClientID]
		if !ok {
			totals = &adapter.ClientTotals{ClientID: tx.ClientID, ClientName: client.Name}
			byClient[tx.ClientID] = totals
			result.Clients = append(result.Clients, totals)
		}
		totals.AmountSent = totals.AmountSent.Add(tx.AmountSent)
		totals.AmountToPay = totals.AmountToPay.Add(tx.AmountToPay)
		totals.AmountPaid = totals.AmountPaid.Add(tx.AmountPaid)
		totals.TransactionCount++
		archived = append(archived, id)
	}
	sort.Slice(result.Clients, func(i, j int) bool { return result.Clients[i].ClientName < result.Clients[j].ClientName })

	for _, id := range archived {
		delete(r.s.transactions, id)
		result.Deleted++
	}
	for _, totals := range result.Clients {
		summary := summarize(totals)
		r.s.transactions[summary.ID] = summary
		r.s.order = append(r.s.order, summary.ID)
	}
	return result, nil
}

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *c
	r.s.clients[c.ID] = &copied
	r.s.order = append(r.s.order, c.ID)
	return nil
}

func (r *clientRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, domainerror.ErrClientNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *clientRepo) ListActive(ctx context.Context) ([]*entity.Client, error) {
	return r.Search(ctx, "", 0)
}

func (r *clientRepo) Search(_ context.Context, term string, limit int) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	term = strings.ToLower(term)
	out := make([]*entity.Client, 0)
	for _, c := range r.s.clients {
		if c.Status.IsActive() && strings.Contains(strings.ToLower(c.Name), term) {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *clientRepo) ExistsActiveByName(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clients {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.Status.IsActive() && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *clientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; !ok {
		return domainerror.ErrClientNotFound
	}
	copied := *c
	r.s.clients[c.ID] = &copied
	return nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.AppUser) error {
	r.s.AddUser(u)
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.AppUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.AppUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *userRepo) List(_ context.Context) ([]*entity.AppUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.AppUser, 0, len(r.s.users))
	for _, id := range r.s.order {
		if u, ok := r.s.users[id]; ok {
			copied := *u
			out = append([]*entity.AppUser{&copied}, out...)
		}
	}
	return out, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.AppUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domainerror.ErrUserNotFound
	}
	copied := *u
	r.s.users[u.ID] = &copied
	return nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type dailyBalanceRepo struct{ s *Store }

func (r *dailyBalanceRepo) FindByDate(_ context.Context, date valueobject.CalendarDate) ([]*entity.DailyBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.DailyBalance, 0)
	for _, id := range r.s.order {
		if b, ok := r.s.balances[id]; ok && b.Date == date {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *dailyBalanceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.DailyBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.balances[id]
	if !ok {
		return nil, domainerror.ErrDailyBalanceNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *dailyBalanceRepo) Upsert(_ context.Context, balance *entity.DailyBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.balances {
		if b.Date == balance.Date && b.Name == balance.Name {
			b.Amount = balance.Amount
			b.UpdatedAt = balance.UpdatedAt
			balance.ID = b.ID
			balance.CreatedAt = b.CreatedAt
			return nil
		}
	}
	copied := *balance
	r.s.balances[balance.ID] = &copied
	r.s.order = append(r.s.order, balance.ID)
	return nil
}

func (r *dailyBalanceRepo) ExistsByDateAndName(_ context.Context, date valueobject.CalendarDate, name string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.balances {
		if b.ID != excludeID && b.Date == date && b.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *dailyBalanceRepo) Update(_ context.Context, balance *entity.DailyBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.balances[balance.ID]; !ok {
		return domainerror.ErrDailyBalanceNotFound
	}
	copied := *balance
	r.s.balances[balance.ID] = &copied
	return nil
}

// Amount is a test shorthand for decimal.NewFromInt.
func Amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
