package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/application/usecase/client"
	"github.com/transfer-desk/backend/internal/application/usecase/export"
	"github.com/transfer-desk/backend/internal/application/usecase/fake"
	"github.com/transfer-desk/backend/internal/application/usecase/summary"
	"github.com/transfer-desk/backend/internal/application/usecase/transaction"
	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/dto"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/middleware"
)

var testToday = valueobject.NewCalendarDate(2024, time.March, 15)

type testServer struct {
	engine   *gin.Engine
	store    *fake.Store
	operator uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := fake.NewStore()
	cache := fake.NewSummaryCache()
	clock := fake.Clock{Date: testToday}
	passwords := fake.PasswordService{MinLength: 6}
	txRepo := store.Transactions()
	clientRepo := store.Clients()

	clients := NewClientController(
		client.NewCreateClientUseCase(clientRepo),
		client.NewRenameClientUseCase(clientRepo, cache),
		client.NewDeleteClientUseCase(clientRepo, cache),
		client.NewSearchClientsUseCase(clientRepo),
	)
	transactions := NewTransactionController(
		transaction.NewRecordSendUseCase(txRepo, clientRepo, cache, clock),
		transaction.NewRecordPaymentUseCase(txRepo, clientRepo, cache, clock),
		transaction.NewUpdateTransactionUseCase(txRepo, cache),
		transaction.NewDeleteTransactionUseCase(txRepo, cache),
		transaction.NewListClientTransactionsUseCase(txRepo, clientRepo),
	)
	summaries := NewSummaryController(
		summary.NewGetSummariesUseCase(txRepo, cache, clock),
		summary.NewGetClientSummaryUseCase(txRepo, clientRepo, clock),
		summary.NewGetDateStatusesUseCase(txRepo, clock),
		nil,
	)
	exports := NewExportController(
		export.NewExportSummaryUseCase(txRepo, passwords, &fake.ReportFormatter{}, "hashed:secret", adapter.ReportFormatText),
	)

	operator := uuid.New()
	engine := gin.New()
	api := engine.Group("/api/v1", func(c *gin.Context) {
		c.Set(string(middleware.UserIDKey), operator)
		c.Next()
	})
	api.GET("/clients", clients.Search)
	api.POST("/clients", clients.Create)
	api.DELETE("/clients/:id", clients.Delete)
	api.GET("/clients/:id/transactions", transactions.ListByClient)
	api.GET("/clients/:id/summary", summaries.GetClient)
	api.POST("/transactions/send", transactions.RecordSend)
	api.POST("/transactions/payment", transactions.RecordPayment)
	api.GET("/summaries", summaries.List)
	api.GET("/summaries/calendar", summaries.Calendar)
	api.POST("/exports", exports.Export)

	return &testServer{engine: engine, store: store, operator: operator}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestTransactionController_RecordSend(t *testing.T) {
	s := newTestServer(t)
	awa := s.store.AddClient("Awa")

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "numeric amounts",
			body:       `{"client_id":"` + awa.ID.String() + `","date":"2024-03-14","amount_sent":1000,"amount_to_pay":1100}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "string amounts",
			body:       `{"client_id":"` + awa.ID.String() + `","amount_sent":"250.50","amount_to_pay":"260.25"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "non numeric amount rejected",
			body:       `{"client_id":"` + awa.ID.String() + `","amount_sent":"abc","amount_to_pay":10}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "TXN-010005",
		},
		{
			name:       "missing amount to pay",
			body:       `{"client_id":"` + awa.ID.String() + `","amount_sent":5000}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "TXN-010005",
		},
		{
			name:       "null amount to pay",
			body:       `{"client_id":"` + awa.ID.String() + `","amount_sent":5000,"amount_to_pay":null}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "TXN-010005",
		},
		{
			name:       "zero amount to pay is explicit and accepted",
			body:       `{"client_id":"` + awa.ID.String() + `","amount_sent":5000,"amount_to_pay":0}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "zero amount sent",
			body:       `{"client_id":"` + awa.ID.String() + `","amount_sent":0,"amount_to_pay":10}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "TXN-010002",
		},
		{
			name:       "invalid date",
			body:       `{"client_id":"` + awa.ID.String() + `","date":"14/03/2024","amount_sent":10,"amount_to_pay":10}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "TXN-010001",
		},
		{
			name:       "unknown client",
			body:       `{"client_id":"` + uuid.NewString() + `","amount_sent":10,"amount_to_pay":10}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "TXN-020002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/v1/transactions/send", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantCode != "" {
				resp := decode[dto.ErrorResponse](t, rec)
				if resp.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
				}
			}
		})
	}

	t.Run("date defaults to today", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/transactions/send",
			`{"client_id":"`+awa.ID.String()+`","amount_sent":5,"amount_to_pay":5}`)
		resp := decode[dto.TransactionResponse](t, rec)
		if resp.Date != testToday.String() {
			t.Errorf("expected date %s, got %s", testToday, resp.Date)
		}
		if resp.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	})
}

func TestTransactionController_RecordPaymentReturnsSummary(t *testing.T) {
	s := newTestServer(t)
	awa := s.store.AddClient("Awa")
	s.store.AddTransaction(entity.NewSendTransaction(
		awa.ID, testToday.AddDays(-2), decimal.NewFromInt(1000), decimal.NewFromInt(1200), "", "", nil,
	))

	rec := s.do(t, http.MethodPost, "/api/v1/transactions/payment",
		`{"client_id":"`+awa.ID.String()+`","amount_paid":"200","payment_method":"MOBILE_MONEY","receiver_name":"Moussa"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decode[dto.RecordPaymentResponse](t, rec)
	if resp.Transaction.PaymentMethod == nil || *resp.Transaction.PaymentMethod != "MOBILE_MONEY" {
		t.Errorf("expected MOBILE_MONEY, got %v", resp.Transaction.PaymentMethod)
	}
	if resp.Summary.PreviousDebt != "1200" || resp.Summary.TodayPaid != "200" || resp.Summary.TotalDebt != "1000" {
		t.Errorf("unexpected summary %+v", resp.Summary)
	}
	if resp.Summary.Status != "debt" {
		t.Errorf("expected debt status, got %s", resp.Summary.Status)
	}
}

func TestSummaryController_List(t *testing.T) {
	s := newTestServer(t)
	awa := s.store.AddClient("Awa")
	binta := s.store.AddClient("Binta")
	s.store.AddTransaction(entity.NewSendTransaction(
		awa.ID, testToday, decimal.NewFromInt(1000), decimal.RequireFromString("1500.50"), "", "", nil,
	))
	s.store.AddTransaction(entity.NewPaymentTransaction(
		binta.ID, testToday.AddDays(-1), decimal.NewFromInt(300), entity.PaymentMethodCash, "", "", nil,
	))

	t.Run("rounded amounts and totals", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/summaries?date=2024-03-15&sort=debt", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode[dto.SummariesResponse](t, rec)
		if len(resp.Summaries) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(resp.Summaries))
		}
		if resp.Summaries[0].ClientName != "Awa" || resp.Summaries[0].TotalDebt != "1501" {
			t.Errorf("unexpected first summary %+v", resp.Summaries[0])
		}
		if resp.Summaries[1].Status != "advance" || resp.Summaries[1].TotalDebt != "-300" {
			t.Errorf("unexpected second summary %+v", resp.Summaries[1])
		}
		if resp.Totals.TotalDebts != "1501" || resp.Totals.TotalAdvances != "-300" {
			t.Errorf("unexpected totals %+v", resp.Totals)
		}
	})

	t.Run("search filter", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/summaries?search=bin", "")
		resp := decode[dto.SummariesResponse](t, rec)
		if len(resp.Summaries) != 1 || resp.Summaries[0].ClientName != "Binta" {
			t.Errorf("expected only Binta, got %+v", resp.Summaries)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/summaries?date=yesterday", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if resp := decode[dto.ErrorResponse](t, rec); resp.Code != "BAL-010003" {
			t.Errorf("expected BAL-010003, got %s", resp.Code)
		}
	})

	t.Run("client summary", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/clients/"+binta.ID.String()+"/summary?date=2024-03-14", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode[dto.ClientSummaryEnvelope](t, rec)
		if resp.Date != "2024-03-14" || resp.Summary.TodayPaid != "300" {
			t.Errorf("unexpected client summary %+v", resp)
		}
	})

	t.Run("unknown client summary", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/clients/"+uuid.NewString()+"/summary", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("bad client id", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/clients/not-a-uuid/summary", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestClientController(t *testing.T) {
	s := newTestServer(t)
	s.store.AddClient("Awa")

	t.Run("create", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/clients", `{"name":"  Moussa  "}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode[dto.ClientResponse](t, rec)
		if resp.Name != "Moussa" || resp.Status != "active" {
			t.Errorf("unexpected client %+v", resp)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/clients", `{"name":"awa"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		if resp := decode[dto.ErrorResponse](t, rec); resp.Code != "CLI-010003" {
			t.Errorf("expected CLI-010003, got %s", resp.Code)
		}
	})

	t.Run("search", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/clients?search=mou", "")
		resp := decode[dto.ClientListResponse](t, rec)
		if len(resp.Clients) != 1 || resp.Clients[0].Name != "Moussa" {
			t.Errorf("unexpected search result %+v", resp.Clients)
		}
	})

	t.Run("delete unknown", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, "/api/v1/clients/"+uuid.NewString(), "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestExportController(t *testing.T) {
	s := newTestServer(t)
	awa := s.store.AddClient("Awa")
	s.store.AddTransaction(entity.NewSendTransaction(
		awa.ID, valueobject.NewCalendarDate(2024, time.March, 5), decimal.NewFromInt(100), decimal.NewFromInt(110), "", "", nil,
	))

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/exports",
			`{"start_date":"2024-03-01","end_date":"2024-03-31","password":"nope"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if resp := decode[dto.ErrorResponse](t, rec); resp.Code != "EXP-010001" {
			t.Errorf("expected EXP-010001, got %s", resp.Code)
		}
	})

	t.Run("empty window", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/exports",
			`{"start_date":"2024-02-01","end_date":"2024-02-28","password":"secret"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("attachment", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/v1/exports",
			`{"start_date":"2024-03-01","end_date":"2024-03-31","password":"secret","format":"markdown"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		want := `attachment; filename="recap_01-03-2024_31-03-2024.md"`
		if got := rec.Header().Get("Content-Disposition"); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
		if rec.Body.String() != "1 rows" {
			t.Errorf("unexpected body %q", rec.Body.String())
		}
	})
}

func TestHandleDomainError_Unknown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handleDomainError(ctx, errors.New("connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp := decode[dto.ErrorResponse](t, rec); resp.Error != "An internal error occurred" {
		t.Errorf("unexpected error body %+v", resp)
	}
}

func TestHealthController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		probeErr   error
		wantStatus int
		wantState  string
	}{
		{name: "all connected", wantStatus: http.StatusOK, wantState: "ok"},
		{name: "database down", probeErr: errors.New("down"), wantStatus: http.StatusServiceUnavailable, wantState: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthController(HealthCheck{
				Name:  "database",
				Probe: func(_ context.Context) error { return tt.probeErr },
			})
			engine := gin.New()
			engine.GET("/health", h.Check)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			resp := decode[HealthResponse](t, rec)
			if resp.Status != tt.wantState {
				t.Errorf("expected %s, got %s", tt.wantState, resp.Status)
			}
		})
	}
}
