package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/transfer-desk/backend/config"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "sqlite:///tmp/desk.db", want: "sqlite"},
		{url: "postgres://u:p@localhost:5432/desk?sslmode=disable", want: "postgres"},
		{url: "host=localhost user=u dbname=desk", want: "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if _, got := dialectorFor(tt.url); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestConnect_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	database, err := Connect(&config.DatabaseConfig{URL: sqlitePrefix + path, MaxOpenConns: 10})
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	for _, m := range []any{&model.UserModel{}, &model.ClientModel{}, &model.TransactionModel{}, &model.DailyBalanceModel{}} {
		if !database.DB().Migrator().HasTable(m) {
			t.Errorf("expected table for %T", m)
		}
	}
	if err := database.Ping(context.Background()); err != nil {
		t.Errorf("ping failed: %v", err)
	}
}

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + server.Addr()})
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer client.Close()

	if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got := server.Exists("k"); !got {
		t.Error("expected key to reach the server")
	}

	t.Run("unparseable url", func(t *testing.T) {
		if _, err := NewRedisClient(&config.RedisConfig{URL: "::nope"}); err == nil {
			t.Error("expected error")
		}
	})
}
