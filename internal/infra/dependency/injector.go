// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/transfer-desk/backend/config"
	"github.com/transfer-desk/backend/internal/application/adapter"
	"github.com/transfer-desk/backend/internal/application/usecase/auth"
	"github.com/transfer-desk/backend/internal/application/usecase/client"
	"github.com/transfer-desk/backend/internal/application/usecase/dailybalance"
	exportusecase "github.com/transfer-desk/backend/internal/application/usecase/export"
	"github.com/transfer-desk/backend/internal/application/usecase/maintenance"
	"github.com/transfer-desk/backend/internal/application/usecase/summary"
	"github.com/transfer-desk/backend/internal/application/usecase/transaction"
	"github.com/transfer-desk/backend/internal/application/usecase/user"
	"github.com/transfer-desk/backend/internal/infra/db"
	"github.com/transfer-desk/backend/internal/infra/server/router"
	"github.com/transfer-desk/backend/internal/integration/adapters"
	"github.com/transfer-desk/backend/internal/integration/cache"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/controller"
	"github.com/transfer-desk/backend/internal/integration/entrypoint/middleware"
	"github.com/transfer-desk/backend/internal/integration/export"
	"github.com/transfer-desk/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Router           *router.Router
	LoginRateLimiter *middleware.RateLimiter
	TokenService     adapter.TokenService
}

// Option customizes the injector, mainly for tests.
type Option func(*options)

type options struct {
	clock adapter.Clock
}

// WithClock replaces the business clock.
func WithClock(clock adapter.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redisClient disables the summary cache.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client, opts ...Option) *Injector {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewRefreshTokenRepository(gormDB)
	clientRepo := persistence.NewClientRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	dailyBalanceRepo := persistence.NewDailyBalanceRepository(gormDB)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.Business.MinPasswordLength)
	tokenService := adapters.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		tokenRepo,
	)
	clock := o.clock
	if clock == nil {
		clock = adapters.NewBusinessClock(cfg.Business.Location())
	}
	summaryCache := cache.NewNoopSummaryCache()
	if redisClient != nil {
		summaryCache = cache.NewRedisSummaryCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.TTL)
	}
	formatter := export.NewReportFormatter(cfg.Business.CurrencyLabel)

	// Create auth use cases
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create user use cases
	createUserUseCase := user.NewCreateUserUseCase(userRepo, passwordService)
	listUsersUseCase := user.NewListUsersUseCase(userRepo)
	updateUserUseCase := user.NewUpdateUserUseCase(userRepo, passwordService, tokenService)
	toggleBlockUseCase := user.NewToggleBlockUseCase(userRepo, tokenService)
	deactivateUserUseCase := user.NewDeactivateUserUseCase(userRepo, tokenService)

	// Create client use cases
	createClientUseCase := client.NewCreateClientUseCase(clientRepo)
	renameClientUseCase := client.NewRenameClientUseCase(clientRepo, summaryCache)
	deleteClientUseCase := client.NewDeleteClientUseCase(clientRepo, summaryCache)
	searchClientsUseCase := client.NewSearchClientsUseCase(clientRepo)

	// Create transaction use cases
	recordSendUseCase := transaction.NewRecordSendUseCase(transactionRepo, clientRepo, summaryCache, clock)
	recordPaymentUseCase := transaction.NewRecordPaymentUseCase(transactionRepo, clientRepo, summaryCache, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, summaryCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, summaryCache)
	listClientTransactionsUseCase := transaction.NewListClientTransactionsUseCase(transactionRepo, clientRepo)

	// Create daily balance use cases
	listDailyBalancesUseCase := dailybalance.NewListDailyBalancesUseCase(dailyBalanceRepo, clock)
	upsertDailyBalanceUseCase := dailybalance.NewUpsertDailyBalanceUseCase(dailyBalanceRepo)
	renameDailyBalanceUseCase := dailybalance.NewRenameDailyBalanceUseCase(dailyBalanceRepo)

	// Create summary use cases
	getSummariesUseCase := summary.NewGetSummariesUseCase(transactionRepo, summaryCache, clock)
	getClientSummaryUseCase := summary.NewGetClientSummaryUseCase(transactionRepo, clientRepo, clock)
	getDateStatusesUseCase := summary.NewGetDateStatusesUseCase(transactionRepo, clock)
	getDashboardUseCase := summary.NewGetDashboardUseCase(getSummariesUseCase, listDailyBalancesUseCase, clock)

	// Create export and maintenance use cases
	exportSummaryUseCase := exportusecase.NewExportSummaryUseCase(
		transactionRepo,
		passwordService,
		formatter,
		cfg.Export.PasswordHash,
		adapter.ReportFormat(cfg.Export.DefaultFormat),
	)
	archiveTransactionsUseCase := maintenance.NewArchiveTransactionsUseCase(
		transactionRepo,
		summaryCache,
		clock,
		cfg.Business.ArchiveMonths,
	)

	// Create controllers
	checks := []controller.HealthCheck{
		{Name: "database", Probe: db.NewDatabase(gormDB).Ping},
	}
	if redisClient != nil {
		checks = append(checks, controller.HealthCheck{
			Name: "redis",
			Probe: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		})
	}
	healthController := controller.NewHealthController(checks...)

	authController := controller.NewAuthController(
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		createUserUseCase,
		listUsersUseCase,
		updateUserUseCase,
		toggleBlockUseCase,
		deactivateUserUseCase,
	)

	clientController := controller.NewClientController(
		createClientUseCase,
		renameClientUseCase,
		deleteClientUseCase,
		searchClientsUseCase,
	)

	transactionController := controller.NewTransactionController(
		recordSendUseCase,
		recordPaymentUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		listClientTransactionsUseCase,
	)

	summaryController := controller.NewSummaryController(
		getSummariesUseCase,
		getClientSummaryUseCase,
		getDateStatusesUseCase,
		getDashboardUseCase,
	)

	exportController := controller.NewExportController(exportSummaryUseCase)

	dailyBalanceController := controller.NewDailyBalanceController(
		listDailyBalancesUseCase,
		upsertDailyBalanceUseCase,
		renameDailyBalanceUseCase,
	)

	maintenanceController := controller.NewMaintenanceController(archiveTransactionsUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		clientController,
		transactionController,
		summaryController,
		exportController,
		dailyBalanceController,
		maintenanceController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:           cfg,
		DB:               gormDB,
		Router:           r,
		LoginRateLimiter: loginRateLimiter,
		TokenService:     tokenService,
	}
}
