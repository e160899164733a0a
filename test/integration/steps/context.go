// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/transfer-desk/backend/config"
	"github.com/transfer-desk/backend/internal/infra/dependency"
	"github.com/transfer-desk/backend/internal/integration/adapters"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
	"github.com/transfer-desk/backend/test/integration/mock"
)

const (
	testJWTSecret      = "test-jwt-secret-key-for-testing-purposes"
	testExportPassword = "recap-2024"
	testTimezone       = "Africa/Dakar"
)

// testContext holds the state of one scenario.
type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	redis    *mock.Redis
	timeMock *mock.Time
	cfg      *config.Config

	accessToken       string
	refreshToken      string
	clientIDs         map[string]uuid.UUID
	userIDs           map[string]uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

var (
	serverInit sync.Once
	testServer *httptest.Server
	testDB     *mock.Db
	testRedis  *mock.Redis
	testClock  *mock.Time
	testConfig *config.Config
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	startServer()

	test := &testContext{
		uri:      testServer.URL,
		client:   &http.Client{Timeout: 10 * time.Second},
		db:       testDB,
		redis:    testRedis,
		timeMock: testClock,
		cfg:      testConfig,
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// User setup steps
	ctx.Given(`^an admin "([^"]*)" exists with password "([^"]*)"$`, test.anAdminExistsWithPassword)
	ctx.Given(`^an operator "([^"]*)" exists with password "([^"]*)"$`, test.anOperatorExistsWithPassword)
	ctx.Given(`^the user "([^"]*)" is blocked$`, test.theUserIsBlocked)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAsWithPassword)

	// Ledger setup steps
	ctx.Given(`^a client "([^"]*)" exists$`, test.aClientExists)
	ctx.Given(`^the client "([^"]*)" was sent "([^"]*)" to pay "([^"]*)" on "([^"]*)"$`, test.theClientWasSentToPayOn)
	ctx.Given(`^the client "([^"]*)" paid "([^"]*)" on "([^"]*)"$`, test.theClientPaidOn)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, test.theResponseHeaderShouldBe)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)
	ctx.Then(`^the response body should contain the text "([^"]*)"$`, test.theResponseBodyShouldContainTheText)

	// Storage assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the summary cache should hold (\d+) entr(?:y|ies)$`, test.theSummaryCacheShouldHoldEntries)
}

func startServer() {
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Business.Timezone = testTimezone

		exportHash, err := adapters.NewPasswordService(cfg.Business.MinPasswordLength).HashPassword(testExportPassword)
		if err != nil {
			panic(err)
		}
		cfg.Export.PasswordHash = exportHash
		cfg.Export.DefaultFormat = "text"

		testConfig = cfg
		testClock = mock.NewTime(cfg.Business.Location())
		testRedis = mock.NewRedis()
		testDB = mock.NewDb("transfer_desk", map[string]any{
			"app_users":      &model.UserModel{},
			"refresh_tokens": &model.RefreshTokenModel{},
			"clients":        &model.ClientModel{},
			"transactions":   &model.TransactionModel{},
			"daily_balances": &model.DailyBalanceModel{},
		})

		injector := dependency.NewInjector(cfg, testDB.DbConn, testRedis.Client, dependency.WithClock(testClock))
		testServer = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.clientIDs = make(map[string]uuid.UUID)
	t.userIDs = make(map[string]uuid.UUID)
	t.lastTransactionID = uuid.Nil

	t.timeMock.Reset()

	if err := t.redis.Clear(); err != nil {
		return err
	}
	return t.db.ClearDB()
}
