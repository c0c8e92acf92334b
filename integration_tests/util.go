package integration_tests

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nbd-wtf/go-nostr"
	"github.com/relaytools/relaybilling/db"
	"github.com/relaytools/relaybilling/db/migrations"
	"github.com/relaytools/relaybilling/db/models"
	"github.com/relaytools/relaybilling/lib"
	"github.com/relaytools/relaybilling/lib/service"
	"github.com/relaytools/relaybilling/lib/tokens"
	"github.com/relaytools/relaybilling/lib/transport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

const (
	invoiceAmount = 21000 // 700 sats per day
	day           = 24 * time.Hour
)

// fixed instant all fixtures are relative to
var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// BillingTestServiceInit connects to DATABASE_URI and migrates it. Returns
// a nil service when no database is configured.
func BillingTestServiceInit() (svc *service.BillingService, err error) {
	dbUri, ok := os.LookupEnv("DATABASE_URI")
	if !ok {
		return nil, nil
	}
	c := &service.Config{
		DatabaseUri:             dbUri,
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 10,
		InvoiceAmount:           invoiceAmount,
		PaymentsEnabled:         true,
		JWTSecret:               []byte("SECRET"),
		JWTAccessTokenExpiry:    3600,
		AuthEventMaxAge:         60,
		AdminToken:              "operator",
		Host:                    "localhost:3000",
		DefaultRateLimit:        1000,
		StrictRateLimit:         1000,
		BurstRateLimit:          1000,
		ParallelRelayThreshold:  2,
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := lib.Logger(c.LogFilePath)
	svc = &service.BillingService{
		Config: c,
		DB:     dbConn,
		Logger: logger,
		Clock:  func() time.Time { return testNow },
	}
	return svc, nil
}

func newTestEcho(svc *service.BillingService) *echo.Echo {
	e := transport.InitEcho(svc.Config, svc.Logger)
	logMw := transport.CreateLoggingMiddleware(svc.Logger)
	strict := transport.CreateRateLimitMiddleware(svc.Config.StrictRateLimit, svc.Config.BurstRateLimit)
	optionalAuth := e.Group("", tokens.OptionalMiddleware(svc.Config.JWTSecret), logMw)
	transport.RegisterV2Endpoints(svc, e, optionalAuth, strict, tokens.AdminTokenMiddleware(svc.Config.AdminToken), logMw)
	return e
}

func clearTables(svc *service.BillingService) error {
	for _, table := range []string{"client_orders", "orders", "relays", "users"} {
		if _, err := svc.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return err
		}
	}
	return nil
}

type testUser struct {
	model  *models.User
	secret string
}

func newTestUser(id string, admin bool) testUser {
	sk := nostr.GeneratePrivateKey()
	pk, _ := nostr.GetPublicKey(sk)
	return testUser{
		model:  &models.User{ID: id, Pubkey: pk, Admin: admin},
		secret: sk,
	}
}

func nullTime(t time.Time) bun.NullTime {
	return bun.NullTime{Time: t}
}

// request serves a request with an optional bearer token.
func request(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func accessToken(svc *service.BillingService, user testUser) (string, error) {
	return tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, user.model.Pubkey)
}
