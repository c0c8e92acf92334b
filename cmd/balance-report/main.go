package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/relaytools/relaybilling/db"
	"github.com/relaytools/relaybilling/lib"
	"github.com/relaytools/relaybilling/lib/ledger"
	"github.com/relaytools/relaybilling/lib/service"
	"github.com/relaytools/relaybilling/rabbitmq"
	"github.com/sirupsen/logrus"
)

// Prints the platform wide balance report as JSON.
//
//	RELAY_ID=<id>       only this relay
//	ONLY_ARREARS=true   only relays in arrears
//	PUBLISH=true        also publish the selected balances to rabbitmq
func main() {

	c := &service.Config{}
	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		logrus.Fatalf("Error loading environment variables: %v", err)
	}
	logger := lib.Logger(c.LogFilePath)

	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn: c.SentryDSN,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	svc := &service.BillingService{
		Config: c,
		DB:     dbConn,
		Logger: logger,
	}

	ctx := context.Background()
	report, err := svc.PlatformReport(ctx)
	if err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		logger.Fatalf("Error computing balances: %v", err)
	}
	filterBalances(report, os.Getenv("RELAY_ID"), os.Getenv("ONLY_ARREARS") == "true")
	_, _, inArrears := report.Totals()
	logrus.Infof("Found %d relays, %d in arrears", len(report.Balances), inArrears)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report.Balances); err != nil {
		logger.Fatal(err)
	}

	if os.Getenv("PUBLISH") != "true" {
		return
	}
	amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAmqpLogger(logger))
	if err != nil {
		logger.Fatal(err)
	}
	rabbitmqClient, err := rabbitmq.NewClient(amqpClient,
		rabbitmq.WithLogger(logger),
		rabbitmq.WithBalanceExchange(c.RabbitMQBalanceExchange),
	)
	if err != nil {
		logger.Fatal(err)
	}
	// close the connection gently at the end of the runtime
	defer rabbitmqClient.Close()

	if err := publishBalances(ctx, rabbitmqClient, report); err != nil {
		sentry.CaptureException(err)
		logrus.Error(err)
	}
}

func publishBalances(ctx context.Context, client rabbitmq.Client, report *ledger.Report) error {
	if err := client.PublishRelayBalances(ctx, report); err != nil {
		return fmt.Errorf("failed to publish relay balances: %w", err)
	}
	logrus.Infof("Published %d relay balances", len(report.Balances))
	return nil
}

// filterBalances keeps the balances of relayID (all when empty) and, with
// onlyArrears, only those in arrears.
func filterBalances(report *ledger.Report, relayID string, onlyArrears bool) {
	kept := report.Balances[:0]
	for _, b := range report.Balances {
		if relayID != "" && b.RelayID != relayID {
			continue
		}
		if onlyArrears && !b.InArrears {
			continue
		}
		kept = append(kept, b)
	}
	report.Balances = kept
}
