package rabbitmq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/relaytools/relaybilling/common"
	"github.com/relaytools/relaybilling/lib/ledger"
	"github.com/ziflex/lecho/v3"
)

// bufPool reuses encoding buffers across publishes.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

type Client interface {
	// PublishRelayBalances publishes one message per relay balance in the report.
	PublishRelayBalances(ctx context.Context, report *ledger.Report) error
	// Close will close all connections to rabbitmq
	Close() error
}

// RelayBalanceMessage is the body of a relay balance message.
type RelayBalanceMessage struct {
	RelayID             string    `json:"relay_id"`
	RelayName           string    `json:"relay_name"`
	OwnerPubkey         string    `json:"owner_pubkey"`
	Balance             float64   `json:"balance"`
	ClientPaymentsTotal int64     `json:"client_payments_total"`
	InArrears           bool      `json:"in_arrears"`
	DaysRemaining       float64   `json:"days_remaining"`
	CostPerDay          float64   `json:"cost_per_day"`
	GeneratedAt         time.Time `json:"generated_at"`
}

type DefaultClient struct {
	amqpClient AMQPClient

	logger *lecho.Logger

	balanceExchange string

	declareOnce sync.Once
	declareErr  error
}

type ClientOption = func(client *DefaultClient)

func WithBalanceExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.balanceExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (*DefaultClient, error) {
	if amqpClient == nil {
		return nil, errors.New("rabbitmq: amqp client is required")
	}
	client := &DefaultClient{
		amqpClient: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		balanceExchange: common.DefaultBalanceExchange,
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqpClient.Close() }

func (client *DefaultClient) declareExchange() error {
	client.declareOnce.Do(func() {
		client.declareErr = client.amqpClient.ExchangeDeclare(
			client.balanceExchange,
			// topic lets consumers bind on relay.balance.*
			"topic",
			// durable, not auto-deleted
			true,
			false,
			// non-internal exchanges accept direct publishing
			false,
			// wait for the server to confirm the declaration
			false,
			nil,
		)
	})
	return client.declareErr
}

// RoutingKey is relay.balance.arrears for relays in arrears and
// relay.balance.ok otherwise.
func RoutingKey(balance ledger.BalanceReport) string {
	if balance.InArrears {
		return common.RoutingKeyBalanceArrears
	}
	return common.RoutingKeyBalanceOK
}

func (client *DefaultClient) PublishRelayBalances(ctx context.Context, report *ledger.Report) error {
	if err := client.declareExchange(); err != nil {
		captureErr(client.logger, err)
		return err
	}

	var errs []error
	for _, balance := range report.Balances {
		if err := client.publishBalance(ctx, report, balance); err != nil {
			captureErr(client.logger, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (client *DefaultClient) publishBalance(ctx context.Context, report *ledger.Report, balance ledger.BalanceReport) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := json.NewEncoder(payload).Encode(RelayBalanceMessage{
		RelayID:             balance.RelayID,
		RelayName:           balance.RelayName,
		OwnerPubkey:         balance.OwnerPubkey,
		Balance:             balance.Balance,
		ClientPaymentsTotal: balance.ClientPaymentsTotal,
		InArrears:           balance.InArrears,
		DaysRemaining:       balance.DaysRemaining,
		CostPerDay:          report.CostPerDay,
		GeneratedAt:         report.GeneratedAt,
	})
	if err != nil {
		return err
	}

	err = client.amqpClient.PublishWithContext(ctx,
		client.balanceExchange,
		RoutingKey(balance),
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Timestamp:   report.GeneratedAt,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		return err
	}

	client.logger.Debugf("Successfully published balance to rabbitmq for relay %s", balance.RelayName)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
