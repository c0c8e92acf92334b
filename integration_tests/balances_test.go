package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/nbd-wtf/go-nostr"
	v2controllers "github.com/relaytools/relaybilling/controllers_v2"
	"github.com/relaytools/relaybilling/db/models"
	"github.com/relaytools/relaybilling/lib/responses"
	"github.com/relaytools/relaybilling/lib/security"
	"github.com/relaytools/relaybilling/lib/service"
	"github.com/relaytools/relaybilling/rabbitmq"
	"github.com/relaytools/relaybilling/rabbitmq/mock_rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BalancesTestSuite struct {
	suite.Suite
	Service *service.BillingService
	echo    *echo.Echo
	alice   testUser
	bob     testUser
	admin   testUser
}

func (suite *BalancesTestSuite) SetupSuite() {
	svc, err := BillingTestServiceInit()
	require.NoError(suite.T(), err)
	if svc == nil {
		suite.T().Skip("DATABASE_URI not set")
	}
	suite.Service = svc
	suite.echo = newTestEcho(svc)
	require.NoError(suite.T(), clearTables(svc))

	suite.alice = newTestUser("u-alice", false)
	suite.bob = newTestUser("u-bob", false)
	suite.admin = newTestUser("u-admin", true)

	ctx := context.Background()
	users := []*models.User{suite.alice.model, suite.bob.model, suite.admin.model}
	_, err = svc.DB.NewInsert().Model(&users).Exec(ctx)
	require.NoError(suite.T(), err)

	relays := []*models.Relay{
		{ID: "r-alice", Name: "alice", OwnerID: "u-alice", Status: "running"},
		{ID: "r-bob", Name: "bob", OwnerID: "u-bob", Status: "running"},
		{ID: "r-bob-old", Name: "bob-old", OwnerID: "u-bob", Status: "paused"},
	}
	_, err = svc.DB.NewInsert().Model(&relays).Exec(ctx)
	require.NoError(suite.T(), err)

	orders := []*models.Order{
		// alice paid one month 15 days ago: 21000 - 15*700 = 10500, plus client payments
		{ID: "o-alice-paid", RelayID: "r-alice", UserID: "u-alice", Amount: invoiceAmount, Paid: true, PaidAt: nullTime(testNow.Add(-15 * day))},
		{ID: "o-alice-open", RelayID: "r-alice", UserID: "u-alice", Amount: invoiceAmount, ExpiresAt: nullTime(testNow.Add(time.Hour)), Lnurl: "lnbc210u1popen", PaymentHash: "open"},
		{ID: "o-alice-expired", RelayID: "r-alice", UserID: "u-alice", Amount: invoiceAmount, ExpiresAt: nullTime(testNow.Add(-time.Hour)), Lnurl: "lnbc210u1pexpired"},
		// bob paid one month 60 days ago: 21000 - 60*700 = -21000
		{ID: "o-bob-paid", RelayID: "r-bob", UserID: "u-bob", Amount: invoiceAmount, Paid: true, PaidAt: nullTime(testNow.Add(-60 * day))},
		{ID: "o-bob-old", RelayID: "r-bob-old", UserID: "u-bob", Amount: invoiceAmount, Paid: true, PaidAt: nullTime(testNow.Add(-90 * day))},
	}
	_, err = svc.DB.NewInsert().Model(&orders).Exec(ctx)
	require.NoError(suite.T(), err)

	clientOrders := []*models.ClientOrder{
		{ID: "co-1", RelayID: "r-alice", Pubkey: suite.bob.model.Pubkey, Amount: 7000, Paid: true, PaidAt: nullTime(testNow.Add(-2 * day))},
		{ID: "co-2", RelayID: "r-alice", Pubkey: suite.bob.model.Pubkey, Amount: 7000},
	}
	_, err = svc.DB.NewInsert().Model(&clientOrders).Exec(ctx)
	require.NoError(suite.T(), err)
}

func (suite *BalancesTestSuite) TearDownSuite() {
	if suite.Service != nil {
		clearTables(suite.Service)
	}
}

func (suite *BalancesTestSuite) balances(user testUser, query string) (*httptest.ResponseRecorder, *v2controllers.BalancesResponse) {
	token, err := accessToken(suite.Service, user)
	require.NoError(suite.T(), err)
	rec := request(suite.echo, http.MethodGet, "/v2/balances"+query, token)
	body := &v2controllers.BalancesResponse{}
	if rec.Code == http.StatusOK {
		require.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(body))
	}
	return rec, body
}

func (suite *BalancesTestSuite) TestUnauthenticated() {
	rec := request(suite.echo, http.MethodGet, "/v2/balances", "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	errResponse := &responses.ErrorResponse{}
	require.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errResponse))
	assert.Equal(suite.T(), "please login to view your invoices", errResponse.Message)
}

func (suite *BalancesTestSuite) TestUnknownPubkeySeesNothing() {
	stranger := newTestUser("u-stranger", false)
	rec, _ := suite.balances(stranger, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *BalancesTestSuite) TestOwnerSeesOwnRelays() {
	rec, body := suite.balances(suite.alice, "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	assert.False(suite.T(), body.IsAdmin)
	assert.Nil(suite.T(), body.Totals)
	assert.Equal(suite.T(), 700.0, body.CostPerDay)
	require.Len(suite.T(), body.RelayBalances, 1)
	balance := body.RelayBalances[0]
	assert.Equal(suite.T(), "r-alice", balance.RelayID)
	assert.Equal(suite.T(), int64(7000), balance.ClientPayments)
	assert.InDelta(suite.T(), 17500.0, balance.Balance, 1e-6)
	assert.InDelta(suite.T(), 25.0, balance.DaysRemaining, 1e-6)
	assert.False(suite.T(), balance.InArrears)

	require.Len(suite.T(), body.Orders, 3)
	states := map[string]string{}
	for _, o := range body.Orders {
		states[o.ID] = o.State
	}
	assert.Equal(suite.T(), map[string]string{
		"o-alice-paid":    "paid",
		"o-alice-open":    "unpaid",
		"o-alice-expired": "expired",
	}, states)
}

func (suite *BalancesTestSuite) TestOrdersStateFilter() {
	rec, body := suite.balances(suite.alice, "?state=unpaid")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	require.Len(suite.T(), body.Orders, 1)
	assert.Equal(suite.T(), "o-alice-open", body.Orders[0].ID)
	assert.True(suite.T(), body.Orders[0].Actionable)

	rec, _ = suite.balances(suite.alice, "?state=refunded")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *BalancesTestSuite) TestBobInArrears() {
	rec, body := suite.balances(suite.bob, "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	// the paused relay is not reported
	require.Len(suite.T(), body.RelayBalances, 1)
	assert.Equal(suite.T(), "r-bob", body.RelayBalances[0].RelayID)
	assert.InDelta(suite.T(), -21000.0, body.RelayBalances[0].Balance, 1e-6)
	assert.True(suite.T(), body.RelayBalances[0].InArrears)
	assert.Equal(suite.T(), 0.0, body.RelayBalances[0].DaysRemaining)
	// orders of paused relays are still listed
	assert.Len(suite.T(), body.Orders, 2)
}

func (suite *BalancesTestSuite) TestAdminSeesPlatform() {
	rec, body := suite.balances(suite.admin, "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	assert.True(suite.T(), body.IsAdmin)
	assert.Len(suite.T(), body.RelayBalances, 2)
	assert.Len(suite.T(), body.Orders, 5)
	require.NotNil(suite.T(), body.Totals)
	assert.InDelta(suite.T(), -3500.0, body.Totals.TotalBalance, 1e-6)
	assert.Equal(suite.T(), int64(7000), body.Totals.TotalClientPayments)
	assert.Equal(suite.T(), 1, body.Totals.RelaysInArrears)
	for _, b := range body.RelayBalances {
		assert.NotEmpty(suite.T(), b.OwnerNpub)
	}
}

func (suite *BalancesTestSuite) TestOrderDetail() {
	rec := request(suite.echo, http.MethodGet, "/v2/orders/o-alice-open", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	body := &v2controllers.OrderDetailResponse{}
	require.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(body))
	assert.Equal(suite.T(), "unpaid", body.State)
	assert.Equal(suite.T(), "alice", body.RelayName)
	assert.Equal(suite.T(), "lnbc210u1popen", body.PaymentRequest)
	assert.True(suite.T(), body.PaymentsEnabled)

	rec = request(suite.echo, http.MethodGet, "/v2/orders/nope", "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *BalancesTestSuite) TestOrderQR() {
	rec := request(suite.echo, http.MethodGet, "/v2/orders/o-alice-open/qr", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(suite.T(), bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = request(suite.echo, http.MethodGet, "/v2/orders/o-alice-expired/qr", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	rec = request(suite.echo, http.MethodGet, "/v2/orders/o-alice-paid/qr", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *BalancesTestSuite) TestAuthFlow() {
	event := nostr.Event{
		Kind:      security.AuthEventKind,
		CreatedAt: nostr.Timestamp(testNow.Unix()),
		Tags:      nostr.Tags{{"u", suite.Service.Config.AuthUrl()}, {"method", "POST"}},
	}
	require.NoError(suite.T(), event.Sign(suite.alice.secret))

	var buf bytes.Buffer
	require.NoError(suite.T(), json.NewEncoder(&buf).Encode(event))
	req := httptest.NewRequest(http.MethodPost, "/v2/auth", &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	auth := &v2controllers.AuthResponseBody{}
	require.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(auth))

	rec = request(suite.echo, http.MethodGet, "/v2/balances", auth.AccessToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *BalancesTestSuite) TestSnapshotPublishesBalances() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	amqpClient := mock_rabbitmq.NewMockAMQPClient(ctrl)
	client, err := rabbitmq.NewClient(amqpClient, rabbitmq.WithLogger(suite.Service.Logger))
	require.NoError(suite.T(), err)
	amqpClient.EXPECT().
		ExchangeDeclare(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	amqpClient.EXPECT().
		PublishWithContext(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(2).
		Return(nil)

	suite.Service.RabbitMQClient = client
	defer func() { suite.Service.RabbitMQClient = nil }()

	rec := request(suite.echo, http.MethodPost, "/v2/admin/snapshot", "nope")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)

	rec = request(suite.echo, http.MethodPost, "/v2/admin/snapshot", suite.Service.Config.AdminToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func TestBalancesSuite(t *testing.T) {
	suite.Run(t, new(BalancesTestSuite))
}
