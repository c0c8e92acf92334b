package v2controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/relaytools/relaybilling/lib"
	"github.com/relaytools/relaybilling/lib/ledger"
	"github.com/relaytools/relaybilling/lib/responses"
	"github.com/relaytools/relaybilling/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerHex = "3bf0c63fcb93463407af97a5e5ee64fa883d107ef9e558472c4eb9aaaefa459d"

func testEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	return e
}

func testReport(kind ledger.ScopeKind) *ledger.Report {
	generated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	paidAt := generated.Add(-24 * time.Hour)
	expiresAt := generated.Add(time.Hour)
	return &ledger.Report{
		Scope:       ledger.Scope{Kind: kind, Pubkey: ownerHex},
		GeneratedAt: generated,
		CostPerDay:  700,
		Balances: []ledger.BalanceReport{
			{OwnerPubkey: ownerHex, RelayName: "alice", RelayID: "r-alice", Balance: 1400, DaysRemaining: 2, ClientPaymentsTotal: 50},
			{OwnerPubkey: "not-hex", RelayName: "bob", RelayID: "r-bob", Balance: -10, InArrears: true},
		},
		Orders: []ledger.OrderView{
			{ID: "o1", RelayID: "r-alice", RelayName: "alice", State: ledger.StatePaid, PaidAt: &paidAt, Amount: 21000},
			{ID: "o2", RelayID: "r-alice", RelayName: "alice", State: ledger.StateUnpaid, ExpiresAt: &expiresAt, Amount: 21000, Actionable: true},
		},
	}
}

func TestNewBalancesResponseOwner(t *testing.T) {
	response := NewBalancesResponse(testReport(ledger.ScopeOwn), "")

	assert.False(t, response.IsAdmin)
	assert.Nil(t, response.Totals)
	assert.Equal(t, 700.0, response.CostPerDay)
	require.Len(t, response.RelayBalances, 2)
	assert.Equal(t, "npub180cvv07tjdrrgpa0j7j7tmnyl2yr6yr7l8j4s3evf6u64th6gkwsyjh6w6", response.RelayBalances[0].OwnerNpub)
	assert.Equal(t, int64(50), response.RelayBalances[0].ClientPayments)
	assert.Empty(t, response.RelayBalances[1].OwnerNpub)
	assert.True(t, response.RelayBalances[1].InArrears)
	assert.Len(t, response.Orders, 2)
}

func TestNewBalancesResponseAdminTotals(t *testing.T) {
	response := NewBalancesResponse(testReport(ledger.ScopePlatform), "")

	assert.True(t, response.IsAdmin)
	require.NotNil(t, response.Totals)
	assert.Equal(t, 1390.0, response.Totals.TotalBalance)
	assert.Equal(t, int64(50), response.Totals.TotalClientPayments)
	assert.Equal(t, 1, response.Totals.RelaysInArrears)
}

func TestNewBalancesResponseStateFilter(t *testing.T) {
	response := NewBalancesResponse(testReport(ledger.ScopeOwn), ledger.StateUnpaid)

	require.Len(t, response.Orders, 1)
	assert.Equal(t, "o2", response.Orders[0].ID)
	assert.True(t, response.Orders[0].Actionable)

	response = NewBalancesResponse(testReport(ledger.ScopeOwn), ledger.StateExpired)
	assert.NotNil(t, response.Orders)
	assert.Empty(t, response.Orders)
}

func TestBalancesRequiresLogin(t *testing.T) {
	e := testEcho()
	ctrl := NewBalanceController(&service.BillingService{Config: &service.Config{InvoiceAmount: 21000}})
	e.GET("/v2/balances", ctrl.Balances)

	req := httptest.NewRequest(http.MethodGet, "/v2/balances", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body responses.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, responses.LoginRequiredError.Message, body.Message)
}

func TestBalancesRejectsUnknownState(t *testing.T) {
	e := testEcho()
	ctrl := NewBalanceController(&service.BillingService{Config: &service.Config{InvoiceAmount: 21000}})
	e.GET("/v2/balances", ctrl.Balances)

	req := httptest.NewRequest(http.MethodGet, "/v2/balances?state=refunded", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
