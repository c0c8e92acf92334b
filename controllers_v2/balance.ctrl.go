package v2controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nbd-wtf/go-nostr/nip19"
	"github.com/relaytools/relaybilling/lib/ledger"
	"github.com/relaytools/relaybilling/lib/responses"
	"github.com/relaytools/relaybilling/lib/service"
	"github.com/relaytools/relaybilling/lib/tokens"
)

// BalanceController : BalanceController struct
type BalanceController struct {
	svc *service.BillingService
}

func NewBalanceController(svc *service.BillingService) *BalanceController {
	return &BalanceController{svc: svc}
}

type BalancesQuery struct {
	State string `query:"state" validate:"omitempty,oneof=unpaid paid expired"`
}

type RelayBalanceResponse struct {
	Owner          string  `json:"owner"`
	OwnerNpub      string  `json:"owner_npub"`
	RelayName      string  `json:"relay_name"`
	RelayID        string  `json:"relay_id"`
	ClientPayments int64   `json:"client_payments"`
	Balance        float64 `json:"balance"`
	InArrears      bool    `json:"in_arrears"`
	DaysRemaining  float64 `json:"days_remaining"`
}

type OrderResponse struct {
	ID         string     `json:"id"`
	RelayID    string     `json:"relay_id"`
	RelayName  string     `json:"relay_name"`
	State      string     `json:"state"`
	Amount     int64      `json:"amount"`
	PaidAt     *time.Time `json:"paid_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	Actionable bool       `json:"actionable"`
}

type TotalsResponse struct {
	TotalBalance        float64 `json:"total_balance"`
	TotalClientPayments int64   `json:"total_client_payments"`
	RelaysInArrears     int     `json:"relays_in_arrears"`
}

type BalancesResponse struct {
	IsAdmin       bool                   `json:"is_admin"`
	GeneratedAt   time.Time              `json:"generated_at"`
	CostPerDay    float64                `json:"cost_per_day"`
	RelayBalances []RelayBalanceResponse `json:"relay_balances"`
	Orders        []OrderResponse        `json:"orders"`
	Totals        *TotalsResponse        `json:"totals,omitempty"`
}

// Balances godoc
// @Summary      Retrieve relay balances
// @Description  Balances of the relays and the orders visible to the caller
// @Accept       json
// @Produce      json
// @Tags         Balance
// @Param        state  query     string  false  "Only orders in this state (unpaid, paid, expired)"
// @Success      200    {object}  BalancesResponse
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      401    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v2/balances [get]
// @Security     OAuth2Password
func (controller *BalanceController) Balances(c echo.Context) error {
	var query BalancesQuery
	if err := c.Bind(&query); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&query); err != nil {
		c.Logger().Debugf("Invalid balances query: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	ctx := c.Request().Context()
	pubkey := tokens.CallerPubkey(c)
	scope, err := controller.svc.ResolveScope(ctx, pubkey)
	if err != nil {
		c.Logger().Errorf("Error resolving scope for %s: %v", pubkey, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	if !scope.Authenticated() {
		return c.JSON(http.StatusUnauthorized, responses.LoginRequiredError)
	}

	report, err := controller.svc.ReportFor(ctx, scope)
	if err != nil {
		c.Logger().Errorf("Error computing balances for %s: %v", pubkey, err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	state, _ := ledger.ParseState(query.State)
	return c.JSON(http.StatusOK, NewBalancesResponse(report, state))
}

// NewBalancesResponse renders a report. A non-empty state keeps only the
// orders in that state.
func NewBalancesResponse(report *ledger.Report, state ledger.State) *BalancesResponse {
	response := &BalancesResponse{
		IsAdmin:       report.Scope.IsAdmin(),
		GeneratedAt:   report.GeneratedAt,
		CostPerDay:    report.CostPerDay,
		RelayBalances: make([]RelayBalanceResponse, 0, len(report.Balances)),
		Orders:        make([]OrderResponse, 0, len(report.Orders)),
	}
	for _, b := range report.Balances {
		response.RelayBalances = append(response.RelayBalances, RelayBalanceResponse{
			Owner:          b.OwnerPubkey,
			OwnerNpub:      npub(b.OwnerPubkey),
			RelayName:      b.RelayName,
			RelayID:        b.RelayID,
			ClientPayments: b.ClientPaymentsTotal,
			Balance:        b.Balance,
			InArrears:      b.InArrears,
			DaysRemaining:  b.DaysRemaining,
		})
	}
	for _, o := range report.Orders {
		if state != "" && o.State != state {
			continue
		}
		response.Orders = append(response.Orders, newOrderResponse(o))
	}
	if response.IsAdmin {
		balance, clientPayments, inArrears := report.Totals()
		response.Totals = &TotalsResponse{
			TotalBalance:        balance,
			TotalClientPayments: clientPayments,
			RelaysInArrears:     inArrears,
		}
	}
	return response
}

func newOrderResponse(o ledger.OrderView) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		RelayID:    o.RelayID,
		RelayName:  o.RelayName,
		State:      string(o.State),
		Amount:     o.Amount,
		PaidAt:     o.PaidAt,
		ExpiresAt:  o.ExpiresAt,
		Actionable: o.Actionable,
	}
}

// npub falls back to "" for pubkeys that are not valid hex.
func npub(pubkey string) string {
	encoded, err := nip19.EncodePublicKey(pubkey)
	if err != nil {
		return ""
	}
	return encoded
}
