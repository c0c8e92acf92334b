package v2controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/relaytools/relaybilling/common"
	"github.com/relaytools/relaybilling/db/models"
	"github.com/relaytools/relaybilling/lib/ledger"
	"github.com/relaytools/relaybilling/lib/responses"
	"github.com/relaytools/relaybilling/lib/service"
	qrcode "github.com/skip2/go-qrcode"
)

// OrderController : OrderController struct
type OrderController struct {
	svc *service.BillingService
}

func NewOrderController(svc *service.BillingService) *OrderController {
	return &OrderController{svc: svc}
}

type OrderDetailResponse struct {
	OrderResponse
	PaymentHash     string `json:"payment_hash"`
	PaymentRequest  string `json:"payment_request"`
	PaymentsEnabled bool   `json:"payments_enabled"`
	RedirectTo      string `json:"redirect_to,omitempty"`
}

// GetOrder godoc
// @Summary      Retrieve an order
// @Description  Returns an order with its current state and payment request
// @Produce      json
// @Tags         Order
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  OrderDetailResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/orders/{id} [get]
func (controller *OrderController) GetOrder(c echo.Context) error {
	order, classification, err := controller.loadOrder(c)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	return c.JSON(http.StatusOK, NewOrderDetailResponse(order, classification, controller.svc.Config.PaymentsEnabled))
}

// GetOrderQR godoc
// @Summary      Payment request QR code
// @Description  PNG QR code of the payment request of an unpaid order
// @Produce      png
// @Tags         Order
// @Param        id   path      string  true  "Order id"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/orders/{id}/qr [get]
func (controller *OrderController) GetOrderQR(c echo.Context) error {
	order, classification, err := controller.loadOrder(c)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	if !classification.Actionable || order.Lnurl == "" {
		if classification.State == ledger.StatePaid {
			return c.JSON(http.StatusBadRequest, responses.InvoicePaidError)
		}
		return c.JSON(http.StatusBadRequest, responses.InvoiceExpiredError)
	}
	png, err := qrcode.Encode(order.Lnurl, qrcode.Medium, 256)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// loadOrder writes the error response itself and returns a nil order when
// the request is done.
func (controller *OrderController) loadOrder(c echo.Context) (*models.Order, ledger.Classification, error) {
	id := c.Param("id")
	order, classification, err := controller.svc.OrderDetail(c.Request().Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, classification, c.JSON(http.StatusNotFound, responses.NotFoundError)
	}
	if err != nil {
		c.Logger().Errorf("Error loading order %s: %v", id, err)
		return nil, classification, c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return order, classification, nil
}

func NewOrderDetailResponse(order *models.Order, classification ledger.Classification, paymentsEnabled bool) *OrderDetailResponse {
	response := &OrderDetailResponse{
		OrderResponse: OrderResponse{
			ID:         order.ID,
			RelayID:    order.RelayID,
			State:      string(classification.State),
			Amount:     order.Amount,
			PaidAt:     models.NullTimePtr(order.PaidAt),
			ExpiresAt:  models.NullTimePtr(order.ExpiresAt),
			Actionable: classification.Actionable,
		},
		PaymentHash:     order.PaymentHash,
		PaymentRequest:  order.Lnurl,
		PaymentsEnabled: paymentsEnabled,
	}
	if order.Relay != nil {
		response.RelayName = order.Relay.Name
	}
	if !paymentsEnabled {
		response.RedirectTo = common.CuratorPath + "?relay_id=" + url.QueryEscape(order.RelayID)
	}
	return response
}
