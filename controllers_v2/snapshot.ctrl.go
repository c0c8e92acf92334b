package v2controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/relaytools/relaybilling/lib/responses"
	"github.com/relaytools/relaybilling/lib/service"
)

type SnapshotController struct {
	svc *service.BillingService
}

func NewSnapshotController(svc *service.BillingService) *SnapshotController {
	return &SnapshotController{svc: svc}
}

type SnapshotResponse struct {
	Result string `json:"result"`
}

// Snapshot godoc
// @Summary      Take a balance snapshot
// @Description  Refreshes the balance gauges and publishes every relay balance
// @Produce      json
// @Tags         Admin
// @Success      200  {object}  SnapshotResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/admin/snapshot [post]
func (controller *SnapshotController) Snapshot(c echo.Context) error {
	if err := controller.svc.TakeBalanceSnapshot(c.Request().Context()); err != nil {
		c.Logger().Errorf("Error taking balance snapshot: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}
	return c.JSON(http.StatusOK, &SnapshotResponse{Result: "OK"})
}
