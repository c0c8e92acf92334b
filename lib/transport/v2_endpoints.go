package transport

import (
	"github.com/labstack/echo/v4"
	v2controllers "github.com/relaytools/relaybilling/controllers_v2"
	"github.com/relaytools/relaybilling/lib/service"
)

func RegisterV2Endpoints(svc *service.BillingService, e *echo.Echo, optionalAuth *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.GET("/v2/health", v2controllers.NewHealthController().Check)
	e.POST("/v2/auth", v2controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware, logMw)

	orderCtrl := v2controllers.NewOrderController(svc)
	optionalAuth.GET("/v2/balances", v2controllers.NewBalanceController(svc).Balances)
	optionalAuth.GET("/v2/orders/:id", orderCtrl.GetOrder)
	optionalAuth.GET("/v2/orders/:id/qr", orderCtrl.GetOrderQR)

	e.POST("/v2/admin/snapshot", v2controllers.NewSnapshotController(svc).Snapshot, strictRateLimitMiddleware, adminMw, logMw)
}
