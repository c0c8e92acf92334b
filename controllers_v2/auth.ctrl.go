package v2controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nbd-wtf/go-nostr"
	"github.com/relaytools/relaybilling/lib/responses"
	"github.com/relaytools/relaybilling/lib/service"
)

// AuthController : AuthController struct
type AuthController struct {
	svc *service.BillingService
}

func NewAuthController(svc *service.BillingService) *AuthController {
	return &AuthController{svc: svc}
}

type AuthResponseBody struct {
	AccessToken string `json:"access_token"`
}

// Auth godoc
// @Summary      Authenticate
// @Description  Exchanges a signed nostr http auth event for an access token
// @Accept       json
// @Produce      json
// @Tags         Auth
// @Param        event  body      nostr.Event  True  "Signed kind 27235 event"
// @Success      200    {object}  AuthResponseBody
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      401    {object}  responses.ErrorResponse
// @Router       /v2/auth [post]
func (controller *AuthController) Auth(c echo.Context) error {
	var event nostr.Event
	if err := c.Bind(&event); err != nil {
		c.Logger().Errorf("Failed to load auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	accessToken, err := controller.svc.Authenticate(event)
	if err != nil {
		c.Logger().Debugf("Rejecting auth event from %s: %v", event.PubKey, err)
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}

	return c.JSON(http.StatusOK, &AuthResponseBody{AccessToken: accessToken})
}
