package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var LoginRequiredError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "please login to view your invoices",
	HttpStatusCode: 401,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "not found",
	HttpStatusCode: 404,
}

var InvoiceExpiredError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invoice expired",
	HttpStatusCode: 400,
}

var InvoicePaidError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invoice already paid",
	HttpStatusCode: 400,
}

// Send writes the error response with its status code.
func (e ErrorResponse) Send(c echo.Context) error {
	return c.JSON(e.HttpStatusCode, e)
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("Pubkey", c.Get("Pubkey"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

// bad auth and client errors carrying code 1 are noise in sentry
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	switch msg := he.Message.(type) {
	case echo.Map:
		if code, ok := msg["code"].(int); ok && code == BadAuthError.Code {
			return false
		}
	case ErrorResponse:
		if msg.Code == BadAuthError.Code {
			return false
		}
	}
	return true
}
