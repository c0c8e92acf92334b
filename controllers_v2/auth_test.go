package v2controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nbd-wtf/go-nostr"
	"github.com/relaytools/relaybilling/lib/service"
	"github.com/relaytools/relaybilling/lib/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authEvent(t *testing.T, url string) nostr.Event {
	sk := nostr.GeneratePrivateKey()
	event := nostr.Event{
		Kind:      27235,
		CreatedAt: nostr.Now(),
		Tags:      nostr.Tags{{"u", url}, {"method", "POST"}},
	}
	require.NoError(t, event.Sign(sk))
	return event
}

func postAuth(t *testing.T, svc *service.BillingService, event nostr.Event) *httptest.ResponseRecorder {
	e := testEcho()
	e.POST("/v2/auth", NewAuthController(svc).Auth)

	body, err := json.Marshal(event)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v2/auth", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthIssuesToken(t *testing.T) {
	config := &service.Config{
		JWTSecret:            []byte("SECRET"),
		JWTAccessTokenExpiry: 3600,
		AuthEventMaxAge:      60,
		PublicUrl:            "https://relay.tools",
	}
	svc := &service.BillingService{Config: config}
	event := authEvent(t, "https://relay.tools/v2/auth")

	rec := postAuth(t, svc, event)
	require.Equal(t, http.StatusOK, rec.Code)

	var body AuthResponseBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	pubkey, err := tokens.ParseAccessToken(config.JWTSecret, body.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, event.PubKey, pubkey)
}

func TestAuthRejectsForeignUrl(t *testing.T) {
	config := &service.Config{
		JWTSecret:       []byte("SECRET"),
		AuthEventMaxAge: 60,
		PublicUrl:       "https://relay.tools",
	}
	svc := &service.BillingService{Config: config}

	rec := postAuth(t, svc, authEvent(t, "https://elsewhere.example/v2/auth"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
