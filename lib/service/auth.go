package service

import (
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/relaytools/relaybilling/lib/security"
	"github.com/relaytools/relaybilling/lib/tokens"
)

// Authenticate verifies a signed nostr auth event and issues an access
// token for its pubkey.
func (svc *BillingService) Authenticate(event nostr.Event) (accessToken string, err error) {
	err = security.VerifyAuthEvent(event, security.AuthEventExpectation{
		Url:    svc.Config.AuthUrl(),
		Method: "POST",
		MaxAge: time.Duration(svc.Config.AuthEventMaxAge) * time.Second,
		Now:    svc.now(),
	})
	if err != nil {
		return "", err
	}
	return tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, event.PubKey)
}
