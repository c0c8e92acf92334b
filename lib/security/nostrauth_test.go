package security

import (
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authUrl = "https://billing.example.com/v2/auth"

func signedAuthEvent(t *testing.T, createdAt time.Time, url, method string) nostr.Event {
	sk := nostr.GeneratePrivateKey()
	pk, err := nostr.GetPublicKey(sk)
	require.NoError(t, err)
	event := nostr.Event{
		PubKey:    pk,
		CreatedAt: nostr.Timestamp(createdAt.Unix()),
		Kind:      AuthEventKind,
		Tags:      nostr.Tags{{"u", url}, {"method", method}},
	}
	require.NoError(t, event.Sign(sk))
	return event
}

func expectation(now time.Time) AuthEventExpectation {
	return AuthEventExpectation{Url: authUrl, Method: "POST", MaxAge: time.Minute, Now: now}
}

func TestVerifyAuthEventAcceptsFreshEvent(t *testing.T) {
	now := time.Now()
	event := signedAuthEvent(t, now.Add(-10*time.Second), authUrl, "POST")

	assert.NoError(t, VerifyAuthEvent(event, expectation(now)))
}

func TestVerifyAuthEventRejectsStaleEvent(t *testing.T) {
	now := time.Now()
	event := signedAuthEvent(t, now.Add(-2*time.Minute), authUrl, "POST")

	assert.ErrorIs(t, VerifyAuthEvent(event, expectation(now)), ErrBadAuthEvent)
}

func TestVerifyAuthEventRejectsOtherUrl(t *testing.T) {
	now := time.Now()
	event := signedAuthEvent(t, now, "https://evil.example.com/v2/auth", "POST")

	assert.ErrorIs(t, VerifyAuthEvent(event, expectation(now)), ErrBadAuthEvent)
}

func TestVerifyAuthEventRejectsOtherMethod(t *testing.T) {
	now := time.Now()
	event := signedAuthEvent(t, now, authUrl, "GET")

	assert.ErrorIs(t, VerifyAuthEvent(event, expectation(now)), ErrBadAuthEvent)
}

func TestVerifyAuthEventRejectsTamperedEvent(t *testing.T) {
	now := time.Now()
	event := signedAuthEvent(t, now, authUrl, "POST")
	other := signedAuthEvent(t, now, authUrl, "POST")
	// claim someone else's identity with our signature
	event.PubKey = other.PubKey

	assert.ErrorIs(t, VerifyAuthEvent(event, expectation(now)), ErrBadAuthEvent)
}

func TestVerifyAuthEventRejectsWrongKind(t *testing.T) {
	now := time.Now()
	event := signedAuthEvent(t, now, authUrl, "POST")
	event.Kind = nostr.KindTextNote

	assert.ErrorIs(t, VerifyAuthEvent(event, expectation(now)), ErrBadAuthEvent)
}
