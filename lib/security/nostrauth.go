package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nbd-wtf/go-nostr"
)

// AuthEventKind is the NIP-98 HTTP auth event kind.
const AuthEventKind = 27235

var ErrBadAuthEvent = errors.New("bad auth event")

type AuthEventExpectation struct {
	Url    string
	Method string
	MaxAge time.Duration
	Now    time.Time
}

// VerifyAuthEvent checks that event is a fresh, correctly signed NIP-98
// event for the expected url and method.
func VerifyAuthEvent(event nostr.Event, expect AuthEventExpectation) error {
	if event.Kind != AuthEventKind {
		return fmt.Errorf("%w: unexpected kind %d", ErrBadAuthEvent, event.Kind)
	}
	created := event.CreatedAt.Time()
	age := expect.Now.Sub(created)
	if age < 0 {
		age = -age
	}
	if age > expect.MaxAge {
		return fmt.Errorf("%w: created_at %s is outside of the allowed window", ErrBadAuthEvent, created)
	}
	u := event.Tags.GetFirst([]string{"u", ""})
	if u == nil || strings.TrimSuffix(u.Value(), "/") != strings.TrimSuffix(expect.Url, "/") {
		return fmt.Errorf("%w: u tag does not match %s", ErrBadAuthEvent, expect.Url)
	}
	method := event.Tags.GetFirst([]string{"method", ""})
	if method == nil || !strings.EqualFold(method.Value(), expect.Method) {
		return fmt.Errorf("%w: method tag does not match %s", ErrBadAuthEvent, expect.Method)
	}
	if event.GetID() != event.ID {
		return fmt.Errorf("%w: id does not match content", ErrBadAuthEvent)
	}
	ok, err := event.CheckSignature()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadAuthEvent, err)
	}
	if !ok {
		return fmt.Errorf("%w: invalid signature", ErrBadAuthEvent)
	}
	return nil
}
