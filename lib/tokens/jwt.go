package tokens

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// ContextKeyPubkey is where the middlewares store the caller pubkey.
const ContextKeyPubkey = "Pubkey"

type jwtCustomClaims struct {
	Pubkey string `json:"pubkey"`

	jwt.StandardClaims
}

// GenerateAccessToken : Generate Access Token
func GenerateAccessToken(secret []byte, expiryInSeconds int, pubkey string) (string, error) {
	claims := &jwtCustomClaims{
		Pubkey: pubkey,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Second * time.Duration(expiryInSeconds)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return t, nil
}

// ParseAccessToken returns the pubkey of a valid access token.
func ParseAccessToken(secret []byte, token string) (string, error) {
	claims := &jwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Pubkey == "" {
		return "", errors.New("invalid token")
	}
	return claims.Pubkey, nil
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

// Middleware rejects requests without a valid access token.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			pubkey, err := ParseAccessToken(secret, bearerToken(c))
			if err != nil {
				c.Logger().Debugf("Rejecting request: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, echo.Map{
					"error":   true,
					"code":    1,
					"message": "bad auth",
				})
			}
			c.Set(ContextKeyPubkey, pubkey)
			return next(c)
		}
	}
}

// OptionalMiddleware sets the caller pubkey when a valid access token is
// present and lets every request through.
func OptionalMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				pubkey, err := ParseAccessToken(secret, token)
				if err == nil {
					c.Set(ContextKeyPubkey, pubkey)
				} else {
					c.Logger().Debugf("Ignoring invalid access token: %v", err)
				}
			}
			return next(c)
		}
	}
}

// CallerPubkey is the authenticated pubkey, or "" when unauthenticated.
func CallerPubkey(c echo.Context) string {
	pubkey, _ := c.Get(ContextKeyPubkey).(string)
	return pubkey
}
