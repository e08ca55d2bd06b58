package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/usercore/account-service/internal/core/ports"
)

// ContextKeySession is the echo context key under which the bound session
// view is stored.
const ContextKeySession = "session"

// ContextKeySessionID holds the raw session identifier.
const ContextKeySessionID = "session_id"

const claimSessionID = "sid"

// MintSessionToken issues the bearer token a client presents on
// authenticated requests: an HS256 JWT carrying the session identifier.
func MintSessionToken(secret, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		claimSessionID: sessionID,
		"exp":          time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Session validates the bearer token and injects the session view it is
// bound to into the request context. It does not touch the session store;
// handlers that need the logged-in user perform the lookup explicitly.
func Session(jwtSecret string, store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sid, _ := claims[claimSessionID].(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing session identity")
			}

			c.Set(ContextKeySessionID, sid)
			c.Set(ContextKeySession, store.Bind(sid))

			return next(c)
		}
	}
}
