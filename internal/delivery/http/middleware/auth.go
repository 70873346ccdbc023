package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

const actorContextKey = "actor"

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth parses the bearer token, verifies the HS256 signature and stores
// the resolved Actor in the request context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims := &authClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
			}

			role := domain.RoleUser
			if claims.Role == string(domain.RoleArbiter) {
				role = domain.RoleArbiter
			}
			c.Set(actorContextKey, domain.Actor{ID: claims.Subject, Role: role})

			return next(c)
		}
	}
}

// ActorFromContext returns the Actor set by JWTAuth. The zero Actor means the
// route was wired without the middleware, which is a programming error.
func ActorFromContext(c echo.Context) domain.Actor {
	actor, _ := c.Get(actorContextKey).(domain.Actor)
	return actor
}
