package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-api/internal/api/metrics"
)

// Denylist checks whether a session token has been revoked by logout.
// A nil Denylist disables revocation checks.
type Denylist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Auth validates the JWT carried in the Authorization header and injects the
// caller's identity into the request context. Registration and login are the
// only routes that skip it.
func Auth(jwtSecret string, denylist Denylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Failed to authenticate token")
			}
			raw := parts[1]

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Failed to authenticate token")
			}

			userID, _ := claims["id"].(string)
			role, _ := claims["role"].(string)
			if userID == "" || role == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Failed to authenticate token")
			}

			if denylist != nil {
				// Best effort: a denylist outage must not lock everyone out.
				if revoked, err := denylist.IsRevoked(c.Request().Context(), raw); err == nil && revoked {
					metrics.AuthRejectionsTotal.WithLabelValues("revoked_token").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Failed to authenticate token")
				}
			}

			c.Set("user_id", userID)
			c.Set("role", role)
			c.Set("token", raw)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set("token_exp", exp.Time)
			}

			return next(c)
		}
	}
}
