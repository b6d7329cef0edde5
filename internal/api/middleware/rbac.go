package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC rejects authenticated requests whose role claim is not one of the
// allowed roles. Ownership scoping happens later in the service layer; this
// only keeps unknown roles out.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
