package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC allows the request through only when the role extracted by Auth is
// one of the given roles. Requests without a role (Auth not applied or token
// missing claims) are rejected.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
