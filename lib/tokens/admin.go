package tokens

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminTokenMiddleware guards mutating endpoints with a shared bearer token.
// With no token configured the middleware is a no-op, which is the normal
// mode for a single-user ledger bound to localhost.
func AdminTokenMiddleware(token string) echo.MiddlewareFunc {
	if token == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return middleware.KeyAuth(func(auth string, c echo.Context) (bool, error) {
		return auth == token, nil
	})
}
