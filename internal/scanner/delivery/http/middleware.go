package http

import (
	"crypto/subtle"
	"net/http"

	"golang-insider-scanner/internal/scanner/dto"
	"golang-insider-scanner/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ScanTokenHeader carries the shared secret for trigger endpoints.
const ScanTokenHeader = "X-Scan-Token"

// RequireScanToken rejects requests without the configured token. An empty token rejects everything.
func RequireScanToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(ScanTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			}
			return next(c)
		}
	}
}

// RequireBasicAuth guards the status page.
func RequireBasicAuth(username, password string) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm: "Insider Scanner",
		Validator: func(u, p string, _ echo.Context) (bool, error) {
			if password == "" {
				return false, nil
			}
			userOK := subtle.ConstantTimeCompare([]byte(u), []byte(username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1
			return userOK && passOK, nil
		},
	})
}

// RequestContext copies the request id set by middleware.RequestID into the request context
// so service logs carry it.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}
