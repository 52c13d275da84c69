package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
	"github.com/vominhduc11/NexHub-sub001/pkg/response"
)

// RequireServiceKey guards internal endpoints that are only reachable by
// sibling services through the gateway, never by end users directly.
func RequireServiceKey(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := c.Request().Header.Get("X-API-Key")
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				log.Warn().Str("component", "RequireServiceKey").Str("endpoint", c.Request().URL.Path).Msg("rejected request with missing or invalid service key")
				return response.WriteErrorResponse(c, errs.ErrMissingServiceKey, nil)
			}

			return next(c)
		}
	}
}
