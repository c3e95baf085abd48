package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/labstack/echo/v4"
)

// requireAuth validates the bearer token and stores the caller id in the
// request context.
func (s *HTTPServer) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		claims, err := s.authenticator.Authenticate(req.Context(), auth.HeaderCarrier(req.Header))
		if err != nil {
			if errors.Is(err, common.ErrDatabase) {
				return err
			}
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		}
		c.SetRequest(req.WithContext(auth.WithUserID(req.Context(), claims.Subject)))
		return next(c)
	}
}

// requestLogger writes one line per request. Bodies are never logged.
func (s *HTTPServer) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req, res := c.Request(), c.Response()
		args := []any{
			"method", req.Method,
			"route", c.Path(),
			"status", res.Status,
			"duration", time.Since(start),
			"request_id", res.Header().Get(echo.HeaderXRequestID),
		}
		switch {
		case res.Status >= http.StatusInternalServerError:
			s.logger.Error(req.Context(), "http request", args...)
		case res.Status >= http.StatusBadRequest:
			s.logger.Warn(req.Context(), "http request", args...)
		default:
			s.logger.Info(req.Context(), "http request", args...)
		}
		return nil
	}
}
