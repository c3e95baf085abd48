package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"github.com/labstack/echo/v4"
)

// statusOf maps service errors to HTTP statuses and the message shown to
// the client. Server-side failures expose only the sentinel text.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrInvalidUsernameOrPassword):
		return http.StatusUnauthorized, common.ErrInvalidUsernameOrPassword.Error()
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, common.ErrInvalidToken.Error()
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusUnauthorized, common.ErrAuthenticationFailed.Error()
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, common.ErrNotFound.Error()
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, common.ErrForbidden.Error()
	case errors.Is(err, common.ErrUserAlreadyExists):
		return http.StatusConflict, common.ErrUserAlreadyExists.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request timed out"
	case errors.Is(err, common.ErrDatabase):
		return http.StatusServiceUnavailable, common.ErrDatabase.Error()
	case errors.Is(err, common.ErrObjectStorage):
		return http.StatusServiceUnavailable, common.ErrObjectStorage.Error()
	default:
		return http.StatusInternalServerError, common.ErrInternal.Error()
	}
}

func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var code int
	body := api.ErrorResponse{}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		body.Error = fmt.Sprint(he.Message)
	} else {
		code, body.Error = statusOf(err)
		var le *services.LoginError
		if errors.As(err, &le) {
			body.PasswordHint = le.Hint
		}
	}

	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", "route", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "cannot write error response", "error", err)
	}
}
