package http

import (
	"net/http"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/server/apiconv"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/labstack/echo/v4"
)

func callerID(c echo.Context) (string, error) {
	id, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return "", common.ErrInvalidToken
	}
	return id, nil
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, common.ErrInvalidRequest.Error()+": malformed body")
	}
	return nil
}

func (s *HTTPServer) register(c echo.Context) error {
	var req api.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	u, token, err := s.users.Register(c.Request().Context(), req.Email, req.Username, req.Password, req.PasswordHint)
	if err != nil {
		return err
	}
	s.logger.Info(c.Request().Context(), "Registered", "user_id", u.ID)
	return c.JSON(http.StatusCreated, apiconv.Auth(u, token))
}

func (s *HTTPServer) login(c echo.Context) error {
	var req api.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	u, token, err := s.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.Auth(u, token))
}

func (s *HTTPServer) updateUser(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req api.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := s.users.UpdateUser(c.Request().Context(), uid, apiconv.UserUpdate(&req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.User(u))
}

func (s *HTTPServer) deleteUser(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	if err := s.users.DeleteUser(c.Request().Context(), uid); err != nil {
		return err
	}
	s.logger.Info(c.Request().Context(), "User deleted", "user_id", uid)
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) listSecrets(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	list, err := s.secrets.List(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.SecretList(list))
}

func (s *HTTPServer) getSecret(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	sec, err := s.secrets.Get(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.Secret(sec))
}

func (s *HTTPServer) addSecret(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req api.AddSecretRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in := apiconv.NewSecret(&req)
	defer common.WipeByteArray(in.Secret)
	defer common.WipeByteArray(in.MasterPassword)

	id, err := s.secrets.Create(c.Request().Context(), uid, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, api.AddSecretResponse{ID: id})
}

func (s *HTTPServer) updateSecret(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req api.UpdateSecretRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	upd := apiconv.SecretUpdate(&req)
	defer common.WipeByteArray(upd.Secret)
	defer common.WipeByteArray(upd.MasterPassword)

	if err := s.secrets.Update(c.Request().Context(), uid, c.Param("id"), upd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) deleteSecret(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	if err := s.secrets.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) revealSecret(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req api.RevealSecretRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	mp := []byte(req.MasterPassword)
	defer common.WipeByteArray(mp)

	plain, err := s.secrets.Reveal(c.Request().Context(), uid, c.Param("id"), mp)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(plain)
	return c.JSON(http.StatusOK, api.RevealSecretResponse{Secret: string(plain)})
}

func (s *HTTPServer) addTags(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req api.TagsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	added, err := s.secrets.AddTags(c.Request().Context(), uid, c.Param("id"), req.Tags)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusCreated, apiconv.Tags(added))
}

func (s *HTTPServer) removeTags(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req api.TagsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	removed, err := s.secrets.RemoveTags(c.Request().Context(), uid, c.Param("id"), req.Tags)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, apiconv.Tags(removed))
}

func (s *HTTPServer) setTags(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req api.TagsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.secrets.SetTags(c.Request().Context(), uid, c.Param("id"), req.Tags); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) exportVault(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	exp, err := s.exports.Export(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	s.logger.Info(c.Request().Context(), "Vault exported", "user_id", uid, "object_key", exp.ObjectKey)
	return c.JSON(http.StatusCreated, apiconv.Export(exp))
}
