package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type staticKey []byte

func (k staticKey) Use(fn func([]byte) error) error { return fn(k) }

func newTokens() *auth.TokenService {
	return auth.NewTokenService(staticKey("0123456789abcdef0123456789abcdef"), time.Hour)
}

type fakeUsers struct {
	user  *models.User
	token string
	err   error

	gotUserID string
	gotUpdate services.UserUpdate
}

func (f *fakeUsers) Register(_ context.Context, email, username, _ string, _ *string) (*models.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return &models.User{ID: "u1", Email: email, Username: username}, f.token, nil
}

func (f *fakeUsers) Login(context.Context, string, string) (*models.User, string, error) {
	return f.user, f.token, f.err
}

func (f *fakeUsers) UpdateUser(_ context.Context, userID string, upd services.UserUpdate) (*models.User, error) {
	f.gotUserID, f.gotUpdate = userID, upd
	return f.user, f.err
}

func (f *fakeUsers) DeleteUser(_ context.Context, userID string) error {
	f.gotUserID = userID
	return f.err
}

type fakeSecrets struct {
	secret  *models.Secret
	list    []*models.Secret
	id      string
	plain   []byte
	tags    []string
	err     error
	gotUser string
	gotID   string
	gotNew  services.NewSecret
	gotUpd  services.SecretUpdate
	gotTags []string
	gotMP   string
}

func (f *fakeSecrets) List(_ context.Context, ownerID string) ([]*models.Secret, error) {
	f.gotUser = ownerID
	return f.list, f.err
}

func (f *fakeSecrets) Get(_ context.Context, ownerID, id string) (*models.Secret, error) {
	f.gotUser, f.gotID = ownerID, id
	return f.secret, f.err
}

func (f *fakeSecrets) Create(_ context.Context, ownerID string, in services.NewSecret) (string, error) {
	f.gotUser = ownerID
	f.gotNew = in
	f.gotNew.Secret = append([]byte(nil), in.Secret...)
	f.gotNew.MasterPassword = append([]byte(nil), in.MasterPassword...)
	return f.id, f.err
}

func (f *fakeSecrets) Update(_ context.Context, ownerID, id string, upd services.SecretUpdate) error {
	f.gotUser, f.gotID, f.gotUpd = ownerID, id, upd
	return f.err
}

func (f *fakeSecrets) Delete(_ context.Context, ownerID, id string) error {
	f.gotUser, f.gotID = ownerID, id
	return f.err
}

func (f *fakeSecrets) Reveal(_ context.Context, ownerID, id string, mp []byte) ([]byte, error) {
	f.gotUser, f.gotID, f.gotMP = ownerID, id, string(mp)
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte(nil), f.plain...), nil
}

func (f *fakeSecrets) AddTags(_ context.Context, ownerID, id string, tags []string) ([]string, error) {
	f.gotUser, f.gotID, f.gotTags = ownerID, id, tags
	return f.tags, f.err
}

func (f *fakeSecrets) RemoveTags(_ context.Context, ownerID, id string, tags []string) ([]string, error) {
	f.gotUser, f.gotID, f.gotTags = ownerID, id, tags
	return f.tags, f.err
}

func (f *fakeSecrets) SetTags(_ context.Context, ownerID, id string, tags []string) error {
	f.gotUser, f.gotID, f.gotTags = ownerID, id, tags
	return f.err
}

type fakeExports struct {
	out *services.Export
	err error
}

func (f *fakeExports) Export(context.Context, string) (*services.Export, error) {
	return f.out, f.err
}

type fakeRevocation struct {
	revoked bool
	err     error
}

func (f fakeRevocation) IsRevoked(context.Context, string, time.Time) (bool, error) {
	return f.revoked, f.err
}
