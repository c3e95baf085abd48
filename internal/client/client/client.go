package client

import (
	"context"

	"github.com/dmitrijs2005/credvault/internal/api"
)

// Client is the transport-agnostic contract the CLI programs against.
// Vault calls return ErrNotLoggedIn until Register or Login succeeds.
type Client interface {
	Close() error
	Token() string
	Register(ctx context.Context, email, username string, password []byte, hint *string) (*api.AuthResponse, error)
	Login(ctx context.Context, email string, password []byte) (*api.AuthResponse, error)
	Logout()
	DeleteUser(ctx context.Context) error
	ListSecrets(ctx context.Context) ([]api.Secret, error)
	GetSecret(ctx context.Context, id string) (*api.Secret, error)
	AddSecret(ctx context.Context, req *api.AddSecretRequest) (string, error)
	UpdateSecret(ctx context.Context, req *api.UpdateSecretRequest) error
	DeleteSecret(ctx context.Context, id string) error
	RevealSecret(ctx context.Context, id string, masterPassword []byte) ([]byte, error)
	AddTags(ctx context.Context, id string, tags []string) ([]string, error)
	RemoveTags(ctx context.Context, id string, tags []string) ([]string, error)
	SetTags(ctx context.Context, id string, tags []string) error
	ExportVault(ctx context.Context) (*api.ExportResponse, error)
}

var _ Client = (*GRPCClient)(nil)
