// Package apiconv converts server models to wire messages. Both
// transports answer with the same messages.
package apiconv

import (
	"encoding/hex"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/server/models"
	"github.com/dmitrijs2005/credvault/internal/server/services"
)

func Secret(s *models.Secret) api.Secret {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return api.Secret{
		ID:          s.ID,
		Name:        s.Name,
		Website:     s.Website,
		Username:    s.Username,
		Description: s.Description,
		Tags:        tags,
		Ciphertext:  hex.EncodeToString(s.Ciphertext),
		Salt:        hex.EncodeToString(s.Salt),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func SecretList(list []*models.Secret) *api.ListSecretsResponse {
	out := &api.ListSecretsResponse{Secrets: make([]api.Secret, 0, len(list))}
	for _, s := range list {
		out.Secrets = append(out.Secrets, Secret(s))
	}
	return out
}

func Auth(u *models.User, token string) *api.AuthResponse {
	return &api.AuthResponse{ID: u.ID, Email: u.Email, Username: u.Username, Token: token}
}

func User(u *models.User) *api.UserResponse {
	return &api.UserResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}

func Tags(tags []string) *api.TagsResponse {
	if tags == nil {
		tags = []string{}
	}
	return &api.TagsResponse{Tags: tags}
}

func Export(e *services.Export) *api.ExportResponse {
	return &api.ExportResponse{ObjectKey: e.ObjectKey, URL: e.URL, ExpiresAt: e.ExpiresAt}
}

func NewSecret(r *api.AddSecretRequest) services.NewSecret {
	return services.NewSecret{
		Name:           r.Name,
		Secret:         []byte(r.Secret),
		MasterPassword: []byte(r.MasterPassword),
		Website:        r.Website,
		Username:       r.Username,
		Description:    r.Description,
		Tags:           r.Tags,
	}
}

func SecretUpdate(r *api.UpdateSecretRequest) services.SecretUpdate {
	u := services.SecretUpdate{
		Name:        r.Name,
		Website:     r.Website,
		Username:    r.Username,
		Description: r.Description,
		Tags:        r.Tags,
	}
	if r.Secret != nil {
		u.Secret = []byte(*r.Secret)
	}
	if r.MasterPassword != nil {
		u.MasterPassword = []byte(*r.MasterPassword)
	}
	return u
}

func UserUpdate(r *api.UpdateUserRequest) services.UserUpdate {
	return services.UserUpdate{
		Email:        r.Email,
		Username:     r.Username,
		Password:     r.Password,
		PasswordHint: r.PasswordHint,
	}
}
