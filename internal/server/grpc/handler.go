package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/server/apiconv"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

var (
	_ api.AuthServer  = (*GRPCServer)(nil)
	_ api.VaultServer = (*GRPCServer)(nil)
)

// callerID returns the user id set by accessTokenInterceptor.
func callerID(ctx context.Context) (string, error) {
	id, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}
	return id, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {
	u, token, err := s.users.Register(ctx, req.Email, req.Username, req.Password, req.PasswordHint)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return apiconv.Auth(u, token), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {
	u, token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		var le *services.LoginError
		if errors.As(err, &le) && le.Hint != nil {
			if terr := grpc.SetTrailer(ctx, metadata.Pairs(api.PasswordHintTrailer, *le.Hint)); terr != nil {
				s.logger.Warn(ctx, "cannot set password hint trailer", "error", terr)
			}
		}
		return nil, s.toStatus(ctx, err)
	}
	return apiconv.Auth(u, token), nil
}

func (s *GRPCServer) UpdateUser(ctx context.Context, req *api.UpdateUserRequest) (*api.UserResponse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.UpdateUser(ctx, uid, apiconv.UserUpdate(req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return apiconv.User(u), nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.DeleteUser(ctx, uid); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "User deleted", "user_id", uid)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ListSecrets(ctx context.Context, _ *emptypb.Empty) (*api.ListSecretsResponse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.secrets.List(ctx, uid)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return apiconv.SecretList(list), nil
}

func (s *GRPCServer) GetSecret(ctx context.Context, req *api.SecretIDRequest) (*api.Secret, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	sec, err := s.secrets.Get(ctx, uid, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := apiconv.Secret(sec)
	return &out, nil
}

func (s *GRPCServer) AddSecret(ctx context.Context, req *api.AddSecretRequest) (*api.AddSecretResponse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	in := apiconv.NewSecret(req)
	defer common.WipeByteArray(in.Secret)
	defer common.WipeByteArray(in.MasterPassword)

	id, err := s.secrets.Create(ctx, uid, in)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.AddSecretResponse{ID: id}, nil
}

func (s *GRPCServer) UpdateSecret(ctx context.Context, req *api.UpdateSecretRequest) (*emptypb.Empty, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	upd := apiconv.SecretUpdate(req)
	defer common.WipeByteArray(upd.Secret)
	defer common.WipeByteArray(upd.MasterPassword)

	if err := s.secrets.Update(ctx, uid, req.ID, upd); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) DeleteSecret(ctx context.Context, req *api.SecretIDRequest) (*emptypb.Empty, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.secrets.Delete(ctx, uid, req.ID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) RevealSecret(ctx context.Context, req *api.RevealSecretRequest) (*api.RevealSecretResponse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	mp := []byte(req.MasterPassword)
	defer common.WipeByteArray(mp)

	plain, err := s.secrets.Reveal(ctx, uid, req.ID, mp)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	defer common.WipeByteArray(plain)
	return &api.RevealSecretResponse{Secret: string(plain)}, nil
}

func (s *GRPCServer) AddTags(ctx context.Context, req *api.TagsRequest) (*api.TagsResponse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	added, err := s.secrets.AddTags(ctx, uid, req.ID, req.Tags)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return apiconv.Tags(added), nil
}

func (s *GRPCServer) RemoveTags(ctx context.Context, req *api.TagsRequest) (*api.TagsResponse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	removed, err := s.secrets.RemoveTags(ctx, uid, req.ID, req.Tags)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return apiconv.Tags(removed), nil
}

func (s *GRPCServer) SetTags(ctx context.Context, req *api.TagsRequest) (*emptypb.Empty, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.secrets.SetTags(ctx, uid, req.ID, req.Tags); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ExportVault(ctx context.Context, _ *emptypb.Empty) (*api.ExportResponse, error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	exp, err := s.exports.Export(ctx, uid)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Vault exported", "user_id", uid, "object_key", exp.ObjectKey)
	return apiconv.Export(exp), nil
}
