package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	close func() error
	auth  api.AuthClient
	vault api.VaultClient

	mu    sync.RWMutex
	token string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.AuthorizationScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.Token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpoint lazily; no I/O happens until the first call.
func NewGRPCClient(endpoint string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}

	c.close = conn.Close
	c.auth = api.NewAuthClient(conn)
	c.vault = api.NewVaultClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func (s *GRPCClient) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Logout forgets the token. The server side keeps it valid until expiry.
func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) requireToken() error {
	if s.Token() == "" {
		return ErrNotLoggedIn
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, username string, password []byte, hint *string) (*api.AuthResponse, error) {
	req := &api.RegisterRequest{Email: email, Username: username, Password: string(password), PasswordHint: hint}

	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setToken(resp.Token)
	return resp, nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*api.AuthResponse, error) {
	req := &api.LoginRequest{Email: email, Password: string(password)}

	var trailer metadata.MD
	resp, err := s.auth.Login(ctx, req, grpc.Trailer(&trailer))
	if err != nil {
		if status.Code(err) == codes.Unauthenticated {
			lerr := &LoginFailedError{}
			if v := trailer.Get(api.PasswordHintTrailer); len(v) > 0 {
				lerr.Hint = &v[0]
			}
			return nil, lerr
		}
		return nil, s.mapError(err)
	}

	s.setToken(resp.Token)
	return resp, nil
}

func (s *GRPCClient) DeleteUser(ctx context.Context) error {
	if err := s.requireToken(); err != nil {
		return err
	}
	if _, err := s.auth.DeleteUser(ctx, &emptypb.Empty{}); err != nil {
		return s.mapError(err)
	}
	s.setToken("")
	return nil
}

func (s *GRPCClient) ListSecrets(ctx context.Context) ([]api.Secret, error) {
	if err := s.requireToken(); err != nil {
		return nil, err
	}
	resp, err := s.vault.ListSecrets(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Secrets, nil
}

func (s *GRPCClient) GetSecret(ctx context.Context, id string) (*api.Secret, error) {
	if err := s.requireToken(); err != nil {
		return nil, err
	}
	resp, err := s.vault.GetSecret(ctx, &api.SecretIDRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AddSecret(ctx context.Context, req *api.AddSecretRequest) (string, error) {
	if err := s.requireToken(); err != nil {
		return "", err
	}
	resp, err := s.vault.AddSecret(ctx, req)
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) UpdateSecret(ctx context.Context, req *api.UpdateSecretRequest) error {
	if err := s.requireToken(); err != nil {
		return err
	}
	_, err := s.vault.UpdateSecret(ctx, req)
	return s.mapError(err)
}

func (s *GRPCClient) DeleteSecret(ctx context.Context, id string) error {
	if err := s.requireToken(); err != nil {
		return err
	}
	_, err := s.vault.DeleteSecret(ctx, &api.SecretIDRequest{ID: id})
	return s.mapError(err)
}

// RevealSecret returns the plaintext. The caller should wipe it after use.
func (s *GRPCClient) RevealSecret(ctx context.Context, id string, masterPassword []byte) ([]byte, error) {
	if err := s.requireToken(); err != nil {
		return nil, err
	}
	resp, err := s.vault.RevealSecret(ctx, &api.RevealSecretRequest{ID: id, MasterPassword: string(masterPassword)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return []byte(resp.Secret), nil
}

func (s *GRPCClient) AddTags(ctx context.Context, id string, tags []string) ([]string, error) {
	if err := s.requireToken(); err != nil {
		return nil, err
	}
	resp, err := s.vault.AddTags(ctx, &api.TagsRequest{ID: id, Tags: tags})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tags, nil
}

func (s *GRPCClient) RemoveTags(ctx context.Context, id string, tags []string) ([]string, error) {
	if err := s.requireToken(); err != nil {
		return nil, err
	}
	resp, err := s.vault.RemoveTags(ctx, &api.TagsRequest{ID: id, Tags: tags})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tags, nil
}

func (s *GRPCClient) SetTags(ctx context.Context, id string, tags []string) error {
	if err := s.requireToken(); err != nil {
		return err
	}
	if tags == nil {
		tags = []string{}
	}
	_, err := s.vault.SetTags(ctx, &api.TagsRequest{ID: id, Tags: tags})
	return s.mapError(err)
}

func (s *GRPCClient) ExportVault(ctx context.Context) (*api.ExportResponse, error) {
	if err := s.requireToken(); err != nil {
		return nil, err
	}
	resp, err := s.vault.ExportVault(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.PermissionDenied:
		return common.ErrForbidden
	case codes.NotFound:
		return common.ErrNotFound
	case codes.AlreadyExists:
		return common.ErrUserAlreadyExists
	case codes.InvalidArgument:
		detail := strings.TrimPrefix(st.Message(), common.ErrInvalidRequest.Error())
		detail = strings.TrimPrefix(detail, ": ")
		if detail == "" {
			return common.ErrInvalidRequest
		}
		return fmt.Errorf("%w: %s", common.ErrInvalidRequest, detail)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
