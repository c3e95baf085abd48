package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/credvault/internal/api"
	"github.com/dmitrijs2005/credvault/internal/common"
	"github.com/dmitrijs2005/credvault/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods are served without an access token.
var publicMethods = map[string]bool{
	api.AuthRegisterMethod: true,
	api.AuthLoginMethod:    true,
}

const healthServicePrefix = "/grpc.health.v1.Health/"

func isPublic(method string) bool {
	return publicMethods[method] || strings.HasPrefix(method, healthServicePrefix)
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if isPublic(info.FullMethod) {
		return handler(ctx, req)
	}

	md, _ := metadata.FromIncomingContext(ctx)
	claims, err := s.authenticator.Authenticate(ctx, auth.MetadataCarrier(md))
	if err != nil {
		if errors.Is(err, common.ErrDatabase) {
			s.logger.Error(ctx, "token check failed", "method", info.FullMethod, "error", err)
			return nil, status.Error(codes.Unavailable, common.ErrDatabase.Error())
		}
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	return handler(auth.WithUserID(ctx, claims.Subject), req)
}

func (s *GRPCServer) timeoutInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if s.requestTimeout <= 0 {
		return handler(ctx, req)
	}
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()
	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Info(ctx, "grpc request", args...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		s.logger.Error(ctx, "grpc request", args...)
	default:
		s.logger.Warn(ctx, "grpc request", args...)
	}
	return resp, err
}
