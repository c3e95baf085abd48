package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credvault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Messages of server-side
// failures are replaced by the sentinel text so driver details stay in the
// logs.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrInvalidUsernameOrPassword):
		return status.Error(codes.Unauthenticated, common.ErrInvalidUsernameOrPassword.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrAuthenticationFailed):
		return status.Error(codes.Unauthenticated, common.ErrAuthenticationFailed.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, common.ErrNotFound.Error())
	case errors.Is(err, common.ErrForbidden):
		return status.Error(codes.PermissionDenied, common.ErrForbidden.Error())
	case errors.Is(err, common.ErrUserAlreadyExists):
		return status.Error(codes.AlreadyExists, common.ErrUserAlreadyExists.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request cancelled")
	case errors.Is(err, common.ErrDatabase):
		s.logger.Error(ctx, "database error", "error", err)
		return status.Error(codes.Unavailable, common.ErrDatabase.Error())
	case errors.Is(err, common.ErrObjectStorage):
		s.logger.Error(ctx, "object storage error", "error", err)
		return status.Error(codes.Unavailable, common.ErrObjectStorage.Error())
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, common.ErrInternal.Error())
	}
}
