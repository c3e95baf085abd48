package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	AuthServiceName = "credvault.v1.Auth"

	AuthRegisterMethod   = "/" + AuthServiceName + "/Register"
	AuthLoginMethod      = "/" + AuthServiceName + "/Login"
	AuthUpdateUserMethod = "/" + AuthServiceName + "/UpdateUser"
	AuthDeleteUserMethod = "/" + AuthServiceName + "/DeleteUser"
)

// PasswordHintTrailer is the trailer key carrying the password hint of a
// failed Login when the server exposes hints.
const PasswordHintTrailer = "password-hint"

// AuthServer is the server API of credvault.v1.Auth.
type AuthServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*UserResponse, error)
	DeleteUser(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// UnimplementedAuthServer can be embedded to get forward-compatible stubs.
type UnimplementedAuthServer struct{}

func (UnimplementedAuthServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAuthServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAuthServer) UpdateUser(context.Context, *UpdateUserRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateUser not implemented")
}
func (UnimplementedAuthServer) DeleteUser(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteUser not implemented")
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

// unaryHandler adapts a typed method to grpc.MethodDesc.Handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(srv any, ctx context.Context, req *Req) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler: unaryHandler(AuthRegisterMethod, func(srv any, ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
				return srv.(AuthServer).Register(ctx, req)
			}),
		},
		{
			MethodName: "Login",
			Handler: unaryHandler(AuthLoginMethod, func(srv any, ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
				return srv.(AuthServer).Login(ctx, req)
			}),
		},
		{
			MethodName: "UpdateUser",
			Handler: unaryHandler(AuthUpdateUserMethod, func(srv any, ctx context.Context, req *UpdateUserRequest) (*UserResponse, error) {
				return srv.(AuthServer).UpdateUser(ctx, req)
			}),
		},
		{
			MethodName: "DeleteUser",
			Handler: unaryHandler(AuthDeleteUserMethod, func(srv any, ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error) {
				return srv.(AuthServer).DeleteUser(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "credvault/v1/auth",
}

// AuthClient is the client API of credvault.v1.Auth.
type AuthClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserResponse, error)
	DeleteUser(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, AuthRegisterMethod, in, opts)
}

func (c *authClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, AuthLoginMethod, in, opts)
}

func (c *authClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, AuthUpdateUserMethod, in, opts)
}

func (c *authClient) DeleteUser(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, AuthDeleteUserMethod, in, opts)
}
