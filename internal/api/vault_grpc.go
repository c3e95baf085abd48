package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	VaultServiceName = "credvault.v1.Vault"

	VaultListSecretsMethod  = "/" + VaultServiceName + "/ListSecrets"
	VaultGetSecretMethod    = "/" + VaultServiceName + "/GetSecret"
	VaultAddSecretMethod    = "/" + VaultServiceName + "/AddSecret"
	VaultUpdateSecretMethod = "/" + VaultServiceName + "/UpdateSecret"
	VaultDeleteSecretMethod = "/" + VaultServiceName + "/DeleteSecret"
	VaultRevealSecretMethod = "/" + VaultServiceName + "/RevealSecret"
	VaultAddTagsMethod      = "/" + VaultServiceName + "/AddTags"
	VaultRemoveTagsMethod   = "/" + VaultServiceName + "/RemoveTags"
	VaultSetTagsMethod      = "/" + VaultServiceName + "/SetTags"
	VaultExportVaultMethod  = "/" + VaultServiceName + "/ExportVault"
)

// VaultServer is the server API of credvault.v1.Vault.
type VaultServer interface {
	ListSecrets(context.Context, *emptypb.Empty) (*ListSecretsResponse, error)
	GetSecret(context.Context, *SecretIDRequest) (*Secret, error)
	AddSecret(context.Context, *AddSecretRequest) (*AddSecretResponse, error)
	UpdateSecret(context.Context, *UpdateSecretRequest) (*emptypb.Empty, error)
	DeleteSecret(context.Context, *SecretIDRequest) (*emptypb.Empty, error)
	RevealSecret(context.Context, *RevealSecretRequest) (*RevealSecretResponse, error)
	AddTags(context.Context, *TagsRequest) (*TagsResponse, error)
	RemoveTags(context.Context, *TagsRequest) (*TagsResponse, error)
	SetTags(context.Context, *TagsRequest) (*emptypb.Empty, error)
	ExportVault(context.Context, *emptypb.Empty) (*ExportResponse, error)
}

// UnimplementedVaultServer can be embedded to get forward-compatible stubs.
type UnimplementedVaultServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedVaultServer) ListSecrets(context.Context, *emptypb.Empty) (*ListSecretsResponse, error) {
	return nil, unimplemented("ListSecrets")
}
func (UnimplementedVaultServer) GetSecret(context.Context, *SecretIDRequest) (*Secret, error) {
	return nil, unimplemented("GetSecret")
}
func (UnimplementedVaultServer) AddSecret(context.Context, *AddSecretRequest) (*AddSecretResponse, error) {
	return nil, unimplemented("AddSecret")
}
func (UnimplementedVaultServer) UpdateSecret(context.Context, *UpdateSecretRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("UpdateSecret")
}
func (UnimplementedVaultServer) DeleteSecret(context.Context, *SecretIDRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("DeleteSecret")
}
func (UnimplementedVaultServer) RevealSecret(context.Context, *RevealSecretRequest) (*RevealSecretResponse, error) {
	return nil, unimplemented("RevealSecret")
}
func (UnimplementedVaultServer) AddTags(context.Context, *TagsRequest) (*TagsResponse, error) {
	return nil, unimplemented("AddTags")
}
func (UnimplementedVaultServer) RemoveTags(context.Context, *TagsRequest) (*TagsResponse, error) {
	return nil, unimplemented("RemoveTags")
}
func (UnimplementedVaultServer) SetTags(context.Context, *TagsRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("SetTags")
}
func (UnimplementedVaultServer) ExportVault(context.Context, *emptypb.Empty) (*ExportResponse, error) {
	return nil, unimplemented("ExportVault")
}

func RegisterVaultServer(s grpc.ServiceRegistrar, srv VaultServer) {
	s.RegisterService(&VaultServiceDesc, srv)
}

func vault(srv any) VaultServer { return srv.(VaultServer) }

var VaultServiceDesc = grpc.ServiceDesc{
	ServiceName: VaultServiceName,
	HandlerType: (*VaultServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListSecrets",
			Handler: unaryHandler(VaultListSecretsMethod, func(srv any, ctx context.Context, req *emptypb.Empty) (*ListSecretsResponse, error) {
				return vault(srv).ListSecrets(ctx, req)
			}),
		},
		{
			MethodName: "GetSecret",
			Handler: unaryHandler(VaultGetSecretMethod, func(srv any, ctx context.Context, req *SecretIDRequest) (*Secret, error) {
				return vault(srv).GetSecret(ctx, req)
			}),
		},
		{
			MethodName: "AddSecret",
			Handler: unaryHandler(VaultAddSecretMethod, func(srv any, ctx context.Context, req *AddSecretRequest) (*AddSecretResponse, error) {
				return vault(srv).AddSecret(ctx, req)
			}),
		},
		{
			MethodName: "UpdateSecret",
			Handler: unaryHandler(VaultUpdateSecretMethod, func(srv any, ctx context.Context, req *UpdateSecretRequest) (*emptypb.Empty, error) {
				return vault(srv).UpdateSecret(ctx, req)
			}),
		},
		{
			MethodName: "DeleteSecret",
			Handler: unaryHandler(VaultDeleteSecretMethod, func(srv any, ctx context.Context, req *SecretIDRequest) (*emptypb.Empty, error) {
				return vault(srv).DeleteSecret(ctx, req)
			}),
		},
		{
			MethodName: "RevealSecret",
			Handler: unaryHandler(VaultRevealSecretMethod, func(srv any, ctx context.Context, req *RevealSecretRequest) (*RevealSecretResponse, error) {
				return vault(srv).RevealSecret(ctx, req)
			}),
		},
		{
			MethodName: "AddTags",
			Handler: unaryHandler(VaultAddTagsMethod, func(srv any, ctx context.Context, req *TagsRequest) (*TagsResponse, error) {
				return vault(srv).AddTags(ctx, req)
			}),
		},
		{
			MethodName: "RemoveTags",
			Handler: unaryHandler(VaultRemoveTagsMethod, func(srv any, ctx context.Context, req *TagsRequest) (*TagsResponse, error) {
				return vault(srv).RemoveTags(ctx, req)
			}),
		},
		{
			MethodName: "SetTags",
			Handler: unaryHandler(VaultSetTagsMethod, func(srv any, ctx context.Context, req *TagsRequest) (*emptypb.Empty, error) {
				return vault(srv).SetTags(ctx, req)
			}),
		},
		{
			MethodName: "ExportVault",
			Handler: unaryHandler(VaultExportVaultMethod, func(srv any, ctx context.Context, req *emptypb.Empty) (*ExportResponse, error) {
				return vault(srv).ExportVault(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "credvault/v1/vault",
}

// VaultClient is the client API of credvault.v1.Vault.
type VaultClient interface {
	ListSecrets(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListSecretsResponse, error)
	GetSecret(ctx context.Context, in *SecretIDRequest, opts ...grpc.CallOption) (*Secret, error)
	AddSecret(ctx context.Context, in *AddSecretRequest, opts ...grpc.CallOption) (*AddSecretResponse, error)
	UpdateSecret(ctx context.Context, in *UpdateSecretRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeleteSecret(ctx context.Context, in *SecretIDRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RevealSecret(ctx context.Context, in *RevealSecretRequest, opts ...grpc.CallOption) (*RevealSecretResponse, error)
	AddTags(ctx context.Context, in *TagsRequest, opts ...grpc.CallOption) (*TagsResponse, error)
	RemoveTags(ctx context.Context, in *TagsRequest, opts ...grpc.CallOption) (*TagsResponse, error)
	SetTags(ctx context.Context, in *TagsRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ExportVault(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ExportResponse, error)
}

type vaultClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultClient(cc grpc.ClientConnInterface) VaultClient {
	return &vaultClient{cc: cc}
}

func (c *vaultClient) ListSecrets(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListSecretsResponse, error) {
	return invoke[ListSecretsResponse](ctx, c.cc, VaultListSecretsMethod, in, opts)
}

func (c *vaultClient) GetSecret(ctx context.Context, in *SecretIDRequest, opts ...grpc.CallOption) (*Secret, error) {
	return invoke[Secret](ctx, c.cc, VaultGetSecretMethod, in, opts)
}

func (c *vaultClient) AddSecret(ctx context.Context, in *AddSecretRequest, opts ...grpc.CallOption) (*AddSecretResponse, error) {
	return invoke[AddSecretResponse](ctx, c.cc, VaultAddSecretMethod, in, opts)
}

func (c *vaultClient) UpdateSecret(ctx context.Context, in *UpdateSecretRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, VaultUpdateSecretMethod, in, opts)
}

func (c *vaultClient) DeleteSecret(ctx context.Context, in *SecretIDRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, VaultDeleteSecretMethod, in, opts)
}

func (c *vaultClient) RevealSecret(ctx context.Context, in *RevealSecretRequest, opts ...grpc.CallOption) (*RevealSecretResponse, error) {
	return invoke[RevealSecretResponse](ctx, c.cc, VaultRevealSecretMethod, in, opts)
}

func (c *vaultClient) AddTags(ctx context.Context, in *TagsRequest, opts ...grpc.CallOption) (*TagsResponse, error) {
	return invoke[TagsResponse](ctx, c.cc, VaultAddTagsMethod, in, opts)
}

func (c *vaultClient) RemoveTags(ctx context.Context, in *TagsRequest, opts ...grpc.CallOption) (*TagsResponse, error) {
	return invoke[TagsResponse](ctx, c.cc, VaultRemoveTagsMethod, in, opts)
}

func (c *vaultClient) SetTags(ctx context.Context, in *TagsRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, VaultSetTagsMethod, in, opts)
}

func (c *vaultClient) ExportVault(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c.cc, VaultExportVaultMethod, in, opts)
}
