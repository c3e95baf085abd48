package common

const (
	// AuthorizationHeaderName is the key carrying "<scheme> <token>" in both
	// HTTP headers and gRPC metadata. gRPC lowercases metadata keys; HTTP
	// header lookup is case-insensitive, so one spelling serves both.
	AuthorizationHeaderName = "authorization"

	// AuthorizationScheme is the only accepted scheme.
	AuthorizationScheme = "Bearer"

	// TokenIssuer identifies this authority in issued claims.
	TokenIssuer = "authentication"
)
