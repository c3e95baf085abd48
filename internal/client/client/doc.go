// Package client talks to the credvault backend over gRPC.
//
// GRPCClient keeps the bearer token returned by Register or Login and
// attaches it to every vault call through a unary interceptor. gRPC status
// codes are mapped back to the sentinel errors of the common package, and to
// ErrUnavailable / ErrUnauthorized for transport-level conditions, so callers
// can match them with errors.Is.
//
// A failed Login yields a *LoginFailedError that carries the password hint
// when the server chose to disclose it.
package client
