package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/common"
	"google.golang.org/grpc/metadata"
)

// Carrier is the transport-neutral view of request metadata.
type Carrier interface {
	// Get returns the single value stored under key. ok is false when the
	// key is absent; more than one value is an error.
	Get(key string) (value string, ok bool, err error)
	Contains(key string) bool
}

// HeaderCarrier adapts HTTP headers.
type HeaderCarrier http.Header

func (h HeaderCarrier) Get(key string) (string, bool, error) {
	return single(http.Header(h).Values(key))
}

func (h HeaderCarrier) Contains(key string) bool {
	return len(http.Header(h).Values(key)) > 0
}

// MetadataCarrier adapts incoming gRPC metadata.
type MetadataCarrier metadata.MD

func (m MetadataCarrier) Get(key string) (string, bool, error) {
	return single(metadata.MD(m).Get(key))
}

func (m MetadataCarrier) Contains(key string) bool {
	return len(metadata.MD(m).Get(key)) > 0
}

func single(values []string) (string, bool, error) {
	switch len(values) {
	case 0:
		return "", false, nil
	case 1:
		return values[0], true, nil
	default:
		return "", true, fmt.Errorf("%w: multiple authorization values", common.ErrInvalidRequest)
	}
}

// ExtractBearer returns the token from the carrier's authorization entry,
// which must read "Bearer <token>".
func ExtractBearer(c Carrier) (string, error) {
	if !c.Contains(common.AuthorizationHeaderName) {
		return "", fmt.Errorf("%w: missing authorization", common.ErrInvalidRequest)
	}

	value, _, err := c.Get(common.AuthorizationHeaderName)
	if err != nil {
		return "", err
	}

	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthorizationScheme) {
		return "", fmt.Errorf("%w: malformed authorization", common.ErrInvalidRequest)
	}

	return parts[1], nil
}
