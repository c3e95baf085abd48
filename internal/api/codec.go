// Package api defines the wire contract shared by the server transports and
// the client: request/response messages, the gRPC service descriptors for
// credvault.v1.Auth and credvault.v1.Vault, and the JSON codec they use.
package api

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CodecName is the gRPC content-subtype of the vault services
// (application/grpc+json).
const CodecName = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals plain Go messages with encoding/json and protobuf
// messages (emptypb.Empty and friends) with protojson.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}
