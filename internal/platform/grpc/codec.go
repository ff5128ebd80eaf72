package grpc

import (
	"encoding/json"
	"fmt"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// JSONCodecName is the gRPC content-subtype of the JSON codec. Requests are
// sent as application/grpc+json.
const JSONCodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec marshals the hand-maintained wire contracts under api/ with
// encoding/json so the backends need no generated protobuf types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string {
	return JSONCodecName
}

// JSONCallOptions prepends the JSON content-subtype to caller options.
func JSONCallOptions(opts []gogrpc.CallOption) []gogrpc.CallOption {
	out := make([]gogrpc.CallOption, 0, len(opts)+1)
	out = append(out, gogrpc.CallContentSubtype(JSONCodecName))
	return append(out, opts...)
}
