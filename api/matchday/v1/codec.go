package matchdayv1

import (
	"encoding/json"
	"sync"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CodecName is the gRPC content subtype served by the event service
const CodecName = "json"

var registerCodecOnce sync.Once

// Codec marshals protobuf messages with protojson and plain Go structs with encoding/json
type Codec struct{}

func (Codec) Name() string {
	return CodecName
}

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

// RegisterCodec registers Codec with gRPC. Safe to call more than once.
func RegisterCodec() {
	registerCodecOnce.Do(func() {
		encoding.RegisterCodec(Codec{})
	})
}
