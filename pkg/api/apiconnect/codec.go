// Package apiconnect wires the groupspend v1 services to Connect handlers and
// clients.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec carries the plain Go messages of package api. It replaces
// Connect's default "json" codec, which only understands protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (jsonCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// WithJSON is applied to every handler and client built by this package.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
