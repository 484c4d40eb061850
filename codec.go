package client

import "encoding/json"

// JSONCodec encodes request bodies and decodes response payloads. Field
// naming and the handling of empty values are decided by the codec and the
// struct tags of the types it is given.
type JSONCodec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// StdJSONCodec is the default [JSONCodec], backed by encoding/json.
type StdJSONCodec struct{}

func (StdJSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (StdJSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
