package queue

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// EncodeParams serializes free-form engine options for transport in a
// SolveJob. The options pass through a protobuf Struct, which restricts
// values to JSON-compatible types (nil, bool, float64, string, slices, and
// nested maps) and gives a stable wire encoding regardless of the submitter.
func EncodeParams(params map[string]any) (string, error) {
	s, err := structpb.NewStruct(params)
	if err != nil {
		return "", fmt.Errorf("failed to convert params to struct: %w", err)
	}

	data, err := protojson.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal params: %w", err)
	}

	return string(data), nil
}

// DecodeParams deserializes engine options produced by EncodeParams.
func DecodeParams(encoded string) (map[string]any, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal([]byte(encoded), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	return s.AsMap(), nil
}
