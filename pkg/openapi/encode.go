package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Encoding selects the text serialization of a document.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// Encode serializes v (usually a *Document) as indented JSON or YAML.
func Encode(v any, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingJSON:
		return json.MarshalIndent(v, "", "  ")
	case EncodingYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return nil, err
		}
		if err := encoder.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", enc)
	}
}
