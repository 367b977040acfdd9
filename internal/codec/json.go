package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"stackmap/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the media type of exported documents
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Parse imports a layout document from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Document, error) {
	var raw json.RawMessage
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if decoder.More() {
		return nil, errors.New("failed to parse JSON: trailing data after document")
	}
	if len(raw) == 0 || raw[0] != '{' {
		return nil, errors.New("failed to parse JSON: document must be an object")
	}

	var in importDocument
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return in.document()
}

// Export exports a layout document to JSON
func (c *JSONCodec) Export(doc *domain.Document, w io.Writer) error {
	out := *doc
	if out.Positions == nil {
		out.Positions = domain.Snapshot{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
