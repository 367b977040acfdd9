package codec

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"stackmap/internal/domain"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the media type of exported documents
func (c *YAMLCodec) ContentType() string {
	return "application/yaml"
}

// Parse imports a layout document from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Document, error) {
	var root yaml.Node
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("failed to parse YAML: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("failed to parse YAML: document must be a mapping")
	}

	var in importDocument
	if err := root.Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return in.document()
}

// Export exports a layout document to YAML. Node ids are written sorted.
func (c *YAMLCodec) Export(doc *domain.Document, w io.Writer) error {
	out := *doc
	if out.Positions == nil {
		out.Positions = domain.Snapshot{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
