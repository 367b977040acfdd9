// Package codec reads and writes layout documents.
package codec

import (
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"strings"

	"stackmap/internal/domain"
)

// ErrUnsupportedFormat is returned for a format or content type with no codec
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Importer parses a layout document
type Importer interface {
	Parse(r io.Reader) (*domain.Document, error)
	Format() string
}

// Exporter writes a layout document
type Exporter interface {
	Export(doc *domain.Document, w io.Writer) error
	Format() string
	ContentType() string
}

// Codec both imports and exports one format
type Codec interface {
	Importer
	Exporter
}

// Formats lists the supported format names, default first
func Formats() []string {
	return []string{"json", "yaml"}
}

// ForFormat returns the codec for a format name. An empty name selects JSON.
func ForFormat(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ForContentType returns the codec for an HTTP media type. An empty type selects JSON.
func ForContentType(contentType string) (Codec, error) {
	if contentType == "" {
		return NewJSONCodec(), nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
	}

	switch mediaType {
	case "application/json", "text/json", "text/plain":
		return NewJSONCodec(), nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, mediaType)
	}
}

// ForPath picks a codec from a file extension, defaulting to JSON
func ForPath(path string) Codec {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return NewYAMLCodec()
	}
	return NewJSONCodec()
}

// importDocument is the decoded form of an imported document. Null
// positions decode to nil and are treated as absent.
type importDocument struct {
	Layout    domain.LayoutMode           `json:"layout" yaml:"layout"`
	Positions map[string]*domain.Position `json:"positions" yaml:"positions"`
}

// document validates the decoded fields. A missing layout is left empty for
// the caller to fill in.
func (in *importDocument) document() (*domain.Document, error) {
	if in.Layout != "" && !in.Layout.Valid() {
		return nil, fmt.Errorf("unknown layout %q", in.Layout)
	}

	doc := &domain.Document{Layout: in.Layout}
	if in.Positions == nil {
		return doc, nil
	}

	doc.Positions = make(domain.Snapshot, len(in.Positions))
	for id, pos := range in.Positions {
		if pos == nil {
			continue
		}
		if !finite(pos.X) || !finite(pos.Y) {
			return nil, fmt.Errorf("position of %q is not a finite number", id)
		}
		doc.Positions[id] = *pos
	}
	return doc, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
