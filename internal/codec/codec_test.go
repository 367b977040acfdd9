package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackmap/internal/domain"
)

func sampleDocument() *domain.Document {
	return domain.NewDocument(domain.LayoutLanes, domain.Snapshot{
		"shop": {X: -120, Y: 40.5},
		"oms":  {X: 0, Y: 0},
	})
}

func TestRoundTrip(t *testing.T) {
	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			c, err := ForFormat(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, c.Export(sampleDocument(), &buf))

			got, err := c.Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, sampleDocument(), got)
		})
	}
}

func TestJSONExportShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(&domain.Document{Layout: domain.LayoutCube}, &buf))

	assert.JSONEq(t, `{"layout":"cube","positions":{}}`, buf.String())
	assert.Contains(t, buf.String(), "\n  \"layout\"")
}

func TestYAMLExportShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(sampleDocument(), &buf))

	// yaml.v3 quotes the y key since a bare y is a YAML 1.1 boolean; the
	// quoting keeps YAML 1.1 readers from decoding it as true.
	want := "layout: lanes\npositions:\n  oms:\n    x: 0\n    \"y\": 0\n  shop:\n    x: -120\n    \"y\": 40.5\n"
	assert.Equal(t, want, buf.String())
}

func TestParseOptionalFields(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		input string
		want  domain.Document
	}{
		{"json layout only", NewJSONCodec(), `{"layout":"lanes"}`, domain.Document{Layout: domain.LayoutLanes}},
		{"json positions only", NewJSONCodec(), `{"positions":{"shop":{"x":1,"y":2}}}`,
			domain.Document{Positions: domain.Snapshot{"shop": {X: 1, Y: 2}}}},
		{"json empty object", NewJSONCodec(), `{}`, domain.Document{}},
		{"yaml layout only", NewYAMLCodec(), "layout: cube\n", domain.Document{Layout: domain.LayoutCube}},
		{"yaml positions only", NewYAMLCodec(), "positions:\n  wms: {x: 3, y: 4}\n",
			domain.Document{Positions: domain.Snapshot{"wms": {X: 3, Y: 4}}}},
		{"json null position", NewJSONCodec(), `{"positions":{"shop":null,"oms":{"x":1,"y":2}}}`,
			domain.Document{Positions: domain.Snapshot{"oms": {X: 1, Y: 2}}}},
		{"yaml null position", NewYAMLCodec(), "positions:\n  shop: ~\n  wms: {x: 3, y: 4}\n",
			domain.Document{Positions: domain.Snapshot{"wms": {X: 3, Y: 4}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.codec.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		codec Codec
		input string
	}{
		{"json truncated", NewJSONCodec(), `{"layout":"cube",`},
		{"json not an object", NewJSONCodec(), `["cube"]`},
		{"json null", NewJSONCodec(), `null`},
		{"json empty", NewJSONCodec(), ``},
		{"json trailing data", NewJSONCodec(), `{} {}`},
		{"json unknown layout", NewJSONCodec(), `{"layout":"spiral"}`},
		{"json bad position", NewJSONCodec(), `{"positions":{"shop":{"x":"left"}}}`},
		{"yaml scalar", NewYAMLCodec(), "just some text\n"},
		{"yaml empty", NewYAMLCodec(), ""},
		{"yaml unknown layout", NewYAMLCodec(), "layout: grid\n"},
		{"yaml unclosed flow", NewYAMLCodec(), "layout: [cube\n"},
		{"yaml nan coordinate", NewYAMLCodec(), "positions:\n  shop: {x: .nan, y: 1}\n"},
		{"yaml infinite coordinate", NewYAMLCodec(), "positions:\n  shop: {x: 1, y: -.inf}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestForFormat(t *testing.T) {
	for name, want := range map[string]string{"": "json", "JSON": "json", "yaml": "yaml", "yml": "yaml"} {
		c, err := ForFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, c.Format())
	}

	_, err := ForFormat("xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestForContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"", "json"},
		{"application/json; charset=utf-8", "json"},
		{"application/yaml", "yaml"},
		{"text/x-yaml", "yaml"},
	}
	for _, tt := range tests {
		c, err := ForContentType(tt.contentType)
		require.NoError(t, err, tt.contentType)
		assert.Equal(t, tt.want, c.Format())
	}

	_, err := ForContentType("application/xml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestForPath(t *testing.T) {
	assert.Equal(t, "yaml", ForPath("layout.YML").Format())
	assert.Equal(t, "yaml", ForPath("/tmp/layout.yaml").Format())
	assert.Equal(t, "json", ForPath("layout.json").Format())
	assert.Equal(t, "json", ForPath("layout").Format())
}
