package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackmap/internal/catalog"
	"stackmap/internal/codec"
	"stackmap/internal/config"
	"stackmap/internal/domain"
	"stackmap/internal/metrics"
	"stackmap/internal/repository"
	"stackmap/internal/view"
)

// isolate points config discovery and storage at a fresh directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("STACKMAP_STORAGE_BACKEND", config.BackendSQLite)
	t.Setenv("STACKMAP_SQLITE_PATH", filepath.Join(dir, "stackmap.db"))
	color.NoColor = true
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func exportDoc(t *testing.T, mode domain.LayoutMode) *domain.Document {
	t.Helper()
	out, err := run(t, "", "export", "--layout", string(mode), "--format", "yaml")
	require.NoError(t, err)
	doc, err := codec.NewYAMLCodec().Parse(strings.NewReader(out))
	require.NoError(t, err, out)
	return doc
}

func TestExportDefaults(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"layout": "cube"`)
	assert.Contains(t, out, `"shop"`)
}

func TestExportToFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "layout.yaml")

	_, err := run(t, "", "export", "--output", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "layout: cube\n"))
}

func TestImportThenReset(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "lanes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout: lanes\npositions:\n  shop: {x: 7, y: 8}\n"), 0644))

	out, err := run(t, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "lanes")

	doc := exportDoc(t, domain.LayoutLanes)
	assert.Equal(t, domain.Position{X: 7, Y: 8}, doc.Positions["shop"])

	_, err = run(t, "n\n", "reset", "--layout", "lanes")
	require.ErrorIs(t, err, view.ErrNotConfirmed)
	assert.Equal(t, domain.Position{X: 7, Y: 8}, exportDoc(t, domain.LayoutLanes).Positions["shop"])

	out, err = run(t, "yes\n", "reset", "--layout", "lanes")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset the lanes layout")

	preset := catalog.Retail().Preset(domain.LayoutLanes)
	assert.Equal(t, preset["shop"], exportDoc(t, domain.LayoutLanes).Positions["shop"])
}

func TestImportFromStdin(t *testing.T) {
	isolate(t)

	_, err := run(t, `{"layout":"cube","positions":{"oms":{"x":-3,"y":4}}}`, "import", "-", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: -3, Y: 4}, exportDoc(t, domain.LayoutCube).Positions["oms"])

	_, err = run(t, "{broken", "import", "-")
	assert.ErrorIs(t, err, view.ErrInvalidDocument)
}

func TestPayloadAndScenarios(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "payload", "shop-oms")
	require.NoError(t, err)
	assert.Contains(t, out, `"orderId"`)

	out, err = run(t, "", "payload", "shop-analytics")
	require.NoError(t, err)
	assert.Contains(t, out, "no payload available")

	out, err = run(t, "", "scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "order")
	assert.Contains(t, out, "Order to cash")
}

func TestCatalogValidate(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "", "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in catalog")

	bad := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("nodes:\n  - {id: shop, label: Shop, role: channel}\nedges:\n  - {from: shop, to: nowhere}\n"), 0644))

	_, err = run(t, "", "catalog", "validate", bad)
	assert.ErrorContains(t, err, "unknown target")
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	collector := metrics.NewCollector()

	store, err := openStore(ctx, config.StorageConfig{Backend: config.BackendMemory}, collector)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*metrics.InstrumentedStore)
	assert.True(t, ok)
	_, err = store.Get(ctx, repository.ThemeKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	sqliteStore, err := openStore(ctx, config.StorageConfig{
		Backend: config.BackendSQLite,
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}, nil)
	require.NoError(t, err)
	require.NoError(t, sqliteStore.Close())

	_, err = openStore(ctx, config.StorageConfig{Backend: "cassandra"}, nil)
	assert.ErrorContains(t, err, "cassandra")
}
