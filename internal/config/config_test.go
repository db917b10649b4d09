package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndgpemu/ndgpemu/errs"
	"github.com/ndgpemu/ndgpemu/params"
	"github.com/ndgpemu/ndgpemu/spline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "artifacts", cfg.Artifacts.Dir)
	require.Equal(t, "grid.art", cfg.Artifacts.Files.Grid)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.NoError(t, cfg.Validate())

	policy, err := cfg.RangePolicy()
	require.NoError(t, err)
	require.Equal(t, params.PolicyStrict, policy)

	ext, err := cfg.Extrapolation()
	require.NoError(t, err)
	require.Equal(t, spline.Raise, ext)
	require.Len(t, cfg.LoadOptions(), 1)
}

func TestConfigSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ndgpemu.yaml")

	cfg := DefaultConfig()
	cfg.Artifacts.Dir = "/data/emulator"
	cfg.Predict.RangePolicy = "warn"
	cfg.Predict.Extrapolation = "const"
	cfg.Server.CORSOrigins = []string{"https://example.org"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ndgpemu.yaml")
	data := []byte(`
artifacts:
  dir: ./trained
  files:
    regressor: gp.art
server:
  request_timeout: 5s
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./trained", cfg.Artifacts.Dir)
	require.Equal(t, "gp.art", cfg.Artifacts.Files.Regressor)
	require.Equal(t, "basis.art", cfg.Artifacts.Files.Basis)
	require.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "raise", cfg.Predict.Extrapolation)
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("artifacts: [1, 2"), 0o644))
	_, err := Load(bad)
	require.Error(t, err)

	policy := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(policy, []byte("predict:\n  range_policy: lenient\n"), 0o644))
	_, err = Load(policy)
	require.ErrorContains(t, err, "range_policy")

	ext := filepath.Join(dir, "ext.yaml")
	require.NoError(t, os.WriteFile(ext, []byte("predict:\n  extrapolation: cubic\n"), 0o644))
	_, err = Load(ext)
	require.ErrorIs(t, err, errs.ErrInvalidExtrapolation)
}
