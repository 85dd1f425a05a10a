package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remoteboard/internal/domain"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))

	_, vr := NormalizeAndValidate(Default())
	assert.True(t, vr.OK())
	assert.Empty(t, vr.Warnings)
}

func TestEnsureUserConfigWritesDefaultsOnce(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFeedURL, cfg.Feed.URL)
	assert.Empty(t, cfg.App.AllowedOrigins)
	assert.Equal(t, domain.DefaultLevels(), cfg.UI.Levels)

	// an existing file is left alone
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 9000\n"), 0o644))
	_, err = EnsureUserConfig(dir)
	require.NoError(t, err)

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, 180, cfg.UI.PreviewChars, "missing keys keep defaults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Feed.URL = "ftp://example.com/feed"
	cfg.Feed.TimeoutSeconds = 0
	cfg.UI.Levels = append(cfg.UI.Levels, domain.Option{Value: " "})
	cfg.Log.Format = "xml"

	err := Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{"app.port", "feed.url", "feed.timeout_seconds", "ui.levels[6].value", "log.format"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Default()
	cfg.Feed.URL = "  https://jobicy.com/api/v2/remote-jobs  "
	cfg.Logos.AllowHosts = []string{" jobicy.com", "JOBICY.com", ""}
	cfg.UI.Categories = []domain.Option{{Value: " contract "}, {Value: "contract", Label: "dup"}}
	cfg.Log.Level = " DEBUG "

	out, vr := NormalizeAndValidate(cfg)

	assert.True(t, vr.OK(), vr.Errors)
	assert.Equal(t, "https://jobicy.com/api/v2/remote-jobs", out.Feed.URL)
	assert.Equal(t, []string{"jobicy.com"}, out.Logos.AllowHosts)
	assert.Equal(t, []domain.Option{{Value: "contract", Label: "contract"}}, out.UI.Categories)
	assert.Equal(t, "debug", out.Log.Level)
	require.Len(t, vr.Warnings, 1)
	assert.Contains(t, vr.Warnings[0], "ui.categories")
}

func TestNormalizeAndValidateReportsErrors(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 70000

	_, vr := NormalizeAndValidate(cfg)
	assert.False(t, vr.OK())
	assert.Equal(t, []string{"app.port must be 1..65535"}, vr.Errors)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Default()
	cfg.App.AllowedOrigins = []string{" http://localhost:5173/ ", "http://localhost:5173"}

	out, vr := NormalizeAndValidate(cfg)
	assert.True(t, vr.OK(), vr.Errors)
	assert.Equal(t, []string{"http://localhost:5173"}, out.App.AllowedOrigins)

	cfg.App.AllowedOrigins = []string{"localhost:5173", "https://ui.example/app"}
	_, vr = NormalizeAndValidate(cfg)
	assert.Equal(t, []string{
		"app.allowed_origins[0] must be scheme://host[:port]",
		"app.allowed_origins[1] must be scheme://host[:port]",
	}, vr.Errors)
}

func TestLoadIgnoresRetiredKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 9001\n  data_dir: /old\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.App.Port)
}

func TestSaveAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yml")

	cfg := Default()
	cfg.App.Port = 40000
	require.NoError(t, SaveAtomic(path, cfg))

	cfg.App.Port = 40001
	require.NoError(t, SaveAtomic(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40001, got.App.Port)

	bak, err := Load(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, 40000, bak.App.Port)

	cfg.App.Port = -1
	assert.Error(t, SaveAtomic(path, cfg))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BOARD_PORT", "41000")
	t.Setenv("BOARD_FEED_URL", "http://127.0.0.1:9/feed")
	t.Setenv("BOARD_LOG_LEVEL", "warn")
	t.Setenv("BOARD_DATA_DIR", "/tmp/board")

	cfg := Default()
	ApplyEnv(&cfg)

	assert.Equal(t, 41000, cfg.App.Port)
	assert.Equal(t, "http://127.0.0.1:9/feed", cfg.Feed.URL)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/board", DataDir())
}

func TestApplyEnvIgnoresBadPort(t *testing.T) {
	t.Setenv("BOARD_PORT", "not-a-port")

	cfg := Default()
	ApplyEnv(&cfg)
	assert.Equal(t, Default().App.Port, cfg.App.Port)
}
