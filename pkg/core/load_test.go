package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joeydtaylor/steeze-runtime/pkg/core"
	"github.com/stretchr/testify/require"
)

const tomlManifest = `
[function]
entry_point = "example.Echo"
strategy = "Closure"

[environment]
servlet = true

[server]
listen = ":9000"
timeout_ms = 250
`

const yamlManifest = `
function:
  entry_point: example.Echo
environment:
  web: true
auth:
  mode: hs256
  secret_env: MY_SECRET
`

func noEnv(string) string { return "" }

func TestParseConfig_TOML(t *testing.T) {
	t.Parallel()

	cfg, err := core.ParseConfig([]byte(tomlManifest), ".toml", noEnv)
	require.NoError(t, err)
	require.Equal(t, "example.Echo", cfg.Function.EntryPoint)
	require.Equal(t, "closure", cfg.Function.Strategy)
	require.Equal(t, "json-strict", cfg.Function.Codec)
	require.True(t, cfg.Environment.Servlet)
	require.False(t, cfg.Environment.Web)
	require.Equal(t, ":9000", cfg.Server.Listen)
	require.Equal(t, 250, cfg.Server.TimeoutMS)
	require.Equal(t, "none", cfg.Auth.Mode)
}

func TestParseConfig_YAML(t *testing.T) {
	t.Parallel()

	cfg, err := core.ParseConfig([]byte(yamlManifest), ".yml", noEnv)
	require.NoError(t, err)
	require.Equal(t, "accessor", cfg.Function.Strategy)
	require.True(t, cfg.Environment.Web)
	require.Equal(t, "hs256", cfg.Auth.Mode)
	require.Equal(t, "MY_SECRET", cfg.Auth.SecretEnv)
	require.Equal(t, ":8080", cfg.Server.Listen)
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"STEEZE_ENTRY_POINT":    "other.Handler",
		"STEEZE_STRATEGY":       "direct",
		"SERVER_LISTEN_ADDRESS": "127.0.0.1:7000",
		"STEEZE_ENV_WEB":        "true",
		"INVOKE_JWT_SECRET":     "s3cr3t",
	}
	cfg, err := core.ParseConfig([]byte(tomlManifest), ".toml", func(k string) string { return env[k] })
	require.NoError(t, err)
	require.Equal(t, "other.Handler", cfg.Function.EntryPoint)
	require.Equal(t, "direct", cfg.Function.Strategy)
	require.Equal(t, "127.0.0.1:7000", cfg.Server.Listen)
	require.True(t, cfg.Environment.Web)
	require.Equal(t, "hs256", cfg.Auth.Mode, "a secret in the environment enables the guard")
}

func TestParseConfig_Invalid(t *testing.T) {
	t.Parallel()

	_, err := core.ParseConfig([]byte(`[function`), ".toml", noEnv)
	require.ErrorContains(t, err, "manifest toml")

	_, err = core.ParseConfig([]byte("function: [1"), ".yaml", noEnv)
	require.ErrorContains(t, err, "manifest yaml")

	_, err = core.ParseConfig([]byte(`[function]
strategy = "lambda"
entry_point = "x"`), ".toml", noEnv)
	require.ErrorContains(t, err, "function.strategy")
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlManifest), 0o600))

	cfg, err := core.LoadConfig(path)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Function.EntryPoint)

	_, err = core.LoadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}
