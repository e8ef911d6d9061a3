package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	// No client timeout by default: fetches are single attempts.
	require.Equal(t, 0, cfg.HTTP.TimeoutSeconds)
	require.Equal(t, time.Duration(0), cfg.FetchTimeout())
	require.True(t, cfg.Portal.InsecureTLS)
	require.Equal(t, "comparador-presupuestal/1.0", cfg.Portal.UserAgent)
	require.True(t, cfg.Logging.Development)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `server:
  port: 9090
portal:
  insecure_tls: false
  user_agent: "custom-agent/2.0"
logging:
  development: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.False(t, cfg.Portal.InsecureTLS)
	require.Equal(t, "custom-agent/2.0", cfg.Portal.UserAgent)
	require.False(t, cfg.Logging.Development)
	// Untouched sections keep defaults.
	require.Equal(t, 0, cfg.HTTP.TimeoutSeconds)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero port", cfg: Config{Server: ServerConfig{Port: 0}, HTTP: HTTPConfig{TimeoutSeconds: 15}}},
		{name: "negative timeout", cfg: Config{Server: ServerConfig{Port: 8080}, HTTP: HTTPConfig{TimeoutSeconds: -1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.cfg.Validate())
		})
	}
}

func TestValidate_ZeroTimeoutMeansNoClientTimeout(t *testing.T) {
	cfg := Config{Server: ServerConfig{Port: 8080}, HTTP: HTTPConfig{TimeoutSeconds: 0}}

	require.NoError(t, cfg.Validate())
	require.Equal(t, time.Duration(0), cfg.FetchTimeout())
}

func TestLoad_InvalidFileValuesFailValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: -1\n"), 0o600))

	_, err := Load(path)

	require.Error(t, err)
	require.Contains(t, err.Error(), "server.port")
}
