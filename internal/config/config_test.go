package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dodomains/dodomains/internal/config"
)

var envVars = []string{
	"SERVER_ADDRESS", "GENERATOR_URL", "GENERATOR_TIMEOUT", "LOG_LEVEL",
	"SESSION_SECRET", "SESSION_TTL", "GENERATE_RATE", "GENERATE_BURST",
	"ENABLE_PPROF", "ENABLE_HTTPS", "TLS_HOSTS", "CONFIG",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseArgs_Defaults(t *testing.T) {
	clearEnv(t)

	opts, err := config.ParseArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", opts.Port)
	assert.Equal(t, "http://localhost:3000", opts.GeneratorURL)
	assert.Equal(t, time.Duration(0), opts.GeneratorTimeout)
	assert.Equal(t, "info", opts.LogLevel)
	assert.Equal(t, config.DefaultSessionSecret, opts.SessionSecret)
	assert.Equal(t, 2*time.Hour, opts.SessionTTL)
	assert.Equal(t, 10, opts.GenerateRate)
	assert.False(t, opts.EnableHTTPS)
	assert.False(t, opts.EnablePprof)
	assert.Empty(t, opts.Config)
}

func TestParseArgs_Flags(t *testing.T) {
	clearEnv(t)

	opts, err := config.ParseArgs([]string{"-a", ":9090", "-g", "http://gen:3000", "-t", "30s", "-r", "0", "-s"})
	require.NoError(t, err)

	assert.Equal(t, ":9090", opts.Port)
	assert.Equal(t, "http://gen:3000", opts.GeneratorURL)
	assert.Equal(t, 30*time.Second, opts.GeneratorTimeout)
	assert.Equal(t, 0, opts.GenerateRate)
	assert.True(t, opts.EnableHTTPS)
}

func TestParseArgs_EnvOverridesFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")
	t.Setenv("GENERATOR_URL", "http://example.com")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("SESSION_TTL", "45m")

	opts, err := config.ParseArgs([]string{"-a", ":1234"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", opts.Port)
	assert.Equal(t, "http://example.com", opts.GeneratorURL)
	assert.True(t, opts.EnableHTTPS)
	assert.Equal(t, 45*time.Minute, opts.SessionTTL)
}

func TestParseArgs_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GENERATE_RATE", "lots")

	_, err := config.ParseArgs(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GENERATE_RATE")
}

func TestParseArgs_ConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "cfg.json",
			content: `{
				"server_address": "10.0.0.1:8081",
				"generator_url": "http://gen.internal",
				"generator_timeout": "90s",
				"enable_pprof": true,
				"generate_rate": 4
			}`,
		},
		{
			name: "yaml",
			file: "cfg.yaml",
			content: "server_address: 10.0.0.1:8081\n" +
				"generator_url: http://gen.internal\n" +
				"generator_timeout: 90s\n" +
				"enable_pprof: true\n" +
				"generate_rate: 4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CONFIG", writeConfig(t, tt.file, tt.content))

			opts, err := config.ParseArgs(nil)
			require.NoError(t, err)

			assert.Equal(t, "10.0.0.1:8081", opts.Port)
			assert.Equal(t, "http://gen.internal", opts.GeneratorURL)
			assert.Equal(t, 90*time.Second, opts.GeneratorTimeout)
			assert.True(t, opts.EnablePprof)
			assert.Equal(t, 4, opts.GenerateRate)
			assert.Equal(t, "info", opts.LogLevel, "keys missing from the file keep defaults")
		})
	}
}

func TestParseArgs_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "cfg.json", `{"server_address": "file:1", "generator_url": "http://file", "log_level": "debug"}`)
	t.Setenv("LOG_LEVEL", "warn")

	opts, err := config.ParseArgs([]string{"-c", path, "-a", "flag:2"})
	require.NoError(t, err)

	assert.Equal(t, "flag:2", opts.Port, "explicit flag beats file")
	assert.Equal(t, "http://file", opts.GeneratorURL, "file beats default")
	assert.Equal(t, "warn", opts.LogLevel, "env beats file")
}

func TestParseArgs_MissingConfigFile(t *testing.T) {
	clearEnv(t)

	_, err := config.ParseArgs([]string{"-c", filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, err)
}

func TestHosts(t *testing.T) {
	o := &config.Options{TLSHosts: " example.com, www.example.com ,,"}
	assert.Equal(t, []string{"example.com", "www.example.com"}, o.Hosts())
	assert.Nil(t, (&config.Options{}).Hosts())
}
