package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvVars = []string{
	"MOVIEDASH_CONFIG",
	"MOVIEDASH_SERVER_PORT", "MOVIEDASH_SERVER_READ_TIMEOUT",
	"MOVIEDASH_SECURITY_ALLOWED_ORIGINS", "MOVIEDASH_SECURITY_RATE_LIMIT_RPS",
	"MOVIEDASH_LOGGING_LEVEL", "MOVIEDASH_LOGGING_OUTPUT",
	"MOVIEDASH_DATA_FILE", "MOVIEDASH_DATA_HISTOGRAM_BINS", "MOVIEDASH_DATA_VOTE_THRESHOLD",
	"MOVIEDASH_TELEMETRY_TRACE_EXPORTER",
}

// isolateEnv clears the variables under test and restores them afterwards
func isolateEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string)
	for _, v := range testEnvVars {
		if val, ok := os.LookupEnv(v); ok {
			original[v] = val
		}
		os.Unsetenv(v)
	}
	t.Cleanup(func() {
		for _, v := range testEnvVars {
			if val, ok := original[v]; ok {
				os.Setenv(v, val)
			} else {
				os.Unsetenv(v)
			}
		}
	})
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moviedash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env and no file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "movies.csv", cfg.Data.File)
				assert.Equal(t, 30, cfg.Data.HistogramBins)
				assert.Equal(t, 10, cfg.Data.TopN)
				assert.Equal(t, int64(100_000), cfg.Data.VoteThreshold)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"MOVIEDASH_SERVER_PORT":              "9090",
				"MOVIEDASH_DATA_FILE":                "/data/movies.csv",
				"MOVIEDASH_DATA_HISTOGRAM_BINS":      "40",
				"MOVIEDASH_SECURITY_ALLOWED_ORIGINS": "http://a.test,http://b.test",
				"MOVIEDASH_TELEMETRY_TRACE_EXPORTER": "stdout",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "/data/movies.csv", cfg.Data.File)
				assert.Equal(t, 40, cfg.Data.HistogramBins)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "file overrides defaults",
			file: "server:\n  port: 7070\n  read_timeout: 5s\ndata:\n  file: films.csv\n  top_n: 5\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "films.csv", cfg.Data.File)
				assert.Equal(t, 5, cfg.Data.TopN)
				assert.Equal(t, 30, cfg.Data.HistogramBins)
			},
		},
		{
			name: "environment overrides file",
			env:  map[string]string{"MOVIEDASH_SERVER_PORT": "6060"},
			file: "server:\n  port: 7070\ndata:\n  file: films.csv\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 6060, cfg.Server.Port)
				assert.Equal(t, "films.csv", cfg.Data.File)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"MOVIEDASH_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "unparsable env value",
			env:     map[string]string{"MOVIEDASH_SERVER_READ_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "zero histogram bins",
			env:     map[string]string{"MOVIEDASH_DATA_HISTOGRAM_BINS": "0"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"MOVIEDASH_LOGGING_LEVEL": "loud"},
			wantErr: true,
		},
		{
			name:    "malformed file",
			file:    "server: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	isolateEnv(t)
	path := writeConfigFile(t, "data:\n  vote_threshold: 5000\n")
	os.Setenv("MOVIEDASH_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(5000), cfg.Data.VoteThreshold)
}

func TestLoadFile_MissingFile(t *testing.T) {
	isolateEnv(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"empty data file", func(c *Config) { c.Data.File = "" }, true},
		{"no allowed origins", func(c *Config) { c.Security.AllowedOrigins = nil }, true},
		{"ping not shorter than pong", func(c *Config) { c.WebSocket.PingPeriod = c.WebSocket.PongWait }, true},
		{"sample ratio above one", func(c *Config) { c.Telemetry.SampleRatio = 1.5 }, true},
		{"unknown metric exporter", func(c *Config) { c.Telemetry.MetricExporter = "otlp" }, true},
		{"format forced to json", func(c *Config) { c.Logging.Format = "text" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "json", cfg.Logging.Format)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultDataFile, cfg.Data.File)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.True(t, cfg.WebSocket.Enabled)
	assert.Less(t, cfg.WebSocket.PingPeriod, cfg.WebSocket.PongWait)
	assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
}
