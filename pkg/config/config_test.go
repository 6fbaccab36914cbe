package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clients.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
jwt_secret_key: secret
user_service_url: http://users:8000
api_port: 9000
cors_origins:
  - https://app.abcall.co
log_format: json
database_url: postgres://clients:pw@db:5432/clients
user_service_timeout: 2s
breaker_failure_threshold: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.JWTSecretKey)
	assert.Equal(t, "http://users:8000", cfg.UserServiceURL)
	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, []string{"https://app.abcall.co"}, cfg.CORSOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "postgres://clients:pw@db:5432/clients", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Second, cfg.UserServiceTimeout)
	assert.Equal(t, uint32(3), cfg.BreakerFailureThreshold)
	assert.Equal(t, path, cfg.ConfigPath)

	// Defaults
	assert.Equal(t, DefaultAPIHost, cfg.APIHost)
	assert.Equal(t, DefaultJWTAlgorithm, cfg.JWTAlgorithm)
	assert.Equal(t, DefaultRoleClaim, cfg.RoleClaim)
	assert.Equal(t, DefaultRequiredRole, cfg.RequiredRole)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, DefaultUserCacheTTL, cfg.UserCacheTTL)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
jwt_secret_key: from-file
user_service_url: http://users:8000
`)
	t.Setenv("CLIENTS_JWT_SECRET_KEY", "from-env")
	t.Setenv("CLIENTS_API_PORT", "8443")
	t.Setenv("CLIENTS_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CLIENTS_USER_CACHE_TTL", "90s")
	t.Setenv("CLIENTS_JWT_ALGORITHM", "hs512")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWTSecretKey)
	assert.Equal(t, 8443, cfg.APIPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 90*time.Second, cfg.UserCacheTTL)
	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			JWTSecretKey:       "secret",
			UserServiceURL:     "http://users",
			APIPort:            8000,
			LogFormat:          "text",
			JWTAlgorithm:       "HS256",
			DBPath:             "/tmp/clients.db",
			DBMaxConns:         4,
			UserServiceTimeout: time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no secret", mutate: func(c *Config) { c.JWTSecretKey = "" }, wantErr: "jwt_secret_key is required"},
		{name: "no user service", mutate: func(c *Config) { c.UserServiceURL = "" }, wantErr: "user_service_url is required"},
		{name: "asymmetric algorithm", mutate: func(c *Config) { c.JWTAlgorithm = "RS256" }, wantErr: "jwt_algorithm"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "log_format"},
		{name: "bad port", mutate: func(c *Config) { c.APIPort = 70000 }, wantErr: "api_port"},
		{name: "no storage", mutate: func(c *Config) { c.DBPath = "" }, wantErr: "database_url or db_path"},
		{name: "half ssl", mutate: func(c *Config) { c.SSLCert = "/tmp/cert.pem" }, wantErr: "both ssl_cert and ssl_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsDevMode(t *testing.T) {
	cfg := &Config{}

	t.Setenv("CLIENTS_DEV_MODE", "1")
	assert.True(t, cfg.IsDevMode())

	t.Setenv("CLIENTS_DEV_MODE", "")
	assert.False(t, cfg.IsDevMode())
}
