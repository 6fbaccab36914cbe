package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	JWTSecretKey   string `mapstructure:"jwt_secret_key"`
	UserServiceURL string `mapstructure:"user_service_url"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Optional logging settings
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "text" or "json"

	// Optional JWT settings
	JWTAlgorithm string `mapstructure:"jwt_algorithm"`
	RoleClaim    string `mapstructure:"role_claim"`
	RequiredRole string `mapstructure:"required_role"`

	// Storage. A postgres:// URL selects PostgreSQL, otherwise DBPath is used with SQLite.
	DatabaseURL string `mapstructure:"database_url"`
	DBPath      string `mapstructure:"db_path"`
	DBMaxConns  int    `mapstructure:"db_max_conns"`

	// User service
	UserServiceTimeout      time.Duration `mapstructure:"user_service_timeout"`
	RedisURL                string        `mapstructure:"redis_url"`
	UserCacheTTL            time.Duration `mapstructure:"user_cache_ttl"`
	BreakerFailureThreshold uint32        `mapstructure:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `mapstructure:"breaker_timeout"`

	ConfigPath string `mapstructure:"-"`
}

const (
	EnvPrefix                      = "CLIENTS"
	DefaultConfigPath              = "/etc/abcall/clients.yml"
	DefaultDBPath                  = "/var/lib/abcall/clients.sqlite3"
	DefaultAPIHost                 = "0.0.0.0"
	DefaultAPIPort                 = 8000
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
	DefaultJWTAlgorithm            = "HS256"
	DefaultRoleClaim               = "custom:custom:userRole"
	DefaultRequiredRole            = "superadmin"
	DefaultDBMaxConns              = 10
	DefaultUserServiceTimeout      = 5 * time.Second
	DefaultUserCacheTTL            = 5 * time.Minute
	DefaultBreakerFailureThreshold = 5
	DefaultBreakerTimeout          = 30 * time.Second
)

// Load reads the YAML file at configPath and applies CLIENTS_* environment
// overrides. A missing file is only tolerated for the default path, so a
// container can be configured from the environment alone.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath
	cfg.CORSOrigins = splitOrigins(cfg.CORSOrigins)
	cfg.JWTAlgorithm = strings.ToUpper(cfg.JWTAlgorithm)

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("user_service_url", "")
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("ssl_cert", "")
	v.SetDefault("ssl_key", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("role_claim", DefaultRoleClaim)
	v.SetDefault("required_role", DefaultRequiredRole)
	v.SetDefault("database_url", "")
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("db_max_conns", DefaultDBMaxConns)
	v.SetDefault("user_service_timeout", DefaultUserServiceTimeout)
	v.SetDefault("redis_url", "")
	v.SetDefault("user_cache_ttl", DefaultUserCacheTTL)
	v.SetDefault("breaker_failure_threshold", DefaultBreakerFailureThreshold)
	v.SetDefault("breaker_timeout", DefaultBreakerTimeout)
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(origins []string) []string {
	var out []string
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwt_secret_key is required")
	}

	if c.UserServiceURL == "" {
		return fmt.Errorf("user_service_url is required")
	}

	switch strings.ToUpper(c.JWTAlgorithm) {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be 'text' or 'json'")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port out of range: %d", c.APIPort)
	}

	if c.DatabaseURL == "" && c.DBPath == "" {
		return fmt.Errorf("either database_url or db_path is required")
	}

	if c.DBMaxConns <= 0 {
		return fmt.Errorf("db_max_conns must be positive")
	}

	if c.UserServiceTimeout <= 0 {
		return fmt.Errorf("user_service_timeout must be positive")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return os.Getenv(EnvPrefix+"_DEV_MODE") == "1"
}
