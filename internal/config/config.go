// Package config provides configuration management for the edgeline engine.
package config

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Stats    StatsConfig    `mapstructure:"stats" validate:"required"`
	Staking  StakingConfig  `mapstructure:"staking" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the tool server configuration
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ReadTimeoutSec int      `mapstructure:"read_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig represents PostgreSQL connection configuration for the
// bet record store. Optional: when Host is empty the in-memory store is
// used instead.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// StatsConfig represents the stats provider configuration. Flat table
// files are loaded at startup; a remote base URL switches lookups to the
// HTTP provider.
type StatsConfig struct {
	TableDir        string  `mapstructure:"table_dir"`
	RemoteBaseURL   string  `mapstructure:"remote_base_url" validate:"omitempty,url"`
	RemoteAPIKey    string  `mapstructure:"remote_api_key"`
	ReloadSchedule  string  `mapstructure:"reload_schedule"`
	MatchThreshold  float64 `mapstructure:"match_threshold" validate:"gte=0,lte=1"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// StakingConfig represents staking engine defaults
type StakingConfig struct {
	DefaultBankroll      float64 `mapstructure:"default_bankroll" validate:"required,gt=0"`
	DefaultKellyFraction float64 `mapstructure:"default_kelly_fraction" validate:"required,gt=0,lte=1"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// UsePostgres reports whether a PostgreSQL bet store is configured
func (c *Config) UsePostgres() bool {
	return c.Database.Host != ""
}
