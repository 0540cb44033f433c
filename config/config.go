package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`
	User   string `yaml:"user"`
	DBName string `yaml:"dbname"`

	// From DB_PASSWORD, never from the config file.
	Password string `yaml:"-"`
}

type ProvidersConfig struct {
	CongressBaseURL  string `yaml:"congress_base_url"`
	CongressPageSize int    `yaml:"congress_page_size"`
	CensusBaseURL    string `yaml:"census_base_url"`

	RequestTimeoutStr string        `yaml:"request_timeout"`
	RequestTimeout    time.Duration `yaml:"-"` // parsed from RequestTimeoutStr

	// From CONGRESS_API_KEY / CENSUS_API_KEY.
	CongressAPIKey string `yaml:"-"`
	CensusAPIKey   string `yaml:"-"`
}

type SyncConfig struct {
	PaceIntervalStr string        `yaml:"pace_interval"`
	PaceInterval    time.Duration `yaml:"-"` // parsed from PaceIntervalStr

	// AllowManual gates the -sync-now local trigger; keep false in production.
	AllowManual bool `yaml:"allow_manual"`

	// From SYNC_SECRET; the bearer secret for the HTTP trigger.
	Secret string `yaml:"-"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Providers ProvidersConfig `yaml:"providers"`
	Sync      SyncConfig      `yaml:"sync"`
}

// Load reads the YAML config file and merges in secrets from the environment
// (a .env file is honored if present). Missing credentials are a
// configuration error: the engine refuses to start rather than run a sync
// that cannot authenticate upstream.
func Load(configPath string) (*Config, error) {
	// Best effort: no .env file just means the environment is already
	// populated (the production case).
	_ = godotenv.Load()

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Database.Password = os.Getenv("DB_PASSWORD")
	cfg.Providers.CongressAPIKey = os.Getenv("CONGRESS_API_KEY")
	cfg.Providers.CensusAPIKey = os.Getenv("CENSUS_API_KEY")
	cfg.Sync.Secret = os.Getenv("SYNC_SECRET")

	cfg.Providers.RequestTimeout, err = parseDuration(cfg.Providers.RequestTimeoutStr, 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to parse providers.request_timeout: %w", err)
	}
	cfg.Sync.PaceInterval, err = parseDuration(cfg.Sync.PaceIntervalStr, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sync.pace_interval: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Providers.CongressPageSize <= 0 {
		cfg.Providers.CongressPageSize = 250
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("database host, user, and dbname must be configured")
	}
	if c.Providers.CongressBaseURL == "" || c.Providers.CensusBaseURL == "" {
		return fmt.Errorf("provider base URLs must be configured")
	}
	if c.Providers.CongressAPIKey == "" {
		return fmt.Errorf("CONGRESS_API_KEY is not set")
	}
	if c.Providers.CensusAPIKey == "" {
		return fmt.Errorf("CENSUS_API_KEY is not set")
	}
	return nil
}

func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseDuration(s)
}
