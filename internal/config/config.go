package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers.
const (
	StorageDynamoDB = "dynamodb"
	StorageSQLite   = "sqlite"
)

// Config holds the API server settings. Values come from the environment
// (a .env file is loaded first by the binaries).
type Config struct {
	Port       int    `env:"PORT" envDefault:"8080"`
	CORSOrigin string `env:"PLANEJAO_CORS_ORIGIN" envDefault:"http://localhost:5173"`

	Storage    string `env:"PLANEJAO_STORAGE" envDefault:"dynamodb"`
	SQLitePath string `env:"PLANEJAO_SQLITE_PATH" envDefault:"planejao.db"`
	SeedFile   string `env:"PLANEJAO_SEED_FILE"`

	DynamoDB DynamoDBConfig

	BasicAuthUser     string `env:"PLANEJAO_BASIC_AUTH_USER"`
	BasicAuthPassword string `env:"PLANEJAO_BASIC_AUTH_PASSWORD"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"LOG_FILE"`

	OTelEnabled  bool   `env:"PLANEJAO_OTEL_ENABLED" envDefault:"true"`
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// DynamoDBConfig is local-friendly: the default credentials work against DynamoDB Local.
type DynamoDBConfig struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	Endpoint        string `env:"DYNAMODB_ENDPOINT"`
	ProjectsTable   string `env:"PROJECTS_TABLE" envDefault:"projects"`
	MembersTable    string `env:"MEMBERS_TABLE" envDefault:"members"`
}

// ClientConfig holds the settings of the board CLI.
type ClientConfig struct {
	BaseURL  string        `env:"PLANEJAO_API_URL" envDefault:"http://localhost:8080/v1"`
	User     string        `env:"PLANEJAO_BASIC_AUTH_USER"`
	Password string        `env:"PLANEJAO_BASIC_AUTH_PASSWORD"`
	Timeout  time.Duration `env:"PLANEJAO_API_TIMEOUT" envDefault:"10s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"warn"`
}

// BasicAuthEnabled reports whether /v1 should require credentials.
func (c Config) BasicAuthEnabled() bool {
	return c.BasicAuthUser != "" && c.BasicAuthPassword != ""
}

// Load parses Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Storage != StorageDynamoDB && cfg.Storage != StorageSQLite {
		return Config{}, fmt.Errorf("unsupported PLANEJAO_STORAGE %q", cfg.Storage)
	}
	return cfg, nil
}

// LoadClient parses ClientConfig from the environment.
func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := ParseEnv(&cfg); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
