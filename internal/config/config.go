package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	MCP    MCPConfig    `yaml:"mcp"`
}

type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port" validate:"min=1,max=65535"`
	CORSOrigin string `yaml:"cors_origin" validate:"required,url|eq=*"`
}

type DBConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	Path  string `yaml:"path"`
}

// MCPConfig controls the MCP surface of the HTTP server.
type MCPConfig struct {
	HTTP bool `yaml:"http"`
}

var validate = validator.New()

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       3001,
			CORSOrigin: "http://localhost:5173",
		},
		DB: DBConfig{
			Path: "data/snapshots.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. path takes precedence over CTXSNAP_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CTXSNAP_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the final configuration.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func applyEnv(cfg *Config) error {
	if host := os.Getenv("CTXSNAP_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr, key := firstEnv("CTXSNAP_SERVER_PORT", "PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		cfg.Server.Port = port
	}
	if origin, _ := firstEnv("CTXSNAP_CORS_ORIGIN", "CORS_ORIGIN"); origin != "" {
		cfg.Server.CORSOrigin = origin
	}
	if dbPath, _ := firstEnv("CTXSNAP_DB_PATH", "DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("CTXSNAP_LOG_LEVEL"); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	if logPath := os.Getenv("CTXSNAP_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if raw := os.Getenv("CTXSNAP_MCP_HTTP"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid CTXSNAP_MCP_HTTP: %w", err)
		}
		cfg.MCP.HTTP = enabled
	}
	return nil
}

// firstEnv returns the first non-empty value among keys and the key it came from.
func firstEnv(keys ...string) (string, string) {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v, key
		}
	}
	return "", ""
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
