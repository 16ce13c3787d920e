package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server      ServerConfig
	RocketChat  RocketChatConfig
	OpenProject OpenProjectConfig
	Mappings    MappingsConfig
	ConfigPath  string
}

type ServerConfig struct {
	Port      int
	LogLevel  string
	LogFormat string
}

func (c *ServerConfig) Addr() string {
	return "0.0.0.0:" + strconv.Itoa(c.Port)
}

type RocketChatConfig struct {
	WebhookURL     string
	WebhookToken   string
	DefaultChannel string
}

// OpenProjectConfig covers the API used for author lookups and the web UI
// used for work package links. Host is sent as the Host header when the API
// sits behind a proxy that routes on it.
type OpenProjectConfig struct {
	APIURL string
	APIKey string
	Host   string
	WebURL string
}

type MappingsConfig struct {
	UsersCSVPath    string
	ProjectsCSVPath string
}

func LoadFromEnv() (*Config, error) {
	serverPort, err := getEnvOrDefaultInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}

	host := getEnvOrDefault("OP_API_HOST", "localhost:8080")

	cfg := &Config{
		Server: ServerConfig{
			Port:      serverPort,
			LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
			LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		RocketChat: RocketChatConfig{
			WebhookURL:     os.Getenv("RC_WEBHOOK_URL"),
			WebhookToken:   os.Getenv("RC_WEBHOOK_TOKEN"),
			DefaultChannel: getEnvOrDefault("DEFAULT_CHANNEL", "#general"),
		},
		OpenProject: OpenProjectConfig{
			APIURL: strings.TrimRight(getEnvOrDefault("OP_API_URL", "http://openproject:80"), "/"),
			APIKey: os.Getenv("OP_API_KEY"),
			Host:   host,
			WebURL: strings.TrimRight(getEnvOrDefault("OP_WEB_URL", "http://"+host), "/"),
		},
		Mappings: MappingsConfig{
			UsersCSVPath:    getEnvOrDefault("USERS_CSV_PATH", "users.csv"),
			ProjectsCSVPath: getEnvOrDefault("PROJECTS_CSV_PATH", "projects.csv"),
		},
		ConfigPath: getEnvOrDefault("CONFIG_PATH", "config.yaml"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.RocketChat.WebhookURL == "" {
		return fmt.Errorf("RC_WEBHOOK_URL is required")
	}
	if c.RocketChat.DefaultChannel == "" {
		return fmt.Errorf("DEFAULT_CHANNEL must not be empty")
	}
	// OP_API_KEY is optional: without it author resolution degrades to the
	// fallback label instead of failing startup.
	return nil
}

// HasAPIKey reports whether author lookups against the OpenProject API are
// possible.
func (c *Config) HasAPIKey() bool {
	return c.OpenProject.APIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	return i, nil
}
