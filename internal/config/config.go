package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// DefaultWorkflowEndpoint is the fixed automation webhook that receives
// administrative create/update actions.
const DefaultWorkflowEndpoint = "https://cafe-sitio.app.n8n.cloud/webhook-test/3ba6316f-49de-4777-91a1-fd095719b50b"

// Config holds all service settings loaded from YAML/env. Backend, Redis and
// Enphase settings are optional: their absence degrades the dependent
// components instead of failing startup.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"MONITOR_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"MONITOR_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"MONITOR_REDIS_ADDR"`
		Password string `yaml:"password" env:"MONITOR_REDIS_PASSWORD"`
	} `yaml:"redis"`
	Session struct {
		Secret           string `yaml:"secret" env:"MONITOR_SESSION_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"MONITOR_SESSION_EXPIRES_MINUTES"`
	} `yaml:"session"`
	Admin struct {
		Email        string `yaml:"email" env:"MONITOR_ADMIN_EMAIL"`
		PasswordHash string `yaml:"passwordHash" env:"MONITOR_ADMIN_PASSWORD_HASH"`
	} `yaml:"admin"`
	Workflow struct {
		Endpoint string `yaml:"endpoint" env:"MONITOR_WORKFLOW_ENDPOINT"`
	} `yaml:"workflow"`
	Enphase struct {
		Enabled      bool   `yaml:"enabled" env:"ENPHASE_ENABLED"`
		APIURL       string `yaml:"apiUrl" env:"ENPHASE_API_URL"`
		Email        string `yaml:"email" env:"ENPHASE_USER_EMAIL"`
		Password     string `yaml:"password" env:"ENPHASE_USER_PASSWORD"`
		ClientID     string `yaml:"clientId" env:"ENPHASE_CLIENT_ID"`
		ClientSecret string `yaml:"clientSecret" env:"ENPHASE_CLIENT_SECRET"`
	} `yaml:"enphase"`
}

// Load reads configuration and applies defaults. A missing session secret is
// replaced with a random one, which invalidates sessions across restarts.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Session.ExpiresInMinutes = 60
	cfg.Workflow.Endpoint = DefaultWorkflowEndpoint

	if err := load(cfg); err != nil {
		return nil, err
	}

	if cfg.Session.ExpiresInMinutes <= 0 {
		cfg.Session.ExpiresInMinutes = 60
	}
	if cfg.Session.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Session.Secret = secret
	}

	return cfg, nil
}

// HTTPAddress returns a host:port formatted listen address.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// SessionTTL converts the configured session expiry to a duration.
func (c *Config) SessionTTL() time.Duration {
	if c.Session.ExpiresInMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.Session.ExpiresInMinutes) * time.Minute
}

// EnphaseConfigured reports whether all provider credentials are present.
func (c *Config) EnphaseConfigured() bool {
	return c.Enphase.APIURL != "" &&
		c.Enphase.Email != "" &&
		c.Enphase.Password != "" &&
		c.Enphase.ClientID != "" &&
		c.Enphase.ClientSecret != ""
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("config: generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
