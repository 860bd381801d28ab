package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies environment overrides and validates.
// A .env file next to the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnv lets secrets and deployment names come from the environment so they
// never need to live in config.yaml.
func (c *Config) applyEnv() {
	setFromEnv(&c.AI.Endpoint, "AZURE_OPENAI_ENDPOINT")
	setFromEnv(&c.AI.APIVersion, "AZURE_OPENAI_API_VERSION")
	setFromEnv(&c.AI.ChatModel, "AZURE_OPENAI_DEPLOYMENT")
	setFromEnv(&c.AI.APIKey, "AZURE_OPENAI_API_KEY")
	if c.AI.APIKey == "" {
		setFromEnv(&c.AI.APIKey, "OPENAI_API_KEY")
	}
	setFromEnv(&c.Gemini.APIKey, "GEMINI_KEY")
	setFromEnv(&c.Server.Addr, "PODSNAP_ADDR")
	setFromEnv(&c.Logging.Level, "LOG_LEVEL")
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
