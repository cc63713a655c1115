package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath   = "config.yaml"
	defaultTokenPath    = "./youtube_token.json"
	defaultPrivacy      = "private"
	defaultCacheDir     = "./.cache"
	defaultCallbackAddr = "localhost:8085"
)

type Config struct {
	YouTubeClientID     string
	YouTubeClientSecret string
	YouTubeTokenPath    string
	GCPProject          string

	YouTube YouTubeConfig `yaml:"youtube"`
	Upload  UploadConfig  `yaml:"upload"`
}

type YouTubeConfig struct {
	PrivacyStatus string   `yaml:"privacy_status"`
	DefaultTags   []string `yaml:"default_tags"`
	CallbackAddr  string   `yaml:"callback_addr"`
}

type UploadConfig struct {
	CacheDir string `yaml:"cache_dir"`
}

func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		YouTubeClientID:     os.Getenv("YOUTUBE_CLIENT_ID"),
		YouTubeClientSecret: os.Getenv("YOUTUBE_CLIENT_SECRET"),
		YouTubeTokenPath:    getEnvOrDefault("YOUTUBE_TOKEN_PATH", defaultTokenPath),
		GCPProject:          os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	if cfg.YouTubeClientSecret == "" {
		if name := os.Getenv("YOUTUBE_CLIENT_SECRET_NAME"); name != "" {
			secret, err := resolveSecret(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve client secret: %w", err)
			}
			cfg.YouTubeClientSecret = secret
		}
	}

	return cfg, nil
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Debug("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.YouTube.PrivacyStatus == "" {
		cfg.YouTube.PrivacyStatus = defaultPrivacy
	}
	if cfg.YouTube.CallbackAddr == "" {
		cfg.YouTube.CallbackAddr = defaultCallbackAddr
	}
	if cfg.Upload.CacheDir == "" {
		cfg.Upload.CacheDir = defaultCacheDir
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
