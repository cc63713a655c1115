package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	orig, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(orig) })
	_ = os.Chdir(tmp)
	return tmp
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)

	t.Setenv("YOUTUBE_CLIENT_ID", "test-client-id")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "test-secret")
	t.Setenv("YOUTUBE_TOKEN_PATH", "/tmp/tok.json")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.YouTubeClientID != "test-client-id" {
		t.Errorf("YouTubeClientID = %q, want test-client-id", cfg.YouTubeClientID)
	}
	if cfg.YouTubeClientSecret != "test-secret" {
		t.Errorf("YouTubeClientSecret = %q, want test-secret", cfg.YouTubeClientSecret)
	}
	if cfg.YouTubeTokenPath != "/tmp/tok.json" {
		t.Errorf("YouTubeTokenPath = %q, want /tmp/tok.json", cfg.YouTubeTokenPath)
	}
	if cfg.GCPProject != "test-project" {
		t.Errorf("GCPProject = %q, want test-project", cfg.GCPProject)
	}
}

func TestLoadFromYAML(t *testing.T) {
	tmp := chdirTemp(t)
	t.Setenv("YOUTUBE_CLIENT_ID", "id")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "secret")

	yaml := `
youtube:
  privacy_status: unlisted
  default_tags: ["devlog", "golang"]
  callback_addr: "localhost:9999"
upload:
  cache_dir: /var/cache/clipcast
`
	_ = os.WriteFile(filepath.Join(tmp, "config.yaml"), []byte(yaml), 0644)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.YouTube.PrivacyStatus != "unlisted" {
		t.Errorf("YouTube.PrivacyStatus = %q, want unlisted", cfg.YouTube.PrivacyStatus)
	}
	if len(cfg.YouTube.DefaultTags) != 2 || cfg.YouTube.DefaultTags[0] != "devlog" {
		t.Errorf("YouTube.DefaultTags = %v, want [devlog golang]", cfg.YouTube.DefaultTags)
	}
	if cfg.YouTube.CallbackAddr != "localhost:9999" {
		t.Errorf("YouTube.CallbackAddr = %q, want localhost:9999", cfg.YouTube.CallbackAddr)
	}
	if cfg.Upload.CacheDir != "/var/cache/clipcast" {
		t.Errorf("Upload.CacheDir = %q, want /var/cache/clipcast", cfg.Upload.CacheDir)
	}
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("YOUTUBE_CLIENT_ID", "id")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "secret")
	t.Setenv("YOUTUBE_TOKEN_PATH", "")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.YouTube.PrivacyStatus != defaultPrivacy {
		t.Errorf("YouTube.PrivacyStatus = %q, want %q", cfg.YouTube.PrivacyStatus, defaultPrivacy)
	}
	if cfg.YouTube.CallbackAddr != defaultCallbackAddr {
		t.Errorf("YouTube.CallbackAddr = %q, want %q", cfg.YouTube.CallbackAddr, defaultCallbackAddr)
	}
	if cfg.Upload.CacheDir != defaultCacheDir {
		t.Errorf("Upload.CacheDir = %q, want %q", cfg.Upload.CacheDir, defaultCacheDir)
	}
	if cfg.YouTubeTokenPath != defaultTokenPath {
		t.Errorf("YouTubeTokenPath = %q, want %q", cfg.YouTubeTokenPath, defaultTokenPath)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	chdirTemp(t)
	t.Setenv("YOUTUBE_CLIENT_ID", "id")
	t.Setenv("YOUTUBE_CLIENT_SECRET", "secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() should tolerate a missing config.yaml, got error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}
