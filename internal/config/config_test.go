package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultConfig()
	if cfg.API.BaseURL != want.API.BaseURL {
		t.Fatalf("BaseURL = %q, want default %q", cfg.API.BaseURL, want.API.BaseURL)
	}
	if cfg.General.PageSize != want.General.PageSize {
		t.Fatalf("PageSize = %d, want default %d", cfg.General.PageSize, want.General.PageSize)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://money.example.com"
	cfg.General.PageSize = 25

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.API.BaseURL != cfg.API.BaseURL || got.General.PageSize != cfg.General.PageSize {
		t.Fatalf("round-tripped config = %+v, want %+v", got, cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://from-file.example.com"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv("MONEYTRACK_BASE_URL", "https://from-env.example.com")
	t.Setenv("MONEYTRACK_PAGE_SIZE", "50")
	t.Setenv("MONEYTRACK_TIMEOUT_SECS", "not-a-number")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.API.BaseURL != "https://from-env.example.com" {
		t.Fatalf("BaseURL = %q, env must win over file", got.API.BaseURL)
	}
	if got.General.PageSize != 50 {
		t.Fatalf("PageSize = %d, want 50 from env", got.General.PageSize)
	}
	if got.API.RequestTimeoutSecs != DefaultConfig().API.RequestTimeoutSecs {
		t.Fatal("malformed numeric env value must be ignored")
	}
}

func TestStatePathsShareConfigDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "moneytrack")
	for _, p := range []string{ConfigPath(), TokensPath(), SnapshotPath()} {
		if filepath.Dir(p) != want {
			t.Fatalf("state path %q outside config dir %q", p, want)
		}
	}
}
