package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetConfigValuePrecedence(t *testing.T) {
	t.Setenv("COMPASS_TEST_KEY", "from-env")

	if got := getConfigValue("from-flag", "COMPASS_TEST_KEY", "default"); got != "from-flag" {
		t.Errorf("flag should win: got %q", got)
	}
	if got := getConfigValue("", "COMPASS_TEST_KEY", "default"); got != "from-env" {
		t.Errorf("env should win over default: got %q", got)
	}
	if got := getConfigValue("", "COMPASS_TEST_MISSING", "default"); got != "default" {
		t.Errorf("default should apply: got %q", got)
	}
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("", "COMPASS_TEST_DURATION", "45s")
	if err != nil {
		t.Fatalf("parseDurationValue: %v", err)
	}
	if d != 45*time.Second {
		t.Errorf("got %v, want 45s", d)
	}

	t.Setenv("COMPASS_TEST_DURATION", "not-a-duration")
	if _, err := parseDurationValue("", "COMPASS_TEST_DURATION", "45s"); err == nil {
		t.Error("expected error for malformed duration")
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins("http://localhost:3000, https://compass.example.com ,")
	if len(got) != 2 {
		t.Fatalf("got %d origins, want 2: %v", len(got), got)
	}
	if got[0] != "http://localhost:3000" || got[1] != "https://compass.example.com" {
		t.Errorf("unexpected origins: %v", got)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		App:         AppConfig{Environment: "development"},
		Logger:      LoggerConfig{Level: "info"},
		Data:        DataConfig{BasePath: "/tmp/compass"},
		Recommender: RecommenderConfig{BaseURL: "http://localhost:3002"},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := *valid
	bad.App.Environment = "testing"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown environment")
	}

	bad = *valid
	bad.Logger.Level = "verbose"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}

	bad = *valid
	bad.Data.BasePath = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for empty data path")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	contents := "# comment\nCOMPASS_ENVFILE_A=alpha\nCOMPASS_ENVFILE_B=\"quoted\"\nmalformed line\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("COMPASS_ENVFILE_A", "")
	t.Setenv("COMPASS_ENVFILE_B", "")
	os.Unsetenv("COMPASS_ENVFILE_A")
	os.Unsetenv("COMPASS_ENVFILE_B")

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("loadEnvFile: %v", err)
	}

	if got := os.Getenv("COMPASS_ENVFILE_A"); got != "alpha" {
		t.Errorf("COMPASS_ENVFILE_A = %q, want alpha", got)
	}
	if got := os.Getenv("COMPASS_ENVFILE_B"); got != "quoted" {
		t.Errorf("COMPASS_ENVFILE_B = %q, want quoted (quotes stripped)", got)
	}
}
