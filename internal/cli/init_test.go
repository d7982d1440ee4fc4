package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("FINBOARD_TEST_VALUE=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FINBOARD_TEST_VALUE", "")
	os.Unsetenv("FINBOARD_TEST_VALUE")

	LoadEnvFile(path)
	if got := os.Getenv("FINBOARD_TEST_VALUE"); got != "from-dotenv" {
		t.Fatalf("FINBOARD_TEST_VALUE = %q", got)
	}

	// missing files are ignored
	LoadEnvFile(filepath.Join(dir, "missing.env"))
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("DATA_BACKEND", "postgres")
	_, err := LoadAndValidateConfig()
	if err == nil || !strings.Contains(err.Error(), "invalid data backend 'postgres'") {
		t.Fatalf("err = %v", err)
	}

	t.Setenv("DATA_BACKEND", "memory")
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("DataBackend = %q", cfg.DataBackend)
	}
}

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger("bogus", false)
	if logger == nil || logger.Component() != "app" {
		t.Fatalf("logger = %+v", logger)
	}
}
