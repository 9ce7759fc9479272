package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	// подавляем вывод парсера флагов в тестах
	flag.CommandLine.SetOutput(os.Stderr)
}

// clearEnv обнуляет переменные, которые читает конфигурация
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URI", "AUTH_SECRET", "BASE_URL", "PUBLIC_URL", "ENABLE_HTTPS",
		"PAGE_SIZE", "LINK_MAX_ATTEMPTS", "PASSWORD_SCHEME", "ALLOW_LEGACY_PASSWORDS",
		"STATIC_URL", "STATIC_DIR", "MINIO_ENDPOINT", "MINIO_BUCKET", "MINIO_URL_EXPIRY", "CONFIG",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.DatabaseDSN != "meme.db" {
		t.Fatalf("DatabaseDSN default expected 'meme.db', got %q", cfg.DatabaseDSN)
	}
	if cfg.BaseURL != "localhost:8080" {
		t.Fatalf("BaseURL default expected 'localhost:8080', got %q", cfg.BaseURL)
	}
	if cfg.PageSize != 20 {
		t.Fatalf("PageSize default expected 20, got %d", cfg.PageSize)
	}
	if cfg.LinkMaxAttempts != 3 {
		t.Fatalf("LinkMaxAttempts default expected 3, got %d", cfg.LinkMaxAttempts)
	}
	if cfg.PasswordScheme != "argon2id" {
		t.Fatalf("PasswordScheme default expected 'argon2id', got %q", cfg.PasswordScheme)
	}
	if cfg.StaticURL != "/static/" {
		t.Fatalf("StaticURL default expected '/static/', got %q", cfg.StaticURL)
	}
	if cfg.Scheme() != "http" {
		t.Fatalf("Scheme expected http, got %q", cfg.Scheme())
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("PUBLIC_URL", "https://memes.example.com/")
	t.Setenv("LINK_MAX_ATTEMPTS", "1")
	t.Setenv("PASSWORD_SCHEME", "legacy")
	t.Setenv("STATIC_URL", "/files")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "example.com:443" {
		t.Fatalf("BaseURL expected 'example.com:443', got %q", cfg.BaseURL)
	}
	if cfg.Scheme() != "https" {
		t.Fatalf("Scheme expected https, got %q", cfg.Scheme())
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.PublicURL != "https://memes.example.com" {
		t.Fatalf("PublicURL must be trimmed, got %q", cfg.PublicURL)
	}
	if cfg.LinkMaxAttempts != 1 {
		t.Fatalf("LinkMaxAttempts expected 1, got %d", cfg.LinkMaxAttempts)
	}
	if !cfg.AllowLegacyPasswords {
		t.Fatalf("legacy scheme must allow legacy verification")
	}
	if cfg.StaticURL != "/files/" {
		t.Fatalf("StaticURL expected '/files/', got %q", cfg.StaticURL)
	}
}

func TestNewConfig_InvalidValuesFallback(t *testing.T) {
	clearEnv(t)
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8080
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("PASSWORD_SCHEME", "md5")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8080" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8080', got %q", cfg.BaseURL)
	}
	if cfg.PasswordScheme != "argon2id" {
		t.Fatalf("unknown scheme must fallback to argon2id, got %q", cfg.PasswordScheme)
	}
}

func TestNewConfig_ConfigFileIsLowestPriority(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "memeshare.yaml")
	content := []byte(`
database_uri: /var/lib/meme/meme.db
auth_secret: from-file
page_size: 10
minio:
  endpoint: minio.local:9000
  bucket: memes
  url_expiry: 30m
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG", path)
	t.Setenv("AUTH_SECRET", "from-env")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.DatabaseDSN != "/var/lib/meme/meme.db" {
		t.Fatalf("DatabaseDSN expected from file, got %q", cfg.DatabaseDSN)
	}
	if cfg.AuthSecret != "from-env" {
		t.Fatalf("env must override file, got %q", cfg.AuthSecret)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("PageSize expected 10 from file, got %d", cfg.PageSize)
	}
	if cfg.MinIO.Endpoint != "minio.local:9000" || cfg.MinIO.Bucket != "memes" {
		t.Fatalf("minio settings expected from file, got %+v", cfg.MinIO)
	}
	if cfg.MinIO.URLExpiry != 30*time.Minute {
		t.Fatalf("URLExpiry expected 30m, got %v", cfg.MinIO.URLExpiry)
	}
}

func TestNewConfig_ConfigFileErrorIsReported(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("page_size: [10\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.yaml"), broken} {
		t.Setenv("CONFIG", path)
		resetFlagSet(t)
		cfg := NewConfig()

		if cfg.FileError == nil {
			t.Fatalf("%s: FileError expected", path)
		}
		// остальные слои всё равно применены
		if cfg.PageSize != 20 {
			t.Fatalf("%s: defaults expected, got PageSize %d", path, cfg.PageSize)
		}
	}

	t.Setenv("CONFIG", "")
	resetFlagSet(t)
	if cfg := NewConfig(); cfg.FileError != nil {
		t.Fatalf("no config file requested, got %v", cfg.FileError)
	}
}

func TestNewConfig_AutoMigrateFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "memeshare.yaml")
	if err := os.WriteFile(path, []byte("auto_migrate: false\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG", path)
	// без переменной действует envDefault=true, его и должен перекрыть файл
	t.Setenv("AUTO_MIGRATE", "")
	if err := os.Unsetenv("AUTO_MIGRATE"); err != nil {
		t.Fatalf("unset AUTO_MIGRATE: %v", err)
	}

	resetFlagSet(t)
	if cfg := NewConfig(); cfg.AutoMigrate {
		t.Fatalf("auto_migrate: false from file must disable migrations")
	}

	// переменная окружения важнее файла
	t.Setenv("AUTO_MIGRATE", "true")
	resetFlagSet(t)
	if cfg := NewConfig(); !cfg.AutoMigrate {
		t.Fatalf("AUTO_MIGRATE env must override file")
	}
}

func TestConfig_RootURL(t *testing.T) {
	cfg := &Config{BaseURL: "localhost:8080"}
	if got := cfg.RootURL(); got != "http://localhost:8080" {
		t.Fatalf("RootURL from listen address expected, got %q", got)
	}
	cfg.EnableHTTPS = true
	if got := cfg.RootURL(); got != "https://localhost:8080" {
		t.Fatalf("https root expected, got %q", got)
	}
	cfg.PublicURL = "https://memes.example.com"
	if got := cfg.RootURL(); got != "https://memes.example.com" {
		t.Fatalf("PublicURL expected, got %q", got)
	}
}
