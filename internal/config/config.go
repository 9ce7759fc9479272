package config

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	AuthSecret  string `env:"AUTH_SECRET"`
	BaseURL     string `env:"BASE_URL"`
	PublicURL   string `env:"PUBLIC_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	TLSCertPath string `env:"TLS_CERT_PATH"`
	TLSKeyPath  string `env:"TLS_KEY_PATH"`
	LogFormat   string `env:"LOG_FORMAT"`

	// Галерея и ссылки
	PageSize        int `env:"PAGE_SIZE"`
	LinkMaxAttempts int `env:"LINK_MAX_ATTEMPTS"`

	// Пароли
	PasswordScheme       string `env:"PASSWORD_SCHEME"`
	LegacyPasswordSeed   string `env:"LEGACY_PASSWORD_SEED"`
	AllowLegacyPasswords bool   `env:"ALLOW_LEGACY_PASSWORDS"`
	VerboseLoginErrors   bool   `env:"VERBOSE_LOGIN_ERRORS"`

	// Раздача изображений
	StaticDir string `env:"STATIC_DIR"`
	StaticURL string `env:"STATIC_URL"`
	MinIO     MinIO

	ConfigFile string `env:"CONFIG"`
	// FileError — ошибка чтения файла конфигурации, если он был указан.
	FileError error `env:"-"`
	Version   bool  `env:"-"` // show version and exit (flag only)
}

// MinIO настройки объектного хранилища. Пустой Endpoint означает локальную раздачу файлов.
type MinIO struct {
	Endpoint  string        `env:"MINIO_ENDPOINT"`
	AccessKey string        `env:"MINIO_ACCESS_KEY"`
	SecretKey string        `env:"MINIO_SECRET_KEY"`
	Bucket    string        `env:"MINIO_BUCKET"`
	UseSSL    bool          `env:"MINIO_USE_SSL"`
	Region    string        `env:"MINIO_REGION"`
	URLExpiry time.Duration `env:"MINIO_URL_EXPIRY"`
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "путь к файлу SQLite или postgres:// DSN")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи сессионной cookie")
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "listen address in host:port form")
	flag.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "public root for generated links")
	flag.BoolVar(&cfg.EnableHTTPS, "s", cfg.EnableHTTPS, "enable HTTPS")
	flag.StringVar(&cfg.TLSCertPath, "cert", cfg.TLSCertPath, "path to TLS certificate")
	flag.StringVar(&cfg.TLSKeyPath, "key", cfg.TLSKeyPath, "path to TLS key")
	flag.IntVar(&cfg.LinkMaxAttempts, "link-attempts", cfg.LinkMaxAttempts, "attempts to find a free short code")
	flag.StringVar(&cfg.PasswordScheme, "password-scheme", cfg.PasswordScheme, "argon2id, bcrypt or legacy")
	flag.StringVar(&cfg.ConfigFile, "c", cfg.ConfigFile, "path to config file (json, yaml, toml)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	if cfg.ConfigFile != "" {
		if err := cfg.loadFile(cfg.ConfigFile); err != nil {
			cfg.FileError = fmt.Errorf("config file %s: %w", cfg.ConfigFile, err)
		}
	}

	cfg.applyDefaults()
	return cfg
}

// loadFile дополняет незаполненные поля значениями из файла конфигурации.
// Файл имеет самый низкий приоритет: env и флаги его перекрывают.
func (cfg *Config) loadFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	fillString := func(target *string, key string) {
		if *target == "" && v.IsSet(key) {
			*target = v.GetString(key)
		}
	}
	fillInt := func(target *int, key string) {
		if *target == 0 && v.IsSet(key) {
			*target = v.GetInt(key)
		}
	}
	fillBool := func(target *bool, key string) {
		if !*target && v.IsSet(key) {
			*target = v.GetBool(key)
		}
	}

	fillString(&cfg.DatabaseDSN, "database_uri")
	// у AUTO_MIGRATE есть значение по умолчанию, поэтому смотрим на саму переменную
	if os.Getenv("AUTO_MIGRATE") == "" && v.IsSet("auto_migrate") {
		cfg.AutoMigrate = v.GetBool("auto_migrate")
	}
	fillString(&cfg.AuthSecret, "auth_secret")
	fillString(&cfg.BaseURL, "base_url")
	fillString(&cfg.PublicURL, "public_url")
	fillBool(&cfg.EnableHTTPS, "enable_https")
	fillString(&cfg.TLSCertPath, "tls_cert_path")
	fillString(&cfg.TLSKeyPath, "tls_key_path")
	fillString(&cfg.LogFormat, "log_format")
	fillInt(&cfg.PageSize, "page_size")
	fillInt(&cfg.LinkMaxAttempts, "link_max_attempts")
	fillString(&cfg.PasswordScheme, "password_scheme")
	fillString(&cfg.LegacyPasswordSeed, "legacy_password_seed")
	fillBool(&cfg.AllowLegacyPasswords, "allow_legacy_passwords")
	fillBool(&cfg.VerboseLoginErrors, "verbose_login_errors")
	fillString(&cfg.StaticDir, "static_dir")
	fillString(&cfg.StaticURL, "static_url")
	fillString(&cfg.MinIO.Endpoint, "minio.endpoint")
	fillString(&cfg.MinIO.AccessKey, "minio.access_key")
	fillString(&cfg.MinIO.SecretKey, "minio.secret_key")
	fillString(&cfg.MinIO.Bucket, "minio.bucket")
	fillBool(&cfg.MinIO.UseSSL, "minio.use_ssl")
	fillString(&cfg.MinIO.Region, "minio.region")
	if cfg.MinIO.URLExpiry == 0 && v.IsSet("minio.url_expiry") {
		cfg.MinIO.URLExpiry = v.GetDuration("minio.url_expiry")
	}
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "meme.db"
	}
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	// BaseURL должен быть в виде "address:port" (без схемы и пути), иначе берём значение по умолчанию.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	if cfg.TLSCertPath == "" {
		cfg.TLSCertPath = "cert.pem"
	}
	if cfg.TLSKeyPath == "" {
		cfg.TLSKeyPath = "key.pem"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.LinkMaxAttempts <= 0 {
		cfg.LinkMaxAttempts = 3
	}
	switch cfg.PasswordScheme {
	case "argon2id", "bcrypt", "legacy":
	default:
		cfg.PasswordScheme = "argon2id"
	}
	// legacy-схема для новых паролей бессмысленна без проверки legacy-хешей
	if cfg.PasswordScheme == "legacy" {
		cfg.AllowLegacyPasswords = true
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "static"
	}
	if cfg.StaticURL == "" {
		cfg.StaticURL = "/static/"
	}
	if !strings.HasSuffix(cfg.StaticURL, "/") {
		cfg.StaticURL += "/"
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = "images"
	}
	if cfg.MinIO.Region == "" {
		cfg.MinIO.Region = "us-east-1"
	}
	if cfg.MinIO.URLExpiry <= 0 {
		cfg.MinIO.URLExpiry = time.Hour
	}
}

// Scheme возвращает "https" или "http" в зависимости от EnableHTTPS.
func (cfg *Config) Scheme() string {
	if cfg.EnableHTTPS {
		return "https"
	}
	return "http"
}

// RootURL — корень для коротких ссылок вне HTTP-запроса: PUBLIC_URL,
// а если он пуст, схема и адрес, на котором слушает сервер.
func (cfg *Config) RootURL() string {
	if cfg.PublicURL != "" {
		return cfg.PublicURL
	}
	return cfg.Scheme() + "://" + cfg.BaseURL
}
