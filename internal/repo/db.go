package repo

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect — тип хранилища, выбранный по строке подключения.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFor определяет хранилище: postgres:// DSN или путь к файлу SQLite.
func DialectFor(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// sqliteDSN добавляет к пути pragma-параметры, если DSN не содержит своих.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// InitDB открывает пул соединений. Сессии gorm, привязанные к контексту запроса,
// берут соединение из пула на время запроса и возвращают его по завершении.
func InitDB(dsn string) (*gorm.DB, Dialect, error) {
	d := DialectFor(dsn)

	var dial gorm.Dialector
	switch d {
	case DialectPostgres:
		dial = postgres.Open(dsn)
	default:
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: sqliteDSN(dsn)}
	}

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, d, fmt.Errorf("open %s: %w", d, err)
	}
	return db, d, nil
}

// Close закрывает пул соединений gorm.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate применяет встроенные миграции. Таблицы создаются с IF NOT EXISTS,
// поэтому существующая база с той же схемой принимается как есть.
func Migrate(db *gorm.DB, d Dialect) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(d))
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}

	var m *migrate.Migrate
	switch d {
	case DialectPostgres:
		drv, derr := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
		if derr != nil {
			return fmt.Errorf("migrations driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx5", drv)
	default:
		drv, derr := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
		if derr != nil {
			return fmt.Errorf("migrations driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite", drv)
	}
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	// m.Close() не вызываем: он закрыл бы общий *sql.DB
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// IsDuplicateKey сообщает, что вставка нарушила уникальность ключа.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}
