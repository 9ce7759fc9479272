package bootstrap

import (
	"MemeShare/internal/config"
	"MemeShare/internal/crypto"
	"MemeShare/internal/repo"
	"MemeShare/internal/service"
	"MemeShare/internal/storage"
	"fmt"

	"go.uber.org/zap"
)

// App — сервисы поверх открытой базы для одной команды memectl.
type App struct {
	Users   *service.UserService
	Gallery *service.GalleryService
	Links   *service.LinkService
	Store   storage.ImageStore
}

// Open открывает базу из конфигурации, при AutoMigrate применяет миграции
// и возвращает (app, cleanup, error). cleanup закрывает соединение с БД.
func Open(cfg *config.Config, logger *zap.SugaredLogger) (*App, func() error, error) {
	db, dialect, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if cfg.AutoMigrate {
		if err := repo.Migrate(db, dialect); err != nil {
			_ = repo.Close(db)
			return nil, nil, fmt.Errorf("migrate db: %w", err)
		}
	}
	store, err := storage.New(cfg)
	if err != nil {
		_ = repo.Close(db)
		return nil, nil, err
	}

	images := repo.NewImageRepository(db)
	hasher := crypto.NewHasher(cfg.PasswordScheme, cfg.LegacyPasswordSeed, cfg.AllowLegacyPasswords)
	app := &App{
		Users:   service.NewUserService(repo.NewUserRepository(db), hasher, logger),
		Gallery: service.NewGalleryService(images, cfg.PageSize),
		Links:   service.NewLinkService(images, repo.NewMemeRepository(db), cfg.LinkMaxAttempts),
		Store:   store,
	}

	closed := false
	cleanup := func() error {
		if closed {
			return nil
		}
		closed = true
		return repo.Close(db)
	}
	return app, cleanup, nil
}
