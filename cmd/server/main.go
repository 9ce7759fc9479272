package main

import (
	"MemeShare/internal/config"
	"MemeShare/internal/crypto"
	"MemeShare/internal/handlers"
	"MemeShare/internal/middleware"
	"MemeShare/internal/repo"
	"MemeShare/internal/service"
	"MemeShare/internal/storage"
	"MemeShare/internal/view"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()

	if cfg.Version {
		fmt.Printf("MemeShare server\nVersion: %s\nBuild date: %s\n", version, buildDate)
		return
	}

	// создаём предустановленный регистратор zap
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogFormat == "json" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	if cfg.FileError != nil {
		sugar.Fatalw("failed to load config file", "error", cfg.FileError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, dialect, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if err := repo.Close(gormDB); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	if cfg.AutoMigrate {
		if err := repo.Migrate(gormDB, dialect); err != nil {
			sugar.Fatalw("failed to apply migrations", "error", err)
		}
	}

	store, err := storage.New(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize image storage", "error", err)
	}
	renderer, err := view.New()
	if err != nil {
		sugar.Fatalw("failed to parse templates", "error", err)
	}

	hasher := crypto.NewHasher(cfg.PasswordScheme, cfg.LegacyPasswordSeed, cfg.AllowLegacyPasswords)
	userRepo := repo.NewUserRepository(gormDB)
	imageRepo := repo.NewImageRepository(gormDB)
	memeRepo := repo.NewMemeRepository(gormDB)

	userService := service.NewUserService(userRepo, hasher, sugar)
	galleryService := service.NewGalleryService(imageRepo, cfg.PageSize)
	linkService := service.NewLinkService(imageRepo, memeRepo, cfg.LinkMaxAttempts)

	h := handlers.NewHandler(userService, galleryService, linkService, store, renderer, sugar, cfg)

	addr := cfg.BaseURL
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"PublicURL", cfg.PublicURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"Dialect", dialect,
		"PasswordScheme", cfg.PasswordScheme,
		"MinIO", cfg.MinIO.Endpoint != "",
	)

	if cfg.EnableHTTPS {
		err = srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}
