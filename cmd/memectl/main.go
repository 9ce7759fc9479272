package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"MemeShare/internal/cli/commands"
	"MemeShare/internal/config"

	"go.uber.org/zap"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Load unified config (env + flags + optional file)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	commands.Logger = logger.Sugar()
	defer func() { _ = logger.Sync() }()
	if cfg.FileError != nil {
		commands.Logger.Fatalw("failed to load config file", "error", cfg.FileError)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	cancel()
	_ = logger.Sync()
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("MemeShare admin CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
