package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	coreconfig "quizbot/core/config"
	"quizbot/core/logger"
	"quizbot/internal/bot"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "quizbot:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := coreconfig.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg); err != nil {
		return err
	}
	defer func() {
		_ = logger.Shutdown()
	}()

	app, err := bot.NewApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
