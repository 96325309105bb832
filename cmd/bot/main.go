package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"texglossary/internal/app"
	"texglossary/internal/config"
	"texglossary/internal/handler"
	"texglossary/internal/logging"
	"texglossary/internal/repository/postgres"
	"texglossary/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting glossary bot", zap.String("glossary_path", cfg.Glossary.Path))

	if err := cfg.ValidateBot(); err != nil {
		logger.Fatal("Invalid bot configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Journal and bot users, in PostgreSQL when configured
	stores, err := app.OpenStores(cfg, postgres.DefaultConnectOptions, logger)
	if err != nil {
		logger.Fatal("Failed to open stores", zap.Error(err))
	}
	defer stores.Close()
	if !stores.Persistent() {
		logger.Warn("No database configured, authorized users are forgotten on restart")
	}

	// Initialize services
	glossary := app.NewGlossary(cfg, stores.Journal, logger)
	authService := service.NewAuthService(stores.Users, cfg.Bot.Password)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, authService, glossary.History(), glossary.NewSession, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()

	logger.Info("Bot stopped gracefully")
}
