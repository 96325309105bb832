package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"texglossary/internal/app"
	"texglossary/internal/gui"
	"texglossary/internal/repository/postgres"
	"texglossary/internal/tui"
	"texglossary/internal/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("no journal database configured (set DB_PASSWORD)")

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stores, err := app.OpenStores(cfg, postgres.DefaultConnectOptions, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	glossary := app.NewGlossary(cfg, stores.Journal, logger)
	return tui.Run(glossary.NewSession(), cfg.Glossary.Path)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stores, err := app.OpenStores(cfg, postgres.DefaultConnectOptions, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	glossary := app.NewGlossary(cfg, stores.Journal, logger)
	gui.Run(glossary.NewSession(), logger)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stores, err := app.OpenStores(cfg, postgres.DefaultConnectOptions, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	glossary := app.NewGlossary(cfg, stores.Journal, logger)
	h := web.NewGlossaryHandler(glossary.NewSession(), glossary.History(), logger)
	router := web.NewRouter(h, cfg.Web.AllowedOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting HTTP API", zap.String("glossary_path", cfg.Glossary.Path))
	return web.NewServer(cfg.Web.Addr, router, logger).Run(ctx)
}

func runRecent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.JournalEnabled() {
		return errNoDatabase
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	stores, err := app.OpenStores(cfg, postgres.DefaultConnectOptions, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	records, err := app.NewGlossary(cfg, stores.Journal, logger).History().Recent(recentLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No glossary history yet.")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s  %-6s  %s (%s): %s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			rec.Action, rec.Word, rec.PartOfSpeech, rec.Definition)
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.JournalEnabled() {
		return errNoDatabase
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// OpenStores applies migrations on connect
	stores, err := app.OpenStores(cfg, postgres.DefaultConnectOptions, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "Journal schema is up to date.")
	return nil
}
