package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"linkcategorizer/internal/bot"
	"linkcategorizer/internal/storage"
)

func newBotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot that categorizes links sent to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd.Context(), a)
		},
	}
}

func runBot(parent context.Context, a *app) error {
	if err := a.cfg.ValidateBot(); err != nil {
		return err
	}
	log := a.log

	log.WithFields(logrus.Fields{
		"badgerdb_path": a.cfg.BadgerDBPath,
	}).Info("Initializing components...")

	repo, err := storage.NewBadgerRepository(a.cfg.BadgerDBPath, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		log.Info("Closing database...")
		if err := repo.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()

	c, err := a.newCategorizer(a.cfg.Workers)
	if err != nil {
		return err
	}

	botHandler, err := bot.NewHandler(a.cfg, repo, c, log)
	if err != nil {
		return fmt.Errorf("failed to initialize Telegram bot handler: %w", err)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("LinkCategorizer bot is running. Press Ctrl+C to exit.")
	botHandler.Start(ctx)

	log.Info("LinkCategorizer bot shut down gracefully.")
	return nil
}
