package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobscout-engine/internal/agent"
	"jobscout-engine/internal/scheduler"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/secrets"
	"jobscout-engine/internal/telegram"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the scheduled alert cycles and the Telegram command listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is not set; edit the config file first")
	}
	token, err := secrets.GetBotToken(a.cfg.Telegram.KeyringAccount)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := agent.New(ctx, a.db, a.cfg, scrape.FromConfig(a.cfg), a.log)
	if err != nil {
		return err
	}
	notifier := telegram.NewNotifier(token, a.cfg.Telegram.ChatID)

	specs := []string{a.cfg.Schedule.MorningSpec, a.cfg.Schedule.EveningSpec}
	cr, err := scheduler.Start(ctx, specs, session, notifier, a.log)
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	defer cr.Stop()

	a.log.Info("engine up",
		zap.String("data_dir", a.cfg.App.DataDir),
		zap.Strings("schedule", specs),
		zap.Strings("sources", a.cfg.Scraper.Sources))

	listener := telegram.NewListener(token, a.cfg.Telegram.ChatID, notifier, session, a.log)
	if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	a.log.Info("engine shutting down")
	return nil
}
