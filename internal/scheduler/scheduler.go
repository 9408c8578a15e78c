// Package scheduler fires the morning and evening alert cycles.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"jobscout-engine/internal/agent"
	"jobscout-engine/internal/telegram"
)

// Start registers the configured cron specs and returns the running cron.
// Paused sessions skip their scheduled cycles; /search still works.
func Start(ctx context.Context, specs []string, session *agent.Session, notifier *telegram.Notifier, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()

	runCycle := func() {
		if session.Paused() {
			log.Info("scheduled cycle skipped, session paused")
			return
		}

		res, err := session.RunSearch(ctx)
		if err != nil {
			log.Error("scheduled cycle failed", zap.Error(err))
			return
		}
		session.Cleanup(ctx)

		if len(res.Delivered) == 0 {
			log.Info("scheduled cycle found nothing new")
			return
		}
		if err := notifier.SendPostings(ctx, res.Delivered, res.MoreRemain); err != nil {
			log.Warn("scheduled delivery failed", zap.Error(err))
		}
	}

	for _, spec := range specs {
		if _, err := c.AddFunc(spec, runCycle); err != nil {
			return nil, err
		}
	}

	c.Start()
	return c, nil
}
