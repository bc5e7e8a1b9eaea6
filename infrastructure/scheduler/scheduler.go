// Package scheduler runs the periodic publisher that flips scheduled drafts
// to published once their scheduled time passes. It operates on the local
// session; remote rows for signed-in users are updated through the same
// draft save path.
package scheduler

import (
	"context"
	"time"

	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/pkg/auth"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Publisher drives DraftService.PublishDue on a cron schedule.
type Publisher struct {
	drafts  *services.DraftService
	cron    *cron.Cron
	logger  *zap.Logger
	enabled func() bool
}

// NewPublisher builds a publisher. enabled is read before every run; pass nil
// to always run.
func NewPublisher(drafts *services.DraftService, logger *zap.Logger, enabled func() bool) *Publisher {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Publisher{
		drafts:  drafts,
		cron:    cron.New(),
		logger:  logger,
		enabled: enabled,
	}
}

// Start registers the job and starts the cron runner. schedule accepts
// standard cron expressions and @every forms.
func (p *Publisher) Start(schedule string) error {
	_, err := p.cron.AddFunc(schedule, p.run)
	if err != nil {
		return err
	}
	p.cron.Start()
	p.logger.Info("draft publisher started", zap.String("schedule", schedule))
	return nil
}

// Stop stops the cron runner, waiting for a running job to finish.
func (p *Publisher) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.logger.Info("draft publisher stopped")
}

func (p *Publisher) run() {
	if !p.enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	published, err := p.drafts.PublishDue(ctx, auth.LocalOnly(), time.Now().UTC())
	if err != nil {
		p.logger.Error("scheduled publish run failed", zap.Error(err))
		return
	}
	if published > 0 {
		p.logger.Info("published scheduled drafts", zap.Int("count", published))
	}
}
