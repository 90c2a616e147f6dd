package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/internal/config"
)

// PeriodicCheck runs a full check on a timer so the history stays current
// when nobody triggers checks.
type PeriodicCheck struct {
	checks   *Checks
	logger   *slog.Logger
	interval time.Duration
	onReport func(check.Report, error)

	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPeriodicCheck creates a new PeriodicCheck from config. A zero interval
// disables it.
func NewPeriodicCheck(cfg config.CheckConfig, checks *Checks, logger *slog.Logger) *PeriodicCheck {
	return &PeriodicCheck{
		checks:   checks,
		logger:   logger,
		interval: cfg.Interval(),
	}
}

// OnReport registers fn to receive every scheduled report or failure.
// It must be called before Start.
func (p *PeriodicCheck) OnReport(fn func(check.Report, error)) {
	p.onReport = fn
}

// Enabled reports whether a schedule is configured.
func (p *PeriodicCheck) Enabled() bool { return p.interval > 0 }

// Start begins scheduled checks in a background goroutine.
// If disabled or already started, this is a no-op.
func (p *PeriodicCheck) Start(ctx context.Context) {
	if !p.Enabled() {
		p.logger.Info("scheduled checks disabled")
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.wg.Go(func() {
		p.run(ctx)
	})

	p.logger.Info("scheduled checks started", slog.Duration("interval", p.interval))
}

// Stop cancels the background goroutine and waits for it to finish.
func (p *PeriodicCheck) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
	p.logger.Info("scheduled checks stopped")
}

func (p *PeriodicCheck) run(ctx context.Context) {
	p.check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.check(ctx)
		}
	}
}

func (p *PeriodicCheck) check(ctx context.Context) {
	if _, err := p.checks.sites.Reload(ctx); err != nil && ctx.Err() == nil {
		p.logger.Warn("scheduled check kept previous sites", slog.String("error", err.Error()))
	}

	report, err := p.checks.Run(ctx)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}
		p.logger.Error("scheduled check failed", slog.String("error", err.Error()))
	}
	if p.onReport != nil {
		p.onReport(report, err)
	}
}
