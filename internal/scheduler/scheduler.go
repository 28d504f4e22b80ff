package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mbodji/stockroom/internal/config"
	"github.com/mbodji/stockroom/internal/service/stock"
	"github.com/mbodji/stockroom/pkg/clients/alert"
)

// Scheduler manages scheduled tasks: periodic autosave of the stock
// file and a low-stock sweep.
type Scheduler struct {
	cron     *cron.Cron
	stockSvc *stock.Service
	alerter  alert.Client
	cfg      config.Config
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. alerter may be nil;
// the low-stock sweep then only logs.
func NewScheduler(cfg config.Config, stockSvc *stock.Service, alerter alert.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:     c,
		stockSvc: stockSvc,
		alerter:  alerter,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.Autosave.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Autosave.CronSchedule, s.autosave); err != nil {
		s.logger.Error("failed to schedule autosave", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.Autosave.CronSchedule, s.sweepLowStock); err != nil {
		s.logger.Error("failed to schedule low-stock sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) autosave() {
	if err := s.stockSvc.Persist(); err != nil {
		s.logger.Error("autosave failed", zap.Error(err))
		return
	}
	s.logger.Info("autosave completed")
}

func (s *Scheduler) sweepLowStock() {
	threshold := s.cfg.Inventory.LowStockThreshold

	items, err := s.stockSvc.LowStock(threshold)
	if err != nil {
		s.logger.Error("low-stock sweep failed", zap.Error(err))
		return
	}
	if len(items) == 0 {
		return
	}

	s.logger.Warn("items below threshold",
		zap.Int("threshold", threshold),
		zap.Strings("items", items))

	if s.alerter == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload := alert.LowStockAlert{
		Threshold: threshold,
		Items:     items,
		At:        time.Now(),
	}
	if err := s.alerter.SendLowStockAlert(ctx, payload); err != nil {
		s.logger.Error("failed to send low-stock alert", zap.Error(err))
	} else {
		s.logger.Info("low-stock alert sent", zap.Int("items", len(items)))
	}
}
