package monitor

import (
	"context"
	"sentinel/internal/providers"
	"sentinel/internal/structures"

	"github.com/roylee0704/gron"
)

type SchedulerInterface interface {
	Init()
	Stop()
}

// Scheduler drives the periodic full sweep. Sweeps do not coordinate with
// each other or with manual checks; probe reports are idempotent so the most
// recent completed write wins.
type Scheduler struct {
	config       *structures.Config
	logger       providers.Logger
	orchestrator OrchestratorInterface
	cron         *gron.Cron
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Monitor.Interval

	s.cron.AddFunc(gron.Every(interval), func() {
		s.logger.Infof(providers.TypeMonitor, "Starting scheduled sweep")
		s.orchestrator.Sweep(context.Background())
	})

	s.cron.Start()
	s.logger.Infof(providers.TypeMonitor, "Sweep scheduled every %s", interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, orchestrator OrchestratorInterface) SchedulerInterface {
	return &Scheduler{
		config:       config,
		logger:       logger,
		orchestrator: orchestrator,
	}
}
