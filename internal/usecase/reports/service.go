package reports

import (
	"time"

	"presstrack/internal/bootstrap/config"
	"presstrack/internal/ports"
)

// Service exposes the read-only report operations. Every operation fetches
// its slice of data through the production repository and computes the
// result as a pure in-memory transform over that snapshot; nothing here
// mutates production state (the saved-report record is the one exception,
// written through its own repository).
type Service struct {
	repo       ports.ProductionRepository
	reportRepo ports.ReportRepository
	uow        ports.UnitOfWork
	cache      ports.Cache
	cfg        config.ReportsConfig
}

// NewService wires the report operations with the data access gateway.
func NewService(
	repo ports.ProductionRepository,
	reportRepo ports.ReportRepository,
	uow ports.UnitOfWork,
	cache ports.Cache,
	cfg config.ReportsConfig,
) *Service {
	if cfg.TerminalProcessID <= 0 {
		cfg.TerminalProcessID = 12
	}
	if cfg.QuickCompletionGap <= 0 {
		cfg.QuickCompletionGap = 5 * time.Minute
	}
	if cfg.SearchDefaultPerPage <= 0 {
		cfg.SearchDefaultPerPage = 5
	}

	return &Service{
		repo:       repo,
		reportRepo: reportRepo,
		uow:        uow,
		cache:      cache,
		cfg:        cfg,
	}
}
