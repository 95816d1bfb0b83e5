package reports

import (
	"context"
	"strings"
	"time"

	"presstrack/internal/errs"
	"presstrack/internal/ports"
)

type CreateReportInput struct {
	Title       string `json:"Title"`
	Description string `json:"Description"`
	CreatedBy   string `json:"CreatedBy"`
}

// CreateReport persists a saved-report record. This is the one write
// operation of the service and runs inside a unit-of-work transaction.
func (s *Service) CreateReport(ctx context.Context, in CreateReportInput) (int64, error) {
	if strings.TrimSpace(in.Title) == "" {
		return 0, validationf("Invalid report data.")
	}

	var id int64
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		created, err := s.reportRepo.CreateReport(txCtx, ports.ReportCreate{
			Title:       in.Title,
			Description: in.Description,
			CreatedBy:   in.CreatedBy,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return errs.Wrap(err, "insert report")
		}
		id = created
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
