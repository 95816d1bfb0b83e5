package ports

import "context"

type ReportCreate struct {
	Title       string
	Description string
	CreatedBy   string
	CreatedAt   string
}

// ReportRepository persists report records, the only entity this service
// creates itself.
type ReportRepository interface {
	CreateReport(ctx context.Context, input ReportCreate) (int64, error)
}
