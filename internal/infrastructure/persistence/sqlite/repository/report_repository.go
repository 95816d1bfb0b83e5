package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"presstrack/internal/errs"
	"presstrack/internal/infrastructure/persistence/sqlite/model"
	"presstrack/internal/ports"
)

// ReportRepository implements ports.ReportRepository with gorm.
type ReportRepository struct {
	db *gorm.DB
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) dbFrom(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *ReportRepository) CreateReport(ctx context.Context, input ports.ReportCreate) (int64, error) {
	db, err := r.dbFrom(ctx)
	if err != nil {
		return 0, err
	}

	row := model.Report{
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return 0, errs.Wrap(err, "insert report")
	}
	return row.ReportID, nil
}
