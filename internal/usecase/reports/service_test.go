package reports

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"presstrack/internal/bootstrap/config"
	"presstrack/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "presstrack/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "presstrack/internal/infrastructure/persistence/sqlite/uow"
)

type testCache struct {
	data map[string]string
}

func newTestCache() *testCache {
	return &testCache{data: make(map[string]string)}
}

func (c *testCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *testCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func setupServiceWithDB(t *testing.T) (*Service, *testCache, *gorm.DB) {
	t.Helper()

	// Named per test so parallel packages do not share one memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Group{},
		&model.Project{},
		&model.Process{},
		&model.ProjectProcess{},
		&model.Zone{},
		&model.Team{},
		&model.User{},
		&model.Machine{},
		&model.QuantitySheet{},
		&model.ProcessTransaction{},
		&model.EventLog{},
		&model.Dispatch{},
		&model.Report{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	cache := newTestCache()
	repo := sqliterepo.NewProductionRepository(db)
	reportRepo := sqliterepo.NewReportRepository(db)
	uow := sqliteuow.NewUnitOfWork(db)
	svc := NewService(repo, reportRepo, uow, cache, config.ReportsConfig{
		TerminalProcessID:    12,
		QuickCompletionGap:   5 * time.Minute,
		SummaryCacheTTL:      time.Minute,
		SearchDefaultPerPage: 5,
	})
	return svc, cache, db
}

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	svc, _, db := setupServiceWithDB(t)
	return svc, db
}

func mustCreate(t *testing.T, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("create %T: %v", row, err)
		}
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
